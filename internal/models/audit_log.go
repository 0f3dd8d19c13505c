package models

// Audited actions.
const (
	AuditActionAnalysisRun   = "analysis.run"
	AuditActionAnalysisShare = "analysis.share"
	AuditActionSharedView    = "analysis.shared_view"
)

// AuditLog records analysis runs and share-link activity.
type AuditLog struct {
	Base
	Action       string `gorm:"not null;index" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"index" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	RequestID    string `json:"request_id,omitempty"`
	Changes      string `json:"changes,omitempty"`
}
