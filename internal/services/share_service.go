package services

import (
	"time"

	apperrors "finhealth/internal/errors"
	"finhealth/internal/models"
)

// TokenIssuer signs share tokens.
type TokenIssuer interface {
	Issue(analysisID string) (string, time.Time, error)
}

// shareService issues share links for stored analyses.
type shareService struct {
	records RecordServicer
	tokens  TokenIssuer
	audit   AuditServicer
}

// NewShareService creates a new ShareServicer.
func NewShareService(records RecordServicer, tokens TokenIssuer, audit AuditServicer) ShareServicer {
	return &shareService{records: records, tokens: tokens, audit: audit}
}

// CreateShareLink signs a link for an existing analysis.
func (s *shareService) CreateShareLink(analysisID, ipAddress, requestID string) (*ShareLink, error) {
	if _, err := s.records.GetAnalysis(analysisID); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(analysisID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if s.audit != nil {
		s.audit.Log(models.AuditActionAnalysisShare, "sme_analysis", analysisID, ipAddress, requestID,
			map[string]any{"expires_at": expiresAt.UTC().Format(time.RFC3339)})
	}
	return &ShareLink{AnalysisID: analysisID, Token: token, ExpiresAt: expiresAt}, nil
}
