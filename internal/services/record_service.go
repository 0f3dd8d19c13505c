package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"finhealth/internal/crypto"
	apperrors "finhealth/internal/errors"
	"finhealth/internal/logger"
	"finhealth/internal/models"
	"finhealth/internal/narrative"
	"finhealth/internal/pagination"
)

// DecryptionFailed replaces fields whose ciphertext could not be opened.
const DecryptionFailed = "Decryption failed"

// recordService stores analyses with metrics and narrative encrypted.
type recordService struct {
	db     *gorm.DB
	sealer *crypto.Sealer
	now    func() time.Time
}

// NewRecordService creates a new RecordServicer.
func NewRecordService(db *gorm.DB, sealer *crypto.Sealer) RecordServicer {
	return &recordService{db: db, sealer: sealer, now: time.Now}
}

// SaveAnalysis encrypts and inserts one analysis. Each call commits on its own.
func (s *recordService) SaveAnalysis(rec NewAnalysisRecord) (*models.SMEAnalysis, error) {
	log := logger.Get()
	log.Infow("Encrypting and saving analysis", "business_name", rec.BusinessName)

	if rec.Metrics == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "metrics are required")
	}

	metricsJSON, err := json.Marshal(rec.Metrics)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sealedMetrics, err := s.sealer.Seal(metricsJSON)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sealedSummary, err := s.sealer.SealString(rec.AISummary)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	language := rec.ReportLanguage
	if language == "" {
		language = narrative.DefaultLanguage
	}

	analysis := &models.SMEAnalysis{
		BusinessName:     rec.BusinessName,
		BusinessType:     rec.BusinessType,
		AnalyzedAt:       s.now().UTC(),
		FinancialMetrics: sealedMetrics,
		AISummary:        sealedSummary,
		RiskLevel:        string(rec.RiskLevel),
		CreditScore:      rec.CreditScore,
		CreditGrade:      rec.CreditGrade,
		NarrativeSource:  rec.NarrativeSource,
		ReportLanguage:   language,
	}
	if err := s.db.Create(analysis).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log.Infow("SME analysis saved", "id", analysis.ID)
	return analysis, nil
}

// ListHistory returns decrypted analyses, newest first.
func (s *recordService) ListHistory(page pagination.PageRequest, filter HistoryFilter) (*pagination.PageResponse[AnalysisEntry], error) {
	page.Defaults()

	query := s.db.Model(&models.SMEAnalysis{})
	if filter.RiskLevel != nil {
		query = query.Where("risk_level = ?", *filter.RiskLevel)
	}
	if filter.Language != nil {
		query = query.Where("report_language = ?", *filter.Language)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.SMEAnalysis
	if err := query.Scopes(pagination.NewestFirst("analyzed_at"), pagination.Paginate(page)).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]AnalysisEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, s.decrypt(&rows[i]))
	}

	logger.Get().Infow("Fetched analysis history", "count", len(entries), "page", page.Page)
	resp := pagination.NewPageResponse(entries, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetAnalysis returns one decrypted analysis.
func (s *recordService) GetAnalysis(id string) (*AnalysisEntry, error) {
	var row models.SMEAnalysis
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	entry := s.decrypt(&row)
	return &entry, nil
}

// decrypt opens both sealed fields. Either failing marks both as
// DecryptionFailed; the row itself is still returned.
func (s *recordService) decrypt(row *models.SMEAnalysis) AnalysisEntry {
	entry := AnalysisEntry{
		ID:              row.ID,
		BusinessName:    row.BusinessName,
		BusinessType:    row.BusinessType,
		Timestamp:       row.AnalyzedAt,
		RiskLevel:       row.RiskLevel,
		CreditScore:     row.CreditScore,
		CreditGrade:     row.CreditGrade,
		NarrativeSource: row.NarrativeSource,
		ReportLanguage:  row.ReportLanguage,
	}

	metrics, err := s.openMetrics(row.FinancialMetrics)
	if err == nil {
		var summary string
		summary, err = s.sealer.OpenString(row.AISummary)
		entry.AISummary = summary
	}
	if err != nil {
		logger.Get().Warnw("Failed to decrypt analysis", "id", row.ID, "error", err)
		entry.FinancialMetrics = DecryptionFailed
		entry.AISummary = DecryptionFailed
		return entry
	}
	entry.FinancialMetrics = metrics
	return entry
}

func (s *recordService) openMetrics(sealed string) (map[string]any, error) {
	raw, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, err
	}
	var metrics map[string]any
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}
