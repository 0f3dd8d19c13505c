package finance

// Credit scoring deductions.
const (
	creditBase              = 100
	negativeCashflowPenalty = 30
	highDebtPenalty         = 20
	highRiskPenalty         = 25

	// HighDebtRatio is the debt ratio above which the high-debt penalty applies.
	HighDebtRatio = 0.7
)

// Readiness is a 0-100 credit readiness score with its letter grade.
type Readiness struct {
	Score int    `json:"score"`
	Grade string `json:"grade"`
}

// ScoreCredit deducts points from a base of 100. The debt ratio is never
// produced by the aggregator and must come from the caller; pass 0 when it
// is unknown. Nil inputs count as zero values.
func ScoreCredit(m *Snapshot, r *Assessment, debtRatio float64) Readiness {
	score := creditBase

	if m != nil && m.NetCashflow < 0 {
		score -= negativeCashflowPenalty
	}
	if debtRatio > HighDebtRatio {
		score -= highDebtPenalty
	}
	if r != nil && r.OverallRisk == LevelHigh {
		score -= highRiskPenalty
	}
	if score < 0 {
		score = 0
	}

	return Readiness{Score: score, Grade: GradeFor(score)}
}

// GradeFor maps a score onto A, B, C or D.
func GradeFor(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 65:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}
