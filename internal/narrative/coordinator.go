package narrative

import (
	"context"
	"time"

	"finhealth/internal/logger"
)

// Narrative sources.
const (
	SourceAI            = "ai"
	SourceDeterministic = "deterministic"
)

// Result is a generated narrative together with where it came from.
type Result struct {
	Report         Report `json:"report"`
	Text           string `json:"text"`
	Source         string `json:"source"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Coordinator runs a primary generator and drops to a fallback when the
// primary is absent, fails or returns an incomplete report.
type Coordinator struct {
	primary  Generator
	fallback Generator
	timeout  time.Duration
}

// NewCoordinator composes primary and fallback. primary may be nil. A nil
// fallback means TemplateGenerator.
func NewCoordinator(primary, fallback Generator, timeout time.Duration) *Coordinator {
	if fallback == nil {
		fallback = TemplateGenerator{}
	}
	return &Coordinator{primary: primary, fallback: fallback, timeout: timeout}
}

// Generate never fails: the fallback covers every primary failure.
func (c *Coordinator) Generate(ctx context.Context, in Input) Result {
	log := logger.Named("narrative")

	reason := "ai generator not configured"
	if c.primary != nil {
		pctx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			pctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		report, err := c.primary.Generate(pctx, in)
		if err == nil && report.Complete() {
			return Result{Report: report, Text: Render(report), Source: SourceAI}
		}
		if err == nil {
			err = ErrIncomplete
		}
		reason = err.Error()
		log.Warnw("Primary narrative generator failed, using fallback",
			"generator", c.primary.Name(),
			"error", err,
		)
	}

	report, err := c.fallback.Generate(ctx, in)
	if err != nil {
		// Only a custom fallback can fail; the template never does.
		log.Errorw("Fallback narrative generator failed", "generator", c.fallback.Name(), "error", err)
		report, _ = TemplateGenerator{}.Generate(ctx, in)
	}
	return Result{Report: report, Text: Render(report), Source: SourceDeterministic, FallbackReason: reason}
}
