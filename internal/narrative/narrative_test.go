package narrative

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"finhealth/internal/finance"
	"finhealth/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

type mockModel struct {
	GenerateTextFn func(ctx context.Context, prompt, system string, jsonMode bool) (string, error)
	lastPrompt     string
}

func (m *mockModel) GenerateText(ctx context.Context, prompt, system string, jsonMode bool) (string, error) {
	m.lastPrompt = prompt
	return m.GenerateTextFn(ctx, prompt, system, jsonMode)
}

func sampleInput(t *testing.T) Input {
	t.Helper()
	snap := &finance.Snapshot{
		TotalRevenue:      10000,
		TotalExpenses:     7000,
		NetCashflow:       3000,
		ExpenseRatio:      0.7,
		CategoryBreakdown: map[string]float64{"Sales": 10000, "Rent": 7000},
		MonthlyCashflow:   map[string]float64{"2024-02": 1000, "2024-01": 2000},
		TransactionCount:  4,
	}
	risk, err := finance.NewEvaluator(finance.DefaultThresholds()).Evaluate(snap)
	if err != nil {
		t.Fatal(err)
	}
	return Input{Metrics: snap, Risk: risk}
}

const validJSON = `{"health_summary":"Healthy.","risk_explanation":"Medium expense load.","improvement_recommendations":"Cut rent."}`

func TestParseReport(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"strict_json", validJSON, nil},
		{"fenced", "```json\n" + validJSON + "\n```", nil},
		{"trailing_comma", `{"health_summary":"a","risk_explanation":"b","improvement_recommendations":"c",}`, nil},
		{"single_quotes", `{'health_summary':'a','risk_explanation':'b','improvement_recommendations':'c'}`, nil},
		{"missing_section", `{"health_summary":"a","risk_explanation":"b"}`, ErrIncomplete},
		{"blank_section", `{"health_summary":"a","risk_explanation":" ","improvement_recommendations":"c"}`, ErrIncomplete},
		{"empty", "   ", ErrUnparsable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseReport(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.Complete() {
				t.Errorf("expected complete report, got %+v", r)
			}
		})
	}
}

func TestRender(t *testing.T) {
	text := Render(Report{HealthSummary: "h", RiskExplanation: "r", ImprovementRecommendations: "i"})
	want := "OVERALL FINANCIAL HEALTH\nh\n\nRISK ANALYSIS\nr\n\nIMPROVEMENT RECOMMENDATIONS\ni"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}

	back := ParseRendered(text)
	if back.HealthSummary != "h" || back.RiskExplanation != "r" || back.ImprovementRecommendations != "i" {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestTemplateGenerator(t *testing.T) {
	in := sampleInput(t)
	r, err := TemplateGenerator{}.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Complete() {
		t.Fatalf("expected complete report, got %+v", r)
	}
	for _, figure := range []string{"10000.00", "7000.00", "3000.00", "0.70"} {
		if !strings.Contains(r.HealthSummary, figure) {
			t.Errorf("expected health summary to quote %s, got %q", figure, r.HealthSummary)
		}
	}
	if !strings.Contains(r.RiskExplanation, "Medium") || !strings.Contains(r.RiskExplanation, in.Risk.Breakdown.ExpenseLoad.Reason) {
		t.Errorf("expected risk explanation to use computed findings, got %q", r.RiskExplanation)
	}
	if !strings.Contains(r.ImprovementRecommendations, "renegotiate") {
		t.Errorf("expected expense advice for Medium expense load, got %q", r.ImprovementRecommendations)
	}

	empty, _ := TemplateGenerator{}.Generate(context.Background(), Input{})
	if !empty.Complete() {
		t.Errorf("expected complete report for empty input, got %+v", empty)
	}
}

func TestCoordinator(t *testing.T) {
	in := sampleInput(t)

	t.Run("ai_success", func(t *testing.T) {
		model := &mockModel{GenerateTextFn: func(context.Context, string, string, bool) (string, error) {
			return validJSON, nil
		}}
		res := NewCoordinator(NewLLMGenerator(model), nil, time.Second).Generate(context.Background(), in)
		if res.Source != SourceAI {
			t.Errorf("expected source ai, got %s", res.Source)
		}
		if res.FallbackReason != "" {
			t.Errorf("expected no fallback reason, got %q", res.FallbackReason)
		}
		if !strings.HasPrefix(res.Text, HeadingHealth+"\nHealthy.") {
			t.Errorf("unexpected text: %q", res.Text)
		}
		if !strings.Contains(model.lastPrompt, "Net cashflow: 3000.00") {
			t.Errorf("expected prompt to carry metrics, got %q", model.lastPrompt)
		}
	})

	t.Run("model_error_falls_back", func(t *testing.T) {
		model := &mockModel{GenerateTextFn: func(context.Context, string, string, bool) (string, error) {
			return "", errors.New("quota exceeded")
		}}
		res := NewCoordinator(NewLLMGenerator(model), nil, time.Second).Generate(context.Background(), in)
		if res.Source != SourceDeterministic {
			t.Errorf("expected deterministic source, got %s", res.Source)
		}
		if !strings.Contains(res.FallbackReason, "quota exceeded") {
			t.Errorf("expected fallback reason, got %q", res.FallbackReason)
		}
		if !res.Report.Complete() {
			t.Error("expected complete fallback report")
		}
	})

	t.Run("invalid_structure_falls_back", func(t *testing.T) {
		model := &mockModel{GenerateTextFn: func(context.Context, string, string, bool) (string, error) {
			return `{"health_summary":"only one"}`, nil
		}}
		res := NewCoordinator(NewLLMGenerator(model), nil, time.Second).Generate(context.Background(), in)
		if res.Source != SourceDeterministic {
			t.Errorf("expected deterministic source, got %s", res.Source)
		}
	})

	t.Run("timeout_falls_back", func(t *testing.T) {
		model := &mockModel{GenerateTextFn: func(ctx context.Context, _, _ string, _ bool) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}}
		res := NewCoordinator(NewLLMGenerator(model), nil, 20*time.Millisecond).Generate(context.Background(), in)
		if res.Source != SourceDeterministic {
			t.Errorf("expected deterministic source, got %s", res.Source)
		}
		if !strings.Contains(res.FallbackReason, "deadline") {
			t.Errorf("expected deadline reason, got %q", res.FallbackReason)
		}
	})

	t.Run("no_primary", func(t *testing.T) {
		res := NewCoordinator(nil, nil, 0).Generate(context.Background(), in)
		if res.Source != SourceDeterministic || res.FallbackReason == "" {
			t.Errorf("expected deterministic result with reason, got %+v", res)
		}
	})
}

func TestTranslateOrKeep(t *testing.T) {
	ctx := context.Background()
	ok := NewLLMTranslator(&mockModel{GenerateTextFn: func(_ context.Context, prompt, _ string, jsonMode bool) (string, error) {
		if jsonMode {
			t.Error("expected plain text mode")
		}
		if !strings.Contains(prompt, "Hindi") {
			t.Errorf("expected language name in prompt, got %q", prompt)
		}
		return "```अनुवादित```", nil
	}})
	failing := NewLLMTranslator(&mockModel{GenerateTextFn: func(context.Context, string, string, bool) (string, error) {
		return "", errors.New("unavailable")
	}})

	if out, tr := TranslateOrKeep(ctx, ok, "report", "hi", time.Second); !tr || out != "अनुवादित" {
		t.Errorf("expected translated text, got %q (%v)", out, tr)
	}
	if out, tr := TranslateOrKeep(ctx, ok, "report", "en", time.Second); tr || out != "report" {
		t.Errorf("expected english passthrough, got %q (%v)", out, tr)
	}
	if out, tr := TranslateOrKeep(ctx, ok, "report", "fr", time.Second); tr || out != "report" {
		t.Errorf("expected unsupported passthrough, got %q (%v)", out, tr)
	}
	if out, tr := TranslateOrKeep(ctx, failing, "report", "es", time.Second); tr || out != "report" {
		t.Errorf("expected original text on failure, got %q (%v)", out, tr)
	}
	if out, tr := TranslateOrKeep(ctx, nil, "report", "es", time.Second); tr || out != "report" {
		t.Errorf("expected original text without translator, got %q (%v)", out, tr)
	}

	hung := NewLLMTranslator(&mockModel{GenerateTextFn: func(ctx context.Context, _, _ string, _ bool) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}})
	start := time.Now()
	if out, tr := TranslateOrKeep(ctx, hung, "report", "hi", 20*time.Millisecond); tr || out != "report" {
		t.Errorf("expected original text after timeout, got %q (%v)", out, tr)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected translation to stop at the timeout, took %s", elapsed)
	}
}

func TestMarkdownToHTML(t *testing.T) {
	md := Markdown(Report{HealthSummary: "Good **cash** position.", RiskExplanation: "r", ImprovementRecommendations: "i"})
	if !strings.HasPrefix(md, "## Overall Financial Health\n") {
		t.Errorf("unexpected markdown: %q", md)
	}
	html, err := ToHTML(md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h2>Overall Financial Health</h2>") || !strings.Contains(html, "<strong>cash</strong>") {
		t.Errorf("unexpected html: %q", html)
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	for _, l := range []string{"en", "HI", " es "} {
		if !IsSupportedLanguage(l) {
			t.Errorf("expected %q to be supported", l)
		}
	}
	if IsSupportedLanguage("fr") {
		t.Error("expected fr to be unsupported")
	}
}
