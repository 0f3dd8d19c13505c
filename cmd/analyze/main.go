// Command analyze runs the deterministic analysis on a transaction file and
// prints the result. It needs no database and never calls a language model.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"finhealth/internal/finance"
	"finhealth/internal/ingest"
	"finhealth/internal/logger"
	"finhealth/internal/narrative"
)

type analysis struct {
	Source          string               `json:"source"`
	Metrics         *finance.Snapshot    `json:"metrics"`
	Risk            *finance.Assessment  `json:"risk"`
	CreditReadiness finance.Readiness    `json:"credit_readiness"`
	Projections     []finance.Projection `json:"projections"`
	BankingProducts []finance.Product    `json:"banking_products"`
	TaxCompliance   finance.TaxReport    `json:"tax_compliance"`
	Report          string               `json:"report"`
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	thresholdsFile := fs.String("thresholds", "", "risk thresholds YAML file")
	debtRatio := fs.Float64("debt-ratio", 0, "debt ratio used by credit scoring")
	format := fs.String("format", "json", "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: analyze [flags] <file>")
	}
	if *format != "json" && *format != "yaml" {
		return fmt.Errorf("unknown format %q", *format)
	}

	thresholds := finance.DefaultThresholds()
	if *thresholdsFile != "" {
		var err error
		if thresholds, err = finance.LoadThresholds(*thresholdsFile); err != nil {
			return err
		}
	}

	result, err := analyze(fs.Arg(0), finance.NewEvaluator(thresholds), *debtRatio)
	if err != nil {
		return err
	}

	if *format == "yaml" {
		return writeYAML(out, result)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// writeYAML re-reads the JSON form as an ordered map so YAML keys match the
// JSON field names.
func writeYAML(out io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func analyze(path string, evaluator *finance.Evaluator, debtRatio float64) (*analysis, error) {
	table, err := ingest.ParseFile(path)
	if err != nil {
		return nil, err
	}
	metrics, err := finance.ComputeFinancialMetrics(table)
	if err != nil {
		return nil, err
	}
	risk, err := evaluator.Evaluate(metrics)
	if err != nil {
		return nil, err
	}

	story := narrative.NewCoordinator(nil, nil, 0).Generate(context.Background(), narrative.Input{Metrics: metrics, Risk: risk})

	return &analysis{
		Source:          path,
		Metrics:         metrics,
		Risk:            risk,
		CreditReadiness: finance.ScoreCredit(metrics, risk, debtRatio),
		Projections:     finance.ProjectCashflow(metrics.TotalRevenue, metrics.TotalExpenses),
		BankingProducts: finance.RecommendProducts(metrics, risk.OverallRisk),
		TaxCompliance:   finance.EstimateTax(metrics),
		Report:          story.Text,
	}, nil
}
