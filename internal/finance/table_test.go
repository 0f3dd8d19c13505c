package finance

import (
	"errors"
	"math"
	"os"
	"reflect"
	"testing"
	"time"

	"finhealth/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

func table(rows ...Record) Table {
	return Table{Columns: []string{"date", "category", "amount", "type"}, Rows: rows}
}

func row(date, category string, amount any, typ string) Record {
	return Record{"date": date, "category": category, "amount": amount, "type": typ}
}

func TestValidate(t *testing.T) {
	t.Run("complete_table", func(t *testing.T) {
		if err := Validate(table()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	cases := map[string][]string{
		"missing_date":     {"category", "amount", "type"},
		"missing_category": {"date", "amount", "type"},
		"missing_amount":   {"date", "category", "type"},
		"missing_type":     {"date", "category", "amount"},
		"no_columns":       nil,
	}
	for name, cols := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(Table{Columns: cols})
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if len(se.Missing) != 4-len(cols) {
				t.Errorf("expected %d missing columns, got %v", 4-len(cols), se.Missing)
			}
		})
	}

	t.Run("extra_columns_ignored", func(t *testing.T) {
		tbl := Table{Columns: []string{"description", "date", "category", "amount", "type", "balance"}}
		if err := Validate(tbl); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Run("maps_legacy_types", func(t *testing.T) {
		ledger, err := Normalize(table(
			row("2024-01-05", "Sales", 100, " Income "),
			row("2024-01-06", "Rent", 50, "EXPENSE"),
			row("2024-01-07", "Sales", 10, "credit"),
			row("2024-01-08", "Fuel", 5, "Debit"),
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []TxType{Credit, Debit, Credit, Debit}
		for i, tx := range ledger {
			if tx.Type != want[i] {
				t.Errorf("row %d: expected type %s, got %s", i, want[i], tx.Type)
			}
		}
	})

	t.Run("unknown_type_is_schema_error", func(t *testing.T) {
		_, err := Normalize(table(
			row("2024-01-05", "Sales", 100, "credit"),
			row("2024-01-06", "Transfer", 50, "transfer"),
		))
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("expected *SchemaError, got %v", err)
		}
		if se.Row != 2 {
			t.Errorf("expected row 2, got %d", se.Row)
		}
	})

	t.Run("validates_before_coercion", func(t *testing.T) {
		_, err := Normalize(Table{
			Columns: []string{"date", "amount", "type"},
			Rows:    []Record{{"date": "x", "amount": "x", "type": "bogus"}},
		})
		var se *SchemaError
		if !errors.As(err, &se) || len(se.Missing) != 1 || se.Missing[0] != "category" {
			t.Fatalf("expected missing category error, got %v", err)
		}
	})

	t.Run("categories", func(t *testing.T) {
		ledger, err := Normalize(table(
			row("2024-01-05", "  Sales  ", 1, "credit"),
			Record{"date": "2024-01-05", "category": 42, "amount": 1, "type": "credit"},
			Record{"date": "2024-01-05", "category": nil, "amount": 1, "type": "credit"},
			row("2024-01-05", "   ", 1, "credit"),
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Sales", "42", UncategorizedLabel, UncategorizedLabel}
		for i, tx := range ledger {
			if tx.Category != want[i] {
				t.Errorf("row %d: expected category %q, got %q", i, want[i], tx.Category)
			}
		}
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		tbl := table(row("2024-01-05", " Sales ", "1,000", "Income"))
		_, err := Normalize(tbl)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tbl.Rows[0]["type"] != "Income" || tbl.Rows[0]["amount"] != "1,000" || tbl.Rows[0]["category"] != " Sales " {
			t.Errorf("input row was modified: %v", tbl.Rows[0])
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := Normalize(table(
			row("2024-01-05", " Sales ", "1,250.50", "income"),
			row("garbage", "", "abc", "expense"),
			row("03/15/2024", "Rent", -300, "DEBIT"),
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Normalize(first.Table())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical ledgers\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"string", "99.99", 99.99},
		{"thousands_separator", " 1,200.50 ", 1200.5},
		{"negative_becomes_absolute", -300.0, 300},
		{"negative_string", "-45", 45},
		{"non_numeric", "abc", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"nan_string", "NaN", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceAmount(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"iso", "2024-03-15", "2024-03-15"},
		{"rfc3339", "2024-03-15T10:00:00Z", "2024-03-15"},
		{"datetime", "2024-03-15 08:30:00", "2024-03-15"},
		{"slashes", "2024/03/15", "2024-03-15"},
		{"us", "03/15/2024", "2024-03-15"},
		{"datetime_no_seconds", "2024-03-15 10:30", "2024-03-15"},
		{"day_first", "15/03/2024", "2024-03-15"},
		{"ambiguous_reads_month_first", "03/04/2024", "2024-03-04"},
		{"day_first_dashes", "15-03-2024", "2024-03-15"},
		{"short_month", "15-Mar-2024", "2024-03-15"},
		{"month_only", "2024-03", "2024-03-01"},
		{"time_value", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
		})
	}

	for _, in := range []any{"not a date", "", nil, 12} {
		if got := ParseDate(in); !got.IsZero() {
			t.Errorf("expected zero time for %v, got %v", in, got)
		}
	}
}
