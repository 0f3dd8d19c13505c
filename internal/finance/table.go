// Package finance turns a labelled transaction table into a metrics
// snapshot, a rule-based risk assessment, a credit readiness score and a few
// derived projections. Every function here is deterministic and free of I/O.
package finance

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Required column names.
const (
	ColumnDate     = "date"
	ColumnCategory = "category"
	ColumnAmount   = "amount"
	ColumnType     = "type"
)

// RequiredColumns lists the columns every transaction table must carry.
var RequiredColumns = []string{ColumnDate, ColumnCategory, ColumnAmount, ColumnType}

// UncategorizedLabel replaces empty category cells.
const UncategorizedLabel = "Uncategorized"

// Record is one raw row keyed by column name. Cell values are whatever the
// ingestion step produced: strings, numbers, time.Time or nil.
type Record map[string]any

// Table is a raw transaction table as handed over by file ingestion.
type Table struct {
	Columns []string
	Rows    []Record
}

// TxType is a canonical transaction direction.
type TxType string

const (
	Credit TxType = "credit"
	Debit  TxType = "debit"
)

var typeAliases = map[string]TxType{
	"credit":  Credit,
	"debit":   Debit,
	"income":  Credit,
	"expense": Debit,
}

// Transaction is a normalized ledger entry. Amount is never negative; the
// direction is carried by Type. A zero Date means the source value could
// not be parsed.
type Transaction struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Type     TxType    `json:"type"`
}

// Ledger is a normalized transaction table.
type Ledger []Transaction

// Validate fails with a *SchemaError when any required column is absent.
func Validate(t Table) error {
	present := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = true
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Normalize validates t and coerces every row into a Transaction. The input
// table is left untouched.
func Normalize(t Table) (Ledger, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	ledger := make(Ledger, 0, len(t.Rows))
	for i, rec := range t.Rows {
		txType, ok := NormalizeType(rec[ColumnType])
		if !ok {
			return nil, &SchemaError{
				Row:    i + 1,
				Detail: fmt.Sprintf("unsupported transaction type %q (want credit, debit, income or expense)", cellString(rec[ColumnType])),
			}
		}
		ledger = append(ledger, Transaction{
			Date:     ParseDate(rec[ColumnDate]),
			Category: NormalizeCategory(rec[ColumnCategory]),
			Amount:   CoerceAmount(rec[ColumnAmount]),
			Type:     txType,
		})
	}
	return ledger, nil
}

// Table renders the ledger back into raw table form. Normalizing the result
// yields the same ledger.
func (l Ledger) Table() Table {
	rows := make([]Record, len(l))
	for i, tx := range l {
		rows[i] = Record{
			ColumnDate:     tx.Date,
			ColumnCategory: tx.Category,
			ColumnAmount:   tx.Amount,
			ColumnType:     string(tx.Type),
		}
	}
	cols := make([]string, len(RequiredColumns))
	copy(cols, RequiredColumns)
	return Table{Columns: cols, Rows: rows}
}

// NormalizeType lower-cases and trims a type cell and maps the legacy
// income/expense labels onto credit/debit.
func NormalizeType(v any) (TxType, bool) {
	label := strings.ToLower(strings.TrimSpace(cellString(v)))
	t, ok := typeAliases[label]
	return t, ok
}

// NormalizeCategory trims a category cell, converting non-strings with
// fmt.Sprint.
func NormalizeCategory(v any) string {
	c := strings.TrimSpace(cellString(v))
	if c == "" {
		return UncategorizedLabel
	}
	return c
}

// CoerceAmount converts a cell to a finite, non-negative float. Anything
// that is not a number becomes 0.
func CoerceAmount(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		f = parseNumber(x.String())
	case decimal.Decimal:
		f = x.InexactFloat64()
	case string:
		f = parseNumber(x)
	default:
		f = parseNumber(fmt.Sprint(x))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Abs(f)
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// dateLayouts are tried in order. Slash dates read month first; day-first
// only matches when the first field cannot be a month.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"02-01-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01",
}

// ParseDate parses a date cell. Unparsable or empty values yield the zero
// time rather than an error.
func ParseDate(v any) time.Time {
	switch x := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return x
	case *time.Time:
		if x == nil {
			return time.Time{}
		}
		return *x
	}

	s := strings.TrimSpace(cellString(v))
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
