// Package ingest turns uploaded transaction files into raw finance tables.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"finhealth/internal/finance"
	"finhealth/internal/logger"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnreadable        = errors.New("file could not be read")
)

// Format is a supported input format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
	FormatText  Format = "text"
)

// DetectFormat maps a file name onto a Format by extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	case "txt":
		return FormatText, nil
	default:
		if ext == "" {
			ext = "(none)"
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ParseFile reads and parses a file from disk.
func ParseFile(path string) (finance.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finance.Table{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return finance.Table{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return finance.Table{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	return Parse(filepath.Base(path), f)
}

// Parse dispatches on the file name's extension and parses r.
func Parse(filename string, r io.Reader) (finance.Table, error) {
	log := logger.Get()

	format, err := DetectFormat(filename)
	if err != nil {
		log.Warnw("Rejected upload", "filename", filename, "error", err)
		return finance.Table{}, err
	}
	log.Infow("Parsing transaction file", "filename", filename, "format", format)

	var records [][]string
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatExcel:
		records, err = readExcel(r)
	case FormatPDF:
		records, err = readPDF(r)
	case FormatText:
		records, err = readText(r)
	}
	if err != nil {
		log.Errorw("File parsing failed", "filename", filename, "error", err)
		return finance.Table{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	tbl := buildTable(records, format == FormatPDF || format == FormatText)
	log.Infow("Parsed transaction file", "filename", filename, "rows", len(tbl.Rows), "columns", tbl.Columns)
	return tbl, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readPDF(r io.Reader) (lines [][]string, err error) {
	// The pdf reader panics on some malformed object streams.
	defer func() {
		if p := recover(); p != nil {
			lines, err = nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, perr := page.GetPlainText(nil)
		if perr != nil {
			return nil, fmt.Errorf("page %d: %w", i, perr)
		}
		if strings.TrimSpace(text) == "" {
			logger.Get().Warnw("No text found on page", "page", i)
			continue
		}
		lines = append(lines, splitLines(text)...)
	}
	return lines, nil
}

func readText(r io.Reader) ([][]string, error) {
	var lines [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, splitLine(sc.Text()))
	}
	return lines, sc.Err()
}

func splitLines(text string) [][]string {
	var out [][]string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, splitLine(line))
	}
	return out
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// buildTable turns raw records into a table. When seekHeader is set the
// first record carrying every required column becomes the header, which
// skips titles and preambles in extracted text; otherwise the first
// non-blank record is the header.
func buildTable(records [][]string, seekHeader bool) finance.Table {
	headerAt := -1
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		if !seekHeader || hasRequired(rec) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 && seekHeader {
		for i, rec := range records {
			if !isBlank(rec) {
				headerAt = i
				break
			}
		}
	}
	if headerAt < 0 {
		return finance.Table{Columns: []string{}, Rows: []finance.Record{}}
	}

	cols := normalizeHeader(records[headerAt])
	rows := make([]finance.Record, 0, len(records)-headerAt-1)
	for _, rec := range records[headerAt+1:] {
		if isBlank(rec) {
			continue
		}
		row := make(finance.Record, len(cols))
		for j, c := range cols {
			if c == "" {
				continue
			}
			if j < len(rec) {
				row[c] = strings.TrimSpace(rec[j])
			} else {
				row[c] = nil
			}
		}
		rows = append(rows, row)
	}
	return finance.Table{Columns: cols, Rows: rows}
}

func normalizeHeader(rec []string) []string {
	cols := make([]string, len(rec))
	for i, h := range rec {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return cols
}

func hasRequired(rec []string) bool {
	present := make(map[string]bool, len(rec))
	for _, h := range normalizeHeader(rec) {
		present[h] = true
	}
	for _, c := range finance.RequiredColumns {
		if !present[c] {
			return false
		}
	}
	return true
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
