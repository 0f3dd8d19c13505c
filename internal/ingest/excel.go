package ingest

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelDateLayout is how converted date cells are handed to the normalizer.
const excelDateLayout = "2006-01-02 15:04:05"

// readExcel reads the first sheet with raw cell values, so numbers keep
// their underlying value whatever their display format. Numeric cells with
// a date style are converted from Excel serials to dates.
func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dateStyles := make(map[int]bool)
	for i, row := range rows {
		for j, v := range row {
			serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil || styleID == 0 {
				continue
			}
			isDate, seen := dateStyles[styleID]
			if !seen {
				isDate = isDateStyle(f, styleID)
				dateStyles[styleID] = isDate
			}
			if !isDate {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			rows[i][j] = t.Format(excelDateLayout)
		}
	}
	return rows, nil
}

// isDateStyle reports whether the style's number format renders a date.
func isDateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return isBuiltInDateFormat(style.NumFmt)
}

// isBuiltInDateFormat covers the built-in number formats that carry a
// calendar date, including the CJK locale ranges.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat inspects a custom format code for year or day tokens,
// ignoring quoted literals, escaped characters and bracketed sections such
// as colours and locales.
func isDateFormat(code string) bool {
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}
