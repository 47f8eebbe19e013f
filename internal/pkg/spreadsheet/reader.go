// Package spreadsheet decodes uploaded workbooks into header/row tables and
// encodes result tables back into xlsx workbooks.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/validator"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format: only xlsx and xls workbooks are accepted")
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrEmptyWorksheet    = errors.New("worksheet is empty")
)

const (
	// TimestampLayout is how date-formatted cells are rendered into row values.
	TimestampLayout = "2006-01-02 15:04:05"
	// ClockLayout renders cells with a time-only format and no day part.
	ClockLayout = "15:04:05"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Table is the first worksheet of a workbook. Header cells holding dates are
// time.Time, every other header cell is a string. Time-only cells without a
// day part are rendered with ClockLayout. Fully blank data rows are dropped.
type Table struct {
	Header []any
	Rows   [][]string
}

// Read decodes an xlsx or legacy xls workbook. The format is sniffed from the
// leading bytes rather than trusted from a file name.
func Read(data []byte) (*Table, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLSX(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrEmptyWorksheet
	}

	styles := newDateStyles(file, sheetName)

	header := make([]any, len(rows[0]))
	for col, value := range rows[0] {
		header[col] = value
		if ts, clockOnly, ok := styles.cellTime(col, 1, value); ok {
			header[col] = ts
			if clockOnly {
				header[col] = ts.Format(ClockLayout)
			}
		}
	}

	body := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, len(row))
		for col, value := range row {
			cells[col] = value
			if ts, clockOnly, ok := styles.cellTime(col, i+2, value); ok {
				layout := TimestampLayout
				if clockOnly {
					layout = ClockLayout
				}
				cells[col] = ts.Format(layout)
			}
		}
		body = append(body, cells)
	}

	return &Table{Header: header, Rows: body}, nil
}

func readXLS(data []byte) (*Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for col := range cells {
			cells[col] = row.Col(col)
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrEmptyWorksheet
	}

	header := make([]any, len(rows[0]))
	for col, value := range rows[0] {
		header[col] = value
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		body = append(body, row)
	}

	return &Table{Header: header, Rows: body}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if !validator.IsEmpty(cell) {
			return false
		}
	}
	return true
}

type styleKind int

const (
	plainStyle styleKind = iota
	dateStyle
	clockStyle
)

// dateStyles resolves whether numeric cells carry a date or time number
// format. Results are cached per style id since a sheet reuses a handful of styles.
type dateStyles struct {
	file     *excelize.File
	sheet    string
	date1904 bool
	cache    map[int]styleKind
}

func newDateStyles(file *excelize.File, sheet string) *dateStyles {
	d := &dateStyles{
		file:  file,
		sheet: sheet,
		cache: make(map[int]styleKind),
	}
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// cellTime converts the raw value at (col, row) into a time when the cell is
// numeric and formatted as a date. clockOnly reports a time-only format on a
// serial below one day. col is zero-based, row is one-based.
func (d *dateStyles) cellTime(col, row int, value string) (ts time.Time, clockOnly bool, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, false
	}
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 0 {
		return time.Time{}, false, false
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return time.Time{}, false, false
	}
	styleID, err := d.file.GetCellStyle(d.sheet, cell)
	if err != nil {
		return time.Time{}, false, false
	}

	kind, seen := d.cache[styleID]
	if !seen {
		kind = d.styleKind(styleID)
		d.cache[styleID] = kind
	}
	if kind == plainStyle {
		return time.Time{}, false, false
	}

	ts, err = excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return time.Time{}, false, false
	}
	return ts.Round(time.Second), kind == clockStyle && serial < 1, true
}

func (d *dateStyles) styleKind(styleID int) styleKind {
	if styleID == 0 {
		return plainStyle
	}
	style, err := d.file.GetStyle(styleID)
	if err != nil || style == nil {
		return plainStyle
	}
	if style.CustomNumFmt != nil {
		return formatCodeKind(*style.CustomNumFmt)
	}
	return builtInFormatKind(style.NumFmt)
}

// Built-in number format ids that render dates or times, including the
// CJK locale ranges. 18-21 and 45-47 show a time of day only.
func builtInFormatKind(id int) styleKind {
	switch {
	case id >= 18 && id <= 21, id >= 45 && id <= 47:
		return clockStyle
	case id >= 14 && id <= 22:
		return dateStyle
	case id >= 27 && id <= 36:
		return dateStyle
	case id >= 50 && id <= 58:
		return dateStyle
	}
	return plainStyle
}

func formatCodeKind(code string) styleKind {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	tokens := b.String()
	switch {
	case !strings.ContainsAny(tokens, "dmyhs"):
		return plainStyle
	case !strings.ContainsAny(tokens, "dy") && strings.ContainsAny(tokens, "hs"):
		return clockStyle
	}
	return dateStyle
}
