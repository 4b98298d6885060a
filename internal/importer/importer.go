// Package importer reads beam load lists from CSV and Excel files.
//
// Delimiters are sniffed, header cells are matched against English and
// Portuguese aliases, and beams may be given by catalog ID or bitola label.
// A bad row never aborts an import: it becomes an error string and the
// remaining rows are still read.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/xuri/excelize/v2"
)

// DefaultPriority is assigned to rows without a priority column value.
const DefaultPriority = 1

// ImportResult holds the items read and the problems met on the way.
type ImportResult struct {
	Items    []model.LoadItem
	Errors   []string // rows that were skipped, or why nothing was read
	Warnings []string
}

// ColumnMapping holds the column index of each field, -1 when absent.
type ColumnMapping struct {
	Beam     int
	Length   int
	Quantity int
	Priority int
	Label    int
}

// positionalMapping is used when the first row is not a recognized header.
var positionalMapping = ColumnMapping{Beam: 0, Length: 1, Quantity: 2, Priority: 3, Label: 4}

// headerAliases maps each field to the lowercase header names accepted for it.
var headerAliases = map[string][]string{
	"beam":     {"beam", "bitola", "profile", "perfil", "section", "beam id", "id"},
	"length":   {"length", "len", "comprimento", "size"},
	"quantity": {"quantity", "qty", "count", "quantidade", "qtd", "pcs", "pieces"},
	"priority": {"priority", "prio", "prioridade", "order", "delivery"},
	"label":    {"label", "name", "description", "desc", "reference", "ref", "note"},
}

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

func failed(format string, args ...any) ImportResult {
	return ImportResult{Errors: []string{fmt.Sprintf(format, args...)}}
}

// DetectCSVDelimiter picks the delimiter that splits the most lines into as
// many columns as the first line has. Wider first lines break ties, then the
// order comma, semicolon, tab, pipe.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}

		width := len(records[0])
		consistent := 0
		for _, r := range records {
			if len(r) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// DetectColumns maps the cells of a header row to fields. When no cell is a
// known header it returns the positional mapping (beam, length, quantity,
// priority, label) and false. The first matching column wins for each field.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Beam: -1, Length: -1, Quantity: -1, Priority: -1, Label: -1}
	fields := map[string]*int{
		"beam":     &mapping.Beam,
		"length":   &mapping.Length,
		"quantity": &mapping.Quantity,
		"priority": &mapping.Priority,
		"label":    &mapping.Label,
	}

	found := false
	for i, cell := range row {
		field, ok := fieldForHeader(cell)
		if !ok {
			continue
		}
		found = true
		if idx := fields[field]; *idx == -1 {
			*idx = i
		}
	}

	if !found {
		return positionalMapping, false
	}
	return mapping, true
}

func fieldForHeader(cell string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(cell))
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			if name == alias {
				return field, true
			}
		}
	}
	return "", false
}

// ParseLength accepts "6", "12", "6m", "12 m" and decimal forms like "6,0".
func ParseLength(s string) (model.Length, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "m"))
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	l := model.Length(v)
	if float64(l) != v || !l.Valid() {
		return 0, false
	}
	return l, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow turns one data row into a LoadItem. It returns an error message
// when the row must be skipped, and a warning when a default was applied.
func parseRow(row []string, mapping ColumnMapping, catalog model.BeamCatalog, rowLabel string) (item model.LoadItem, errMsg, warning string) {
	fail := func(format string, args ...any) (model.LoadItem, string, string) {
		return model.LoadItem{}, rowLabel + ": " + fmt.Sprintf(format, args...), ""
	}

	beamRef := cell(row, mapping.Beam)
	if beamRef == "" {
		return fail("Missing beam value")
	}
	beam, ok := catalog.Resolve(beamRef)
	if !ok {
		return fail("Unknown beam '%s'", beamRef)
	}

	lengthStr := cell(row, mapping.Length)
	if lengthStr == "" {
		return fail("Missing length value")
	}
	length, ok := ParseLength(lengthStr)
	if !ok {
		return fail("Unsupported length '%s' (expected 6 or 12)", lengthStr)
	}

	qtyStr := cell(row, mapping.Quantity)
	if qtyStr == "" {
		return fail("Missing quantity value")
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return fail("Invalid quantity '%s'", qtyStr)
	}
	if qty <= 0 {
		return fail("Quantity must be positive")
	}

	priority := DefaultPriority
	if prioStr := cell(row, mapping.Priority); prioStr != "" {
		if p, err := strconv.Atoi(prioStr); err == nil {
			priority = p
		} else {
			warning = fmt.Sprintf("%s: Invalid priority '%s', defaulting to %d", rowLabel, prioStr, DefaultPriority)
		}
	}

	item = model.NewLoadItem(beam.ID, length, qty, priority)
	item.Label = cell(row, mapping.Label)
	return item, "", warning
}

func isEmptyRow(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}

// ImportCSV reads a CSV load list, sniffing its delimiter.
func ImportCSV(path string, catalog model.BeamCatalog) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return failed("File is empty")
	}

	delimiter := DetectCSVDelimiter(data)
	var notes []string
	if delimiter != ',' {
		notes = append(notes, fmt.Sprintf("Detected %s delimiter", delimiterNames[delimiter]))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	return importFromRows(records, catalog, "Line", notes)
}

// ImportCSVFromReader reads a CSV load list with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, catalog model.BeamCatalog) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	return importFromRows(records, catalog, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel reads the load list on the first sheet of an .xlsx workbook.
func ImportExcel(path string, catalog model.BeamCatalog) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return failed("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return failed("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return failed("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return failed("Sheet is empty")
	}
	return importFromRows(rows, catalog, "Row", nil)
}

// importFromRows parses rows from either source. Row labels are 1-based
// and prefixed with rowPrefix ("Line" for CSV, "Row" for Excel).
func importFromRows(rows [][]string, catalog model.BeamCatalog, rowPrefix string, notes []string) ImportResult {
	if len(rows) == 0 {
		return failed("File is empty")
	}
	result := ImportResult{Warnings: notes}

	mapping, hasHeader := DetectColumns(rows[0])
	skipFirst := hasHeader
	if hasHeader {
		if missing := missingRequired(mapping); len(missing) > 0 {
			result.Errors = append(result.Errors,
				"Required columns not found in header: "+strings.Join(missing, ", "))
			return result
		}
	} else if qty := cell(rows[0], positionalMapping.Quantity); qty != "" {
		// An unrecognized header still has a non-numeric quantity column.
		_, err := strconv.Atoi(qty)
		skipFirst = err != nil
	}

	start := 0
	if skipFirst {
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		item, errMsg, warning := parseRow(rows[i], mapping, catalog, fmt.Sprintf("%s %d", rowPrefix, i+1))
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result
}

func missingRequired(m ColumnMapping) []string {
	var missing []string
	for _, f := range []struct {
		name string
		idx  int
	}{{"Beam", m.Beam}, {"Length", m.Length}, {"Quantity", m.Quantity}} {
		if f.idx == -1 {
			missing = append(missing, f.name)
		}
	}
	return missing
}
