// Package manifest ingests cargo manifests from CSV and Excel files into
// []model.Box, adapted from the teacher's CSV/Excel part-list importer in
// _examples/piwi3910-cnc-calculator/internal/importer/importer.go: same
// delimiter-sniffing and header-alias approach, generalized from
// (label, width, height, quantity, grain) columns to a box's full field
// set (label, width, height, length, weight, temperature zone, fragile,
// destination).
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fleetpack/truckload/internal/model"
)

// ImportResult holds the outcome of an import: successfully parsed boxes
// plus any per-row errors and warnings, in the teacher's style of reporting
// partial success rather than failing the whole file on one bad row.
type ImportResult struct {
	Boxes    []model.Box
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in a row.
type ColumnMapping struct {
	Label       int
	Width       int
	Height      int
	Length      int
	Weight      int
	Zone        int
	Fragile     int
	Destination int
}

var headerAliases = map[string][]string{
	"label":       {"label", "name", "box", "description", "desc", "item"},
	"width":       {"width", "w"},
	"height":      {"height", "h"},
	"length":      {"length", "len", "l", "depth"},
	"weight":      {"weight", "wt", "mass", "kg", "lbs"},
	"zone":        {"zone", "temperature", "temperature zone", "temp"},
	"fragile":     {"fragile", "is fragile", "delicate"},
	"destination": {"destination", "dest", "stop", "delivery"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter, trying comma, semicolon, tab, and pipe and keeping the one
// that produces the most consistent column count.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping, falling
// back to a fixed positional mapping when no recognizable header is found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				assignColumn(&mapping, role, i)
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Length: 3, Weight: 4, Zone: 5, Fragile: 6, Destination: 7}, false
	}
	return mapping, true
}

func assignColumn(m *ColumnMapping, role string, idx int) {
	switch role {
	case "label":
		if m.Label == -1 {
			m.Label = idx
		}
	case "width":
		if m.Width == -1 {
			m.Width = idx
		}
	case "height":
		if m.Height == -1 {
			m.Height = idx
		}
	case "length":
		if m.Length == -1 {
			m.Length = idx
		}
	case "weight":
		if m.Weight == -1 {
			m.Weight = idx
		}
	case "zone":
		if m.Zone == -1 {
			m.Zone = idx
		}
	case "fragile":
		if m.Fragile == -1 {
			m.Fragile = idx
		}
	case "destination":
		if m.Destination == -1 {
			m.Destination = idx
		}
	}
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseZone(s string) (model.TemperatureZone, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "ambient":
		return model.ZoneRegular, true
	case "cold", "chilled":
		return model.ZoneCold, true
	case "frozen":
		return model.ZoneFrozen, true
	default:
		return model.ZoneRegular, false
	}
}

func parseDestination(s string) (model.Destination, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stop1", "1":
		return model.Stop1, true
	case "stop2", "2":
		return model.Stop2, true
	case "stop3", "3":
		return model.Stop3, true
	case "stop4", "4":
		return model.Stop4, true
	default:
		return model.Stop1, false
	}
}

func parseFragile(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// parseRow extracts a Box from a row using the given column mapping.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, boxCount int) (model.Box, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Box %d", boxCount+1)
	}

	width, err := parseFloatCell(row, mapping.Width, rowLabel, "width")
	if err != "" {
		return model.Box{}, err, ""
	}
	height, err2 := parseFloatCell(row, mapping.Height, rowLabel, "height")
	if err2 != "" {
		return model.Box{}, err2, ""
	}
	length, err3 := parseFloatCell(row, mapping.Length, rowLabel, "length")
	if err3 != "" {
		return model.Box{}, err3, ""
	}
	weight, err4 := parseFloatCell(row, mapping.Weight, rowLabel, "weight")
	if err4 != "" {
		return model.Box{}, err4, ""
	}

	var warning string
	zone, ok := parseZone(getCell(row, mapping.Zone))
	if !ok {
		warning = fmt.Sprintf("%s: unknown temperature zone, defaulting to Regular", rowLabel)
	}
	dest, ok := parseDestination(getCell(row, mapping.Destination))
	if !ok {
		if warning != "" {
			warning += "; "
		}
		warning += fmt.Sprintf("%s: unknown destination, defaulting to Stop1", rowLabel)
	}
	fragile := parseFragile(getCell(row, mapping.Fragile))

	return model.NewBox(label, width, height, length, weight, zone, fragile, dest), "", warning
}

func parseFloatCell(row []string, idx int, rowLabel, field string) (float64, string) {
	raw := getCell(row, idx)
	if raw == "" {
		return 0, fmt.Sprintf("%s: missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: invalid %s %q", rowLabel, field, raw)
	}
	return v, ""
}

// ImportCSV reads boxes from a CSV cargo manifest, auto-detecting the
// delimiter and column layout.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot parse CSV: %v", err))
		return result
	}
	return parseRows(records, result)
}

// ImportExcel reads boxes from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "workbook has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read sheet %q: %v", sheets[0], err))
		return result
	}
	return parseRows(rows, result)
}

func parseRows(records [][]string, result ImportResult) ImportResult {
	if len(records) == 0 {
		result.Errors = append(result.Errors, "no rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(records[0])
	startRow := 0
	if hasHeader {
		startRow = 1
	}

	boxCount := 0
	for i := startRow; i < len(records); i++ {
		row := records[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("Row %d", i+1)
		box, errMsg, warning := parseRow(row, mapping, rowLabel, boxCount)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Boxes = append(result.Boxes, box)
		boxCount++
	}

	return result
}
