// Package importer builds asset lists from job manifests: CSV and Excel
// sheets, YAML job files, image directories and plain image paths. It
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GangSheet/internal/model"
)

// ImportResult holds the results of an import operation. Problems with
// individual rows end up in Errors or Warnings; the rest of the manifest is
// still imported.
type ImportResult struct {
	Assets   []model.SourceAsset
	Job      *JobFile // Set by YAML job files only
	Errors   []string
	Warnings []string
}

// Merge appends the assets and messages of other to r. The first job file
// seen wins.
func (r *ImportResult) Merge(other ImportResult) {
	r.Assets = append(r.Assets, other.Assets...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if r.Job == nil {
		r.Job = other.Job
	}
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Path     int
	Label    int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"path":     {"file", "path", "filename", "file name", "image", "artwork", "design"},
	"label":    {"label", "name", "title", "description", "desc", "item"},
	"quantity": {"quantity", "qty", "count", "copies", "num", "amount", "pcs"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
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

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (file, label, quantity) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Path: -1, Label: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "path":
					if mapping.Path == -1 {
						mapping.Path = i
					}
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Path: 0, Label: 1, Quantity: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// resolvePath makes p absolute against baseDir unless it already is absolute
// or baseDir is empty.
func resolvePath(p, baseDir string) string {
	if baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// labelFromPath derives a display label from a file name.
func labelFromPath(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// expandAssets creates qty assets for one manifest entry. Copies beyond the
// first are told apart by a "#k" suffix on the label.
func expandAssets(label, path string, qty int) []model.SourceAsset {
	if qty == 1 {
		return []model.SourceAsset{model.NewSourceAsset(label, path)}
	}
	assets := make([]model.SourceAsset, 0, qty)
	for k := 1; k <= qty; k++ {
		assets = append(assets, model.NewSourceAsset(fmt.Sprintf("%s #%d", label, k), path))
	}
	return assets
}

// parseRow extracts the assets of one manifest row using the given column
// mapping. Returns the assets, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel, baseDir string) ([]model.SourceAsset, string, string) {
	path := getCell(row, mapping.Path)
	if path == "" {
		return nil, fmt.Sprintf("%s: Missing file value", rowLabel), ""
	}
	path = resolvePath(path, baseDir)

	label := getCell(row, mapping.Label)
	if label == "" {
		label = labelFromPath(path)
	}

	qty := 1
	var warning string
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		if n <= 0 {
			return nil, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
		}
		qty = n
	}
	if !IsImageFile(path) {
		warning = fmt.Sprintf("%s: '%s' does not look like a supported image", rowLabel, filepath.Base(path))
	}

	return expandAssets(label, path, qty), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports assets from a CSV manifest.
// It automatically detects the delimiter and maps columns by header names.
// Relative file paths are resolved against the manifest's directory.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", filepath.Dir(path), result.Warnings)
}

// ImportCSVFromReader imports assets from a CSV reader with a specific
// delimiter. Paths are resolved against baseDir when it is not empty.
func ImportCSVFromReader(reader io.Reader, delimiter rune, baseDir string) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", baseDir, nil)
}

// ImportExcel imports assets from an Excel (.xlsx) manifest.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", filepath.Dir(path), nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into assets.
func importFromRows(rows [][]string, rowPrefix, baseDir string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Path == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: File")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		assets, errMsg, warning := parseRow(row, mapping, rowLabel, baseDir)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Assets = append(result.Assets, assets...)
	}

	return result
}
