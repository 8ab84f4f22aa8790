package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/GangSheet/internal/model"
)

// Format names accepted by ExportAll.
const (
	FormatJSON   = "json"
	FormatPDF    = "pdf"
	FormatLabels = "labels"
	FormatDXF    = "dxf"
	FormatXLSX   = "xlsx"
)

// Formats lists every supported output format in write order.
var Formats = []string{FormatJSON, FormatPDF, FormatLabels, FormatDXF, FormatXLSX}

// fileNames maps a format to the file name suffix it is written as.
var fileNames = map[string]string{
	FormatJSON:   ".layout.json",
	FormatPDF:    ".proof.pdf",
	FormatLabels: ".labels.pdf",
	FormatDXF:    ".cut.dxf",
	FormatXLSX:   ".placements.xlsx",
}

// ParseFormats normalises a list of format names, dropping duplicates.
// "all" expands to every format.
func ParseFormats(names []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if n == "all" {
			return append([]string(nil), Formats...), nil
		}
		if _, ok := fileNames[n]; !ok {
			return nil, fmt.Errorf("unknown output format %q (supported: %s)", n, strings.Join(Formats, ", "))
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out, nil
}

// OutputPath returns the file formats are written to for a job base name.
func OutputPath(dir, base, format string) string {
	return filepath.Join(dir, base+fileNames[format])
}

// ExportAll writes result in each format into dir and returns the written
// paths. Formats that need placed items are skipped when nothing was placed;
// the JSON manifest is always written.
func ExportAll(dir, base string, formats []string, result model.PackResult, opts ReportOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, format := range formats {
		if format != FormatJSON && len(result.Packed) == 0 {
			continue
		}
		path := OutputPath(dir, base, format)

		var err error
		switch format {
		case FormatJSON:
			err = ExportLayoutJSON(path, result, opts)
		case FormatPDF:
			err = ExportLayoutPDF(path, result, opts)
		case FormatLabels:
			err = ExportLabels(path, result)
		case FormatDXF:
			err = ExportCutDXF(path, result)
		case FormatXLSX:
			err = ExportPlacementsXLSX(path, result)
		default:
			err = fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return written, fmt.Errorf("%s export failed: %w", format, err)
		}
		written = append(written, path)
	}
	return written, nil
}
