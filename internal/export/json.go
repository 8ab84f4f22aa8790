package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/GangSheet/internal/model"
)

// LayoutManifest is the machine-readable form of a pack result.
type LayoutManifest struct {
	Version      int                     `json:"version"`
	JobName      string                  `json:"job_name,omitempty"`
	Settings     model.PackSettings      `json:"settings"`
	Result       model.PackResult        `json:"result"`
	UsedLengthPx int                     `json:"used_length_px"`
	Usage        model.RollUsageEstimate `json:"usage"`
}

// manifestVersion is bumped whenever LayoutManifest changes incompatibly.
const manifestVersion = 1

// NewLayoutManifest builds the manifest for result.
func NewLayoutManifest(result model.PackResult, opts ReportOptions) LayoutManifest {
	if result.Packed == nil {
		result.Packed = []model.PackedItem{}
	}
	if result.Failed == nil {
		result.Failed = []model.FailureRecord{}
	}
	return LayoutManifest{
		Version:      manifestVersion,
		JobName:      opts.JobName,
		Settings:     opts.Settings,
		Result:       result,
		UsedLengthPx: result.UsedLengthPx(),
		Usage:        model.EstimateRollUsage(result, opts.PricePerMetre),
	}
}

// WriteLayoutJSON encodes the manifest for result as indented JSON.
func WriteLayoutJSON(w io.Writer, result model.PackResult, opts ReportOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewLayoutManifest(result, opts)); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return nil
}

// ExportLayoutJSON writes the manifest for result to path.
func ExportLayoutJSON(path string, result model.PackResult, opts ReportOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteLayoutJSON(f, result, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
