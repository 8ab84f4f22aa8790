package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/GangSheet/internal/model"
)

// JobFile is a YAML job description: an optional canvas and settings block
// plus the list of artworks to pack.
//
//	canvas:
//	  preset: 58cm roll
//	  gap_cm: 0.5
//	settings:
//	  algorithm: genetic
//	assets:
//	  - file: logos/front.png
//	    quantity: 4
type JobFile struct {
	Name     string       `yaml:"name"`
	Canvas   *JobCanvas   `yaml:"canvas"`
	Settings *JobSettings `yaml:"settings"`
	Assets   []JobAsset   `yaml:"assets"`
}

// JobCanvas overrides parts of the default canvas. Zero values keep the
// default.
type JobCanvas struct {
	Preset        string  `yaml:"preset"`
	WidthCm       float64 `yaml:"width_cm"`
	HeightCm      float64 `yaml:"height_cm"`
	DPI           float64 `yaml:"dpi"`
	GapCm         float64 `yaml:"gap_cm"`
	AllowRotation *bool   `yaml:"allow_rotation"`
}

// JobSettings overrides pipeline switches. Unset fields keep the default.
type JobSettings struct {
	Algorithm      string `yaml:"algorithm"`
	AutoScale      *bool  `yaml:"auto_scale"`
	Trim           *bool  `yaml:"trim"`
	AlphaThreshold *int   `yaml:"alpha_threshold"`
}

// JobAsset is one artwork entry of a job file.
type JobAsset struct {
	File     string `yaml:"file"`
	Label    string `yaml:"label"`
	Quantity int    `yaml:"quantity"`
}

// Apply returns base with the job's canvas overrides applied. A preset sets
// width and height first; explicit sizes win over the preset.
func (c *JobCanvas) Apply(base model.PhysicalCanvas) (model.PhysicalCanvas, error) {
	return c.ApplyPresets(base, model.CanvasPresets)
}

// ApplyPresets is Apply with the preset name resolved against presets.
func (c *JobCanvas) ApplyPresets(base model.PhysicalCanvas, presets []model.CanvasPreset) (model.PhysicalCanvas, error) {
	if c == nil {
		return base, nil
	}
	out := base
	if c.Preset != "" {
		p, ok := findPreset(presets, c.Preset)
		if !ok {
			return base, fmt.Errorf("unknown canvas preset %q", c.Preset)
		}
		out.WidthCm, out.HeightCm = p.WidthCm, p.HeightCm
	}
	if c.WidthCm != 0 {
		out.WidthCm = c.WidthCm
	}
	if c.HeightCm != 0 {
		out.HeightCm = c.HeightCm
	}
	if c.DPI != 0 {
		out.DPI = c.DPI
	}
	if c.GapCm != 0 {
		out.GapCm = c.GapCm
	}
	if c.AllowRotation != nil {
		out.AllowRotation = *c.AllowRotation
	}
	return out, nil
}

func findPreset(presets []model.CanvasPreset, name string) (model.CanvasPreset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return model.CanvasPreset{}, false
}

// Apply returns base with the job's setting overrides applied.
func (s *JobSettings) Apply(base model.PackSettings) (model.PackSettings, error) {
	if s == nil {
		return base, nil
	}
	out := base
	if s.Algorithm != "" {
		alg, ok := model.ParseAlgorithm(s.Algorithm)
		if !ok {
			return base, fmt.Errorf("unknown algorithm %q", s.Algorithm)
		}
		out.Algorithm = alg
	}
	if s.AutoScale != nil {
		out.AutoScale = *s.AutoScale
	}
	if s.Trim != nil {
		out.Trim = *s.Trim
	}
	if s.AlphaThreshold != nil {
		if *s.AlphaThreshold < 0 || *s.AlphaThreshold > 255 {
			return base, fmt.Errorf("alpha_threshold must be between 0 and 255, got %d", *s.AlphaThreshold)
		}
		out.AlphaThreshold = uint8(*s.AlphaThreshold)
	}
	return out, nil
}

// ImportYAML imports a YAML job file. Relative asset paths are resolved
// against the job file's directory.
func ImportYAML(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportYAMLFromReader(bytes.NewReader(data), filepath.Dir(path))
}

// ImportYAMLFromReader parses a job file from r. Paths are resolved against
// baseDir when it is not empty.
func ImportYAMLFromReader(r io.Reader, baseDir string) ImportResult {
	result := ImportResult{}

	var job JobFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		if err == io.EOF {
			result.Errors = append(result.Errors, "File is empty")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot read job file: %v", err))
		}
		return result
	}
	result.Job = &job

	if len(job.Assets) == 0 {
		result.Warnings = append(result.Warnings, "Job file lists no assets")
	}

	for i, a := range job.Assets {
		entry := fmt.Sprintf("Asset %d", i+1)
		if a.File == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing file value", entry))
			continue
		}
		qty := a.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Quantity must be positive", entry))
			continue
		}

		p := resolvePath(a.File, baseDir)
		label := a.Label
		if label == "" {
			label = labelFromPath(p)
		}
		if !IsImageFile(p) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: '%s' does not look like a supported image", entry, filepath.Base(p)))
		}
		result.Assets = append(result.Assets, expandAssets(label, p, qty)...)
	}

	return result
}
