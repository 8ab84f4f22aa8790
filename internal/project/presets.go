package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/GangSheet/internal/model"
)

// DefaultPresetsPath returns the default file path for user canvas presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// ValidatePreset checks that a user preset has a name and a usable size.
func ValidatePreset(p model.CanvasPreset) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset has no name")
	}
	if p.WidthCm <= 0 || p.HeightCm <= 0 {
		return fmt.Errorf("preset %q must have a positive size, got %gx%gcm", p.Name, p.WidthCm, p.HeightCm)
	}
	return nil
}

// SaveCustomPresets saves user presets to a JSON file.
func SaveCustomPresets(path string, presets []model.CanvasPreset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomPresets loads user presets from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomPresets(path string) ([]model.CanvasPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.CanvasPreset{}, nil
		}
		return nil, err
	}

	var presets []model.CanvasPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	for _, p := range presets {
		if err := ValidatePreset(p); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if presets == nil {
		presets = []model.CanvasPreset{}
	}
	return presets, nil
}

// UpsertPreset replaces the preset with the same name or appends p.
func UpsertPreset(presets []model.CanvasPreset, p model.CanvasPreset) []model.CanvasPreset {
	for i := range presets {
		if presets[i].Name == p.Name {
			presets[i] = p
			return presets
		}
	}
	return append(presets, p)
}

// RemovePreset drops the preset called name and reports whether it existed.
func RemovePreset(presets []model.CanvasPreset, name string) ([]model.CanvasPreset, bool) {
	for i := range presets {
		if presets[i].Name == name {
			return append(presets[:i], presets[i+1:]...), true
		}
	}
	return presets, false
}

// AllPresets returns the built-in presets followed by the user presets. A
// user preset with a built-in name replaces the built-in one in place.
func AllPresets(custom []model.CanvasPreset) []model.CanvasPreset {
	all := append([]model.CanvasPreset(nil), model.CanvasPresets...)
	for _, p := range custom {
		all = UpsertPreset(all, p)
	}
	return all
}

// FindPreset looks name up among the built-in and user presets.
func FindPreset(custom []model.CanvasPreset, name string) (model.CanvasPreset, bool) {
	for _, p := range AllPresets(custom) {
		if p.Name == name {
			return p, true
		}
	}
	return model.CanvasPreset{}, false
}

// ExportPreset exports a single preset to a JSON file (for sharing).
func ExportPreset(path string, preset model.CanvasPreset) error {
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset imports a single preset from a JSON file.
func ImportPreset(path string) (model.CanvasPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CanvasPreset{}, err
	}

	var preset model.CanvasPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.CanvasPreset{}, err
	}
	if err := ValidatePreset(preset); err != nil {
		return model.CanvasPreset{}, err
	}
	return preset, nil
}
