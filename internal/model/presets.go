package model

// CanvasPreset is a named roll or sheet format.
type CanvasPreset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"` // Maximum printable length for rolls
}

// Built-in canvas presets
var CanvasPresets = []CanvasPreset{
	{
		Name:        "58cm roll",
		Description: "Standard 60cm DTF film with 1cm unprintable edges",
		WidthCm:     58,
		HeightCm:    250,
	},
	{
		Name:        "60cm roll",
		Description: "Full-width 60cm DTF film",
		WidthCm:     60,
		HeightCm:    250,
	},
	{
		Name:        "30cm roll",
		Description: "Desktop A3+ DTF printers",
		WidthCm:     30,
		HeightCm:    100,
	},
	{
		Name:        "22in roll",
		Description: "US 22 inch gang sheet, 240 inch length",
		WidthCm:     55.88,
		HeightCm:    609.6,
	},
	{
		Name:        "A3 sheet",
		Description: "Single A3 film sheet",
		WidthCm:     29.7,
		HeightCm:    42,
	},
}

// GetPreset returns a preset by name, or the first preset if not found.
func GetPreset(name string) CanvasPreset {
	for _, p := range CanvasPresets {
		if p.Name == name {
			return p
		}
	}
	return CanvasPresets[0]
}

// LookupPreset returns a preset by name and whether it exists.
func LookupPreset(name string) (CanvasPreset, bool) {
	for _, p := range CanvasPresets {
		if p.Name == name {
			return p, true
		}
	}
	return CanvasPreset{}, false
}

// GetPresetNames returns a list of all available preset names.
func GetPresetNames() []string {
	var names []string
	for _, p := range CanvasPresets {
		names = append(names, p.Name)
	}
	return names
}
