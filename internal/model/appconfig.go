package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default canvas applied to new jobs
	DefaultPreset        string  `json:"default_preset"`
	DefaultWidthCm       float64 `json:"default_width_cm"`
	DefaultHeightCm      float64 `json:"default_height_cm"`
	DefaultDPI           float64 `json:"default_dpi"`
	DefaultGapCm         float64 `json:"default_gap_cm"`
	DefaultAllowRotation bool    `json:"default_allow_rotation"`

	// Default pipeline switches
	DefaultAutoScale      bool      `json:"default_auto_scale"`
	DefaultTrim           bool      `json:"default_trim"`
	DefaultAlphaThreshold uint8     `json:"default_alpha_threshold"`
	DefaultAlgorithm      Algorithm `json:"default_algorithm"`

	// Application preferences
	OutputDir     string   `json:"output_dir"`
	OutputFormats []string `json:"output_formats"`  // json, pdf, labels, dxf, xlsx
	PricePerMetre float64  `json:"price_per_metre"` // 0 = no cost estimate
	LogFormat     string   `json:"log_format"`      // "text" or "json"
	RecentJobs    []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the first canvas preset and DefaultPackSettings().
func DefaultAppConfig() AppConfig {
	preset := CanvasPresets[0]
	defaults := DefaultPackSettings()
	return AppConfig{
		DefaultPreset:         preset.Name,
		DefaultWidthCm:        preset.WidthCm,
		DefaultHeightCm:       preset.HeightCm,
		DefaultDPI:            300,
		DefaultGapCm:          1.0,
		DefaultAllowRotation:  true,
		DefaultAutoScale:      defaults.AutoScale,
		DefaultTrim:           defaults.Trim,
		DefaultAlphaThreshold: defaults.AlphaThreshold,
		DefaultAlgorithm:      defaults.Algorithm,
		OutputDir:             "gangsheet-out",
		OutputFormats:         []string{"json", "pdf"},
		PricePerMetre:         0,
		LogFormat:             "text",
		RecentJobs:            []string{},
	}
}

// ApplyToSettings copies the default switches from AppConfig into a PackSettings struct.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.AutoScale = c.DefaultAutoScale
	s.Trim = c.DefaultTrim
	s.AlphaThreshold = c.DefaultAlphaThreshold
	if alg, ok := ParseAlgorithm(string(c.DefaultAlgorithm)); ok {
		s.Algorithm = alg
	}
}

// PhysicalCanvas returns the default canvas described by this config.
func (c AppConfig) PhysicalCanvas() PhysicalCanvas {
	return PhysicalCanvas{
		WidthCm:       c.DefaultWidthCm,
		HeightCm:      c.DefaultHeightCm,
		DPI:           c.DefaultDPI,
		GapCm:         c.DefaultGapCm,
		AllowRotation: c.DefaultAllowRotation,
	}
}

// AddRecentJob records a job path at the front of RecentJobs, dropping
// duplicates and keeping at most limit entries.
func (c *AppConfig) AddRecentJob(path string, limit int) {
	jobs := []string{path}
	for _, j := range c.RecentJobs {
		if j != path {
			jobs = append(jobs, j)
		}
	}
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	c.RecentJobs = jobs
}
