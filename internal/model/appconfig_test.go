package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultPackSettings()

	if cfg.DefaultAutoScale != defaults.AutoScale {
		t.Errorf("AutoScale mismatch: config=%v settings=%v", cfg.DefaultAutoScale, defaults.AutoScale)
	}
	if cfg.DefaultTrim != defaults.Trim {
		t.Errorf("Trim mismatch: config=%v settings=%v", cfg.DefaultTrim, defaults.Trim)
	}
	if cfg.DefaultAlgorithm != defaults.Algorithm {
		t.Errorf("Algorithm mismatch: config=%s settings=%s", cfg.DefaultAlgorithm, defaults.Algorithm)
	}
	if cfg.DefaultPreset != CanvasPresets[0].Name {
		t.Errorf("expected default preset %s, got %s", CanvasPresets[0].Name, cfg.DefaultPreset)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultAutoScale = false
	cfg.DefaultAlphaThreshold = 12
	cfg.DefaultAlgorithm = AlgorithmGenetic

	s := DefaultPackSettings()
	cfg.ApplyToSettings(&s)

	if s.AutoScale {
		t.Error("expected AutoScale=false")
	}
	if s.AlphaThreshold != 12 {
		t.Errorf("expected AlphaThreshold=12, got %d", s.AlphaThreshold)
	}
	if s.Algorithm != AlgorithmGenetic {
		t.Errorf("expected genetic, got %s", s.Algorithm)
	}
}

func TestApplyToSettingsIgnoresUnknownAlgorithm(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultAlgorithm = "bogus"

	s := DefaultPackSettings()
	cfg.ApplyToSettings(&s)

	if s.Algorithm != AlgorithmMaxRects {
		t.Errorf("expected algorithm to stay maxrects, got %s", s.Algorithm)
	}
}

func TestAppConfigPhysicalCanvas(t *testing.T) {
	cfg := DefaultAppConfig()
	spec, err := cfg.PhysicalCanvas().ToCanvasSpec()
	if err != nil {
		t.Fatalf("default config should describe a valid canvas: %v", err)
	}
	if spec.WidthPx != 6850 || spec.PaddingPx != 118 {
		t.Errorf("unexpected default canvas %+v", spec)
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.yaml", 3)
	cfg.AddRecentJob("b.yaml", 3)
	cfg.AddRecentJob("a.yaml", 3)
	cfg.AddRecentJob("c.yaml", 3)
	cfg.AddRecentJob("d.yaml", 3)

	want := []string{"d.yaml", "c.yaml", "a.yaml"}
	if len(cfg.RecentJobs) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentJobs)
	}
	for i := range want {
		if cfg.RecentJobs[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cfg.RecentJobs[i])
		}
	}
}
