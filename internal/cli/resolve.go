package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/GangSheet/internal/importer"
	"github.com/piwi3910/GangSheet/internal/model"
	"github.com/piwi3910/GangSheet/internal/project"
)

// addCanvasFlags registers the roll geometry flags. Their defaults are the
// built-in ones; the effective defaults come from the config file via viper.
func addCanvasFlags(f *pflag.FlagSet) {
	d := model.DefaultAppConfig()
	f.String("preset", "", "canvas preset name (see 'gangsheet presets')")
	f.Float64("width-cm", d.DefaultWidthCm, "usable roll width in cm")
	f.Float64("height-cm", d.DefaultHeightCm, "maximum roll length in cm")
	f.Float64("dpi", d.DefaultDPI, "print resolution")
	f.Float64("gap-cm", d.DefaultGapCm, "cutting gap between images in cm")
	f.Bool("rotate", d.DefaultAllowRotation, "allow 90 degree rotation")
}

// addSettingsFlags registers the preparation and packing switches.
func addSettingsFlags(f *pflag.FlagSet) {
	d := model.DefaultAppConfig()
	f.Bool("auto-scale", d.DefaultAutoScale, "downscale images wider than the roll")
	f.Bool("trim", d.DefaultTrim, "crop transparent margins")
	f.Int("alpha-threshold", int(d.DefaultAlphaThreshold), "alpha above which a pixel counts as content (0-255)")
	f.String("algorithm", string(d.DefaultAlgorithm), "packing algorithm: maxrects or genetic")
	f.BoolP("recursive", "r", false, "scan directories recursively")
}

// explicit reports whether key was given on the command line or through the
// environment, as opposed to coming from the config file or defaults.
func explicit(cmd *cobra.Command, key string) bool {
	if cmd.Flags().Changed(key) {
		return true
	}
	_, ok := os.LookupEnv(envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	return ok
}

var canvasFloatKeys = []struct {
	key   string
	field func(*model.PhysicalCanvas) *float64
}{
	{"width-cm", func(c *model.PhysicalCanvas) *float64 { return &c.WidthCm }},
	{"height-cm", func(c *model.PhysicalCanvas) *float64 { return &c.HeightCm }},
	{"dpi", func(c *model.PhysicalCanvas) *float64 { return &c.DPI }},
	{"gap-cm", func(c *model.PhysicalCanvas) *float64 { return &c.GapCm }},
}

// resolveCanvas builds the physical canvas. Layers, lowest first: config
// file, environment and flags via viper, a preset, the job file's canvas
// block, then flags given on the command line again.
func (a *app) resolveCanvas(cmd *cobra.Command, job *importer.JobFile) (model.PhysicalCanvas, error) {
	canvas := model.PhysicalCanvas{
		AllowRotation: a.v.GetBool("rotate"),
	}
	for _, k := range canvasFloatKeys {
		*k.field(&canvas) = a.v.GetFloat64(k.key)
	}

	applyPreset := func(fromCommandLine bool) error {
		name := a.v.GetString("preset")
		if name == "" {
			return nil
		}
		p, ok := project.FindPreset(a.presets, name)
		if !ok {
			return fmt.Errorf("unknown canvas preset %q (see 'gangsheet presets')", name)
		}
		set := explicit
		if fromCommandLine {
			set = func(cmd *cobra.Command, key string) bool { return cmd.Flags().Changed(key) }
		}
		if !set(cmd, "width-cm") {
			canvas.WidthCm = p.WidthCm
		}
		if !set(cmd, "height-cm") {
			canvas.HeightCm = p.HeightCm
		}
		return nil
	}
	if err := applyPreset(false); err != nil {
		return canvas, err
	}

	if job == nil || job.Canvas == nil {
		return canvas, nil
	}

	canvas, err := job.Canvas.ApplyPresets(canvas, project.AllPresets(a.presets))
	if err != nil {
		return canvas, fmt.Errorf("job file: %w", err)
	}
	if cmd.Flags().Changed("preset") {
		if err := applyPreset(true); err != nil {
			return canvas, err
		}
	}
	for _, k := range canvasFloatKeys {
		if cmd.Flags().Changed(k.key) {
			*k.field(&canvas) = a.v.GetFloat64(k.key)
		}
	}
	if cmd.Flags().Changed("rotate") {
		canvas.AllowRotation = a.v.GetBool("rotate")
	}
	return canvas, nil
}

// resolveSettings builds the pipeline switches with the same layering as
// resolveCanvas.
func (a *app) resolveSettings(cmd *cobra.Command, job *importer.JobFile) (model.PackSettings, error) {
	settings, err := a.settingsFromViper(func(string) bool { return true })
	if err != nil {
		return settings, err
	}
	if job == nil || job.Settings == nil {
		return settings, nil
	}

	settings, err = job.Settings.Apply(settings)
	if err != nil {
		return settings, fmt.Errorf("job file: %w", err)
	}
	changed, err := a.settingsFromViper(cmd.Flags().Changed)
	if err != nil {
		return settings, err
	}
	if cmd.Flags().Changed("algorithm") {
		settings.Algorithm = changed.Algorithm
	}
	if cmd.Flags().Changed("auto-scale") {
		settings.AutoScale = changed.AutoScale
	}
	if cmd.Flags().Changed("trim") {
		settings.Trim = changed.Trim
	}
	if cmd.Flags().Changed("alpha-threshold") {
		settings.AlphaThreshold = changed.AlphaThreshold
	}
	return settings, nil
}

// settingsFromViper reads and validates the switches; keys for which use
// reports false are left at zero and not validated.
func (a *app) settingsFromViper(use func(string) bool) (model.PackSettings, error) {
	var s model.PackSettings
	if use("algorithm") {
		alg, ok := model.ParseAlgorithm(strings.ToLower(a.v.GetString("algorithm")))
		if !ok {
			return s, fmt.Errorf("unknown algorithm %q (use maxrects or genetic)", a.v.GetString("algorithm"))
		}
		s.Algorithm = alg
	}
	if use("alpha-threshold") {
		t := a.v.GetInt("alpha-threshold")
		if t < 0 || t > 255 {
			return s, fmt.Errorf("alpha-threshold must be between 0 and 255, got %d", t)
		}
		s.AlphaThreshold = uint8(t)
	}
	if use("auto-scale") {
		s.AutoScale = a.v.GetBool("auto-scale")
	}
	if use("trim") {
		s.Trim = a.v.GetBool("trim")
	}
	return s, nil
}

// splitList flattens comma separated entries, as environment variables
// arrive as a single string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
