// Package cli implements the gangsheet command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/GangSheet/internal/model"
	"github.com/piwi3910/GangSheet/internal/project"
)

// Version is set at build time with -ldflags "-X github.com/piwi3910/GangSheet/internal/cli.Version=...".
var Version = "dev"

// envPrefix prefixes every environment override, e.g. GANGSHEET_WIDTH_CM.
const envPrefix = "GANGSHEET"

// recentJobsLimit caps AppConfig.RecentJobs.
const recentJobsLimit = 10

// app holds the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	config  model.AppConfig
	presets []model.CanvasPreset
	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer
}

// NewRootCommand builds the gangsheet command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		out:    out,
		errOut: errOut,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	root := &cobra.Command{
		Use:   "gangsheet",
		Short: "Build DTF gang sheets from loose artwork",
		Long: `GangSheet trims, scales and packs artwork onto a DTF film roll.

Inputs can be image files, directories, CSV/Excel order sheets or YAML job
files. Settings come from flags, GANGSHEET_* environment variables and
~/.gangsheet/config.json, in that order.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ~/.gangsheet/config.json)")
	pf.Bool("json-logs", false, "write logs as JSON")
	pf.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")

	root.AddCommand(
		a.newPackCommand(),
		a.newCompareCommand(),
		a.newPresetsCommand(),
		a.newConfigCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, dangerStyle.Render("Error:")+" "+err.Error())
		return 1
	}
	return 0
}

// init loads the persisted config and user presets and layers defaults,
// environment and flags in viper.
func (a *app) init(cmd *cobra.Command) error {
	if a.cfgFile == "" {
		a.cfgFile = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load config %s: %w", a.cfgFile, err)
	}
	a.config = cfg

	presets, err := project.LoadCustomPresets(a.presetsPath())
	if err != nil {
		return fmt.Errorf("cannot load presets: %w", err)
	}
	a.presets = presets

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	setDefaults(a.v, cfg)
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("cannot bind flags: %w", err)
	}

	a.logger = newLogger(a.errOut, a.v.GetBool("json-logs"), a.v.GetInt("verbose"))
	a.logger.Debug("configuration loaded", "config", a.cfgFile, "user_presets", len(a.presets))
	return nil
}

// presetsPath keeps user presets next to the config file.
func (a *app) presetsPath() string {
	return filepath.Join(filepath.Dir(a.cfgFile), "presets.json")
}

// setDefaults registers the persisted config as the lowest viper layer.
func setDefaults(v *viper.Viper, cfg model.AppConfig) {
	v.SetDefault("preset", "")
	v.SetDefault("width-cm", cfg.DefaultWidthCm)
	v.SetDefault("height-cm", cfg.DefaultHeightCm)
	v.SetDefault("dpi", cfg.DefaultDPI)
	v.SetDefault("gap-cm", cfg.DefaultGapCm)
	v.SetDefault("rotate", cfg.DefaultAllowRotation)
	v.SetDefault("auto-scale", cfg.DefaultAutoScale)
	v.SetDefault("trim", cfg.DefaultTrim)
	v.SetDefault("alpha-threshold", int(cfg.DefaultAlphaThreshold))
	v.SetDefault("algorithm", string(cfg.DefaultAlgorithm))
	v.SetDefault("out", cfg.OutputDir)
	v.SetDefault("formats", cfg.OutputFormats)
	v.SetDefault("price-per-metre", cfg.PricePerMetre)
	v.SetDefault("json-logs", cfg.LogFormat == "json")
}

// newLogger builds the process logger. Warnings are always shown; each
// verbosity step lowers the level.
func newLogger(w io.Writer, jsonLogs bool, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// rememberJob records inputs in the recent job list when a config file
// already exists. Failures are logged only.
func (a *app) rememberJob(inputs []string) {
	if len(inputs) == 0 {
		return
	}
	if _, err := os.Stat(a.cfgFile); err != nil {
		return
	}
	path, err := filepath.Abs(inputs[0])
	if err != nil {
		path = inputs[0]
	}
	a.config.AddRecentJob(path, recentJobsLimit)
	if err := project.SaveAppConfig(a.cfgFile, a.config); err != nil {
		a.logger.Warn("cannot update recent jobs", "config", a.cfgFile, "error", err)
	}
}
