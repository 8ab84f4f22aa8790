package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GangSheet/internal/engine"
	"github.com/piwi3910/GangSheet/internal/export"
	"github.com/piwi3910/GangSheet/internal/importer"
	"github.com/piwi3910/GangSheet/internal/model"
)

func (a *app) newPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack [inputs...]",
		Short: "Pack artwork onto a roll and write the gang sheet files",
		Long: `Pack trims, scales and places every input image on the roll and writes the
selected output files.

Examples:
  gangsheet pack ./artwork --preset "30cm roll" --formats pdf,dxf
  gangsheet pack order.csv --gap-cm 0.5 --algorithm genetic
  gangsheet pack job.yaml -o ./out`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runPack,
	}

	f := cmd.Flags()
	addCanvasFlags(f)
	addSettingsFlags(f)
	d := model.DefaultAppConfig()
	f.StringP("out", "o", d.OutputDir, "output directory")
	f.StringSlice("formats", d.OutputFormats, "output formats: "+strings.Join(export.Formats, ", ")+" or all")
	f.Float64("price-per-metre", d.PricePerMetre, "film price per metre for the cost estimate (0 = off)")
	f.String("name", "", "job name used for titles and file names")
	f.Bool("no-progress", false, "hide the progress bar")
	return cmd
}

func (a *app) runPack(cmd *cobra.Command, args []string) error {
	imported, err := a.importInputs(cmd, args)
	if err != nil {
		return err
	}

	canvas, err := a.resolveCanvas(cmd, imported.Job)
	if err != nil {
		return err
	}
	settings, err := a.resolveSettings(cmd, imported.Job)
	if err != nil {
		return err
	}
	spec, err := canvas.ToCanvasSpec()
	if err != nil {
		return err
	}
	formats, err := export.ParseFormats(splitList(a.v.GetStringSlice("formats")))
	if err != nil {
		return err
	}

	bar := newProgressBar(a.errOut, !a.v.GetBool("no-progress"))
	pipeline := engine.New(settings,
		engine.WithLogger(a.logger),
		engine.WithProgress(bar.Update),
	)
	result, err := pipeline.Run(imported.Assets, spec)
	bar.Finish()
	if err != nil {
		return err
	}

	for _, line := range engine.FormatViolations(engine.CheckLayout(result)) {
		fmt.Fprintln(a.errOut, warnStyle.Render("layout check: ")+line)
	}

	name := jobName(a.v.GetString("name"), imported.Job, args)
	opts := export.ReportOptions{
		JobName:       name,
		Settings:      settings,
		PricePerMetre: a.v.GetFloat64("price-per-metre"),
	}
	written, err := export.ExportAll(a.v.GetString("out"), fileBase(name), formats, result, opts)
	if err != nil {
		return err
	}

	usage := model.EstimateRollUsage(result, opts.PricePerMetre)
	fmt.Fprintln(a.out, renderPackSummary(name, result, usage, written))
	a.rememberJob(args)
	return nil
}

// importInputs reads every input and reports import problems. It fails only
// when no artwork at all was found.
func (a *app) importInputs(cmd *cobra.Command, args []string) (importer.ImportResult, error) {
	recursive, _ := cmd.Flags().GetBool("recursive")
	imported := importer.ImportPaths(args, recursive)

	for _, w := range imported.Warnings {
		a.logger.Warn(w)
	}
	for _, e := range imported.Errors {
		fmt.Fprintln(a.errOut, dangerStyle.Render("input: ")+e)
	}
	if len(imported.Assets) == 0 {
		return imported, errors.New("no artwork found in the given inputs")
	}
	a.logger.Info("inputs imported", "assets", len(imported.Assets), "errors", len(imported.Errors))
	return imported, nil
}

// jobName picks the --name flag, then the job file name, then the first
// input's base name.
func jobName(flag string, job *importer.JobFile, args []string) string {
	if flag != "" {
		return flag
	}
	if job != nil && job.Name != "" {
		return job.Name
	}
	if len(args) > 0 {
		base := filepath.Base(filepath.Clean(args[0]))
		if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" && name != "." {
			return name
		}
	}
	return "gangsheet"
}
