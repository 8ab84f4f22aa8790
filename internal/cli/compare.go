package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GangSheet/internal/engine"
)

func (a *app) newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [inputs...]",
		Short: "Compare roll usage across setting variants",
		Long: `Compare packs the same inputs with the current settings and a few
variants (other algorithm, rotation and trimming toggled, half the gap) and
prints placed count, used length and efficiency for each. No files are written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runCompare,
	}
	addCanvasFlags(cmd.Flags())
	addSettingsFlags(cmd.Flags())
	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, args []string) error {
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
	if _, err := canvas.ToCanvasSpec(); err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(settings, canvas)
	results := engine.CompareScenarios(scenarios, imported.Assets, engine.WithLogger(a.logger))
	best := engine.BestScenario(results)
	if best >= 0 {
		a.logger.Info("comparison finished", "best", results[best].Scenario.Name)
	}

	fmt.Fprintln(a.out, renderComparison(results, best))
	return nil
}
