package engine

import (
	"fmt"

	"github.com/piwi3910/GangSheet/internal/model"
)

// ComparisonScenario defines a named combination of settings and canvas to
// compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
	Canvas   model.PhysicalCanvas
}

// ComparisonResult holds the pack result and computed statistics for a
// single scenario. Err is set when the scenario's canvas is invalid.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.PackResult
	PackedCount  int
	FailedCount  int
	UsedLengthPx int
	UsedLengthCm float64
	Efficiency   float64
	Err          error
}

// CompareScenarios runs the pipeline once per scenario over the same assets
// and returns the results in scenario order. opts are applied to every
// pipeline (decoder, logger); progress callbacks are best left out.
func CompareScenarios(scenarios []ComparisonScenario, assets []model.SourceAsset, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cr := ComparisonResult{Scenario: scenario}

		canvas, err := scenario.Canvas.ToCanvasSpec()
		if err != nil {
			cr.Err = err
			results = append(results, cr)
			continue
		}

		result, err := New(scenario.Settings, opts...).Run(assets, canvas)
		if err != nil {
			cr.Err = err
			results = append(results, cr)
			continue
		}

		cr.Result = result
		cr.PackedCount = len(result.Packed)
		cr.FailedCount = len(result.Failed)
		cr.UsedLengthPx = result.UsedLengthPx()
		cr.UsedLengthCm = result.UsedLengthCm()
		cr.Efficiency = result.Efficiency()
		results = append(results, cr)
	}

	return results
}

// BestScenario returns the index of the result that places the most items,
// preferring the shorter layout on ties. Returns -1 if every scenario failed.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 ||
			r.PackedCount > results[best].PackedCount ||
			(r.PackedCount == results[best].PackedCount && r.UsedLengthPx < results[best].UsedLengthPx) {
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(settings model.PackSettings, canvas model.PhysicalCanvas) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: settings,
			Canvas:   canvas,
		},
	}

	// Scenario: Try the other algorithm
	altAlgo := settings
	if settings.Algorithm == model.AlgorithmGenetic {
		altAlgo.Algorithm = model.AlgorithmMaxRects
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "MaxRects Algorithm",
			Settings: altAlgo,
			Canvas:   canvas,
		})
	} else {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Genetic Algorithm",
			Settings: altAlgo,
			Canvas:   canvas,
		})
	}

	// Scenario: Toggle rotation
	rotation := canvas
	rotation.AllowRotation = !canvas.AllowRotation
	name := "Rotation Allowed"
	if !rotation.AllowRotation {
		name = "No Rotation"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: settings,
		Canvas:   rotation,
	})

	// Scenario: Toggle transparent margin trimming
	trim := settings
	trim.Trim = !settings.Trim
	name = "Trim Margins"
	if !trim.Trim {
		name = "No Trim"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: trim,
		Canvas:   canvas,
	})

	// Scenario: Tighter gap
	if canvas.GapCm > 0 {
		tightGap := canvas
		tightGap.GapCm = canvas.GapCm * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Gap %.2fcm (half)", tightGap.GapCm),
			Settings: settings,
			Canvas:   tightGap,
		})
	}

	return scenarios
}
