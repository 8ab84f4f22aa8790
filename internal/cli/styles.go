package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/GangSheet/internal/engine"
	"github.com/piwi3910/GangSheet/internal/model"
)

var (
	colorAccent  = lipgloss.Color("#00FF99") // Success / values
	colorHeader  = lipgloss.Color("#874BFD") // Titles / borders
	colorSubtle  = lipgloss.Color("#64748B") // Labels
	colorDanger  = lipgloss.Color("#FF0055") // Failures
	colorWarning = lipgloss.Color("#F59E0B") // Warnings

	titleStyle  = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(colorSubtle).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	dangerStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHeader).
			Padding(0, 1)
)

func kv(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// renderPackSummary renders the result card printed after a pack run.
func renderPackSummary(name string, result model.PackResult, usage model.RollUsageEstimate, written []string) string {
	rows := []string{
		titleStyle.Render(fmt.Sprintf("Gang sheet %q", name)),
		"",
		kv("Placed", fmt.Sprintf("%d", len(result.Packed))),
		kv("Failed", fmt.Sprintf("%d", len(result.Failed))),
		kv("Roll width", fmt.Sprintf("%.2f cm", model.PxToCm(result.Canvas.WidthPx, result.Canvas.DPI))),
		kv("Used length", fmt.Sprintf("%.2f cm (%d px)", usage.UsedLengthCm, usage.UsedLengthPx)),
		kv("Efficiency", fmt.Sprintf("%.1f%%", usage.Efficiency)),
	}
	if usage.EstimatedCost > 0 {
		rows = append(rows, kv("Estimated cost", fmt.Sprintf("%.2f (%.0f cm billed)", usage.EstimatedCost, usage.BilledLengthCm)))
	}

	if len(result.Failed) > 0 {
		rows = append(rows, "", dangerStyle.Render("Not placed"))
		for _, f := range result.Failed {
			line := fmt.Sprintf("  %s: %s", f.Label, f.Reason)
			if f.Detail != "" {
				line += subtleStyle.Render(" (" + f.Detail + ")")
			}
			rows = append(rows, line)
		}
	}

	if len(written) > 0 {
		rows = append(rows, "", titleStyle.Render("Files"))
		for _, p := range written {
			rows = append(rows, "  "+filepath.ToSlash(p))
		}
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderComparison renders one row per scenario and marks the best one.
func renderComparison(results []engine.ComparisonResult, best int) string {
	header := fmt.Sprintf("  %-24s %7s %7s %12s %10s", "Scenario", "Placed", "Failed", "Length (cm)", "Efficiency")
	rows := []string{titleStyle.Render("Scenario comparison"), "", subtleStyle.Render(header)}

	for i, r := range results {
		marker := "  "
		if i == best {
			marker = "* "
		}
		if r.Err != nil {
			rows = append(rows, dangerStyle.Render(fmt.Sprintf("%s%-24s %s", marker, r.Scenario.Name, r.Err)))
			continue
		}
		line := fmt.Sprintf("%s%-24s %7d %7d %12.2f %9.1f%%",
			marker, r.Scenario.Name, r.PackedCount, r.FailedCount, r.UsedLengthCm, r.Efficiency)
		if i == best {
			line = valueStyle.Render(line)
		}
		rows = append(rows, line)
	}

	if best >= 0 {
		rows = append(rows, "", subtleStyle.Render("* best: most images placed, then shortest roll"))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderPresets renders the preset table, marking user presets.
func renderPresets(all []model.CanvasPreset, custom []model.CanvasPreset) string {
	user := make(map[string]bool, len(custom))
	for _, p := range custom {
		user[p.Name] = true
	}

	rows := []string{titleStyle.Render("Canvas presets"), ""}
	for _, p := range all {
		line := fmt.Sprintf("%-16s %7.2f x %7.2f cm", p.Name, p.WidthCm, p.HeightCm)
		if user[p.Name] {
			line += warnStyle.Render("  [user]")
		}
		if p.Description != "" {
			line += subtleStyle.Render("  " + p.Description)
		}
		rows = append(rows, line)
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// fileBase turns a job name into a safe file name stem.
func fileBase(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "gangsheet"
	}
	return out
}
