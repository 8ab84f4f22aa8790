package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GangSheet/internal/model"
	"github.com/piwi3910/GangSheet/internal/project"
)

func (a *app) newPresetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and manage canvas presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, renderPresets(project.AllPresets(a.presets), a.presets))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add or replace a user preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetFloat64("width-cm")
			height, _ := cmd.Flags().GetFloat64("height-cm")
			desc, _ := cmd.Flags().GetString("description")
			p := model.CanvasPreset{Name: args[0], Description: desc, WidthCm: width, HeightCm: height}
			if err := project.ValidatePreset(p); err != nil {
				return err
			}
			return a.savePresets(project.UpsertPreset(a.presets, p), "saved preset %q", p.Name)
		},
	}
	add.Flags().Float64("width-cm", 0, "usable width in cm")
	add.Flags().Float64("height-cm", 0, "maximum length in cm")
	add.Flags().String("description", "", "short description")
	_ = add.MarkFlagRequired("width-cm")
	_ = add.MarkFlagRequired("height-cm")

	remove := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a user preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, ok := project.RemovePreset(a.presets, args[0])
			if !ok {
				return fmt.Errorf("no user preset named %q", args[0])
			}
			return a.savePresets(presets, "removed preset %q", args[0])
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a preset to a JSON file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := project.FindPreset(a.presets, args[0])
			if !ok {
				return fmt.Errorf("unknown canvas preset %q", args[0])
			}
			if err := project.ExportPreset(args[1], p); err != nil {
				return fmt.Errorf("cannot export preset: %w", err)
			}
			fmt.Fprintf(a.out, "exported preset %q to %s\n", p.Name, args[1])
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add a preset from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportPreset(args[0])
			if err != nil {
				return fmt.Errorf("cannot import preset: %w", err)
			}
			return a.savePresets(project.UpsertPreset(a.presets, p), "imported preset %q", p.Name)
		},
	}

	cmd.AddCommand(add, remove, exportCmd, importCmd)
	return cmd
}

func (a *app) savePresets(presets []model.CanvasPreset, format string, args ...interface{}) error {
	if err := project.SaveCustomPresets(a.presetsPath(), presets); err != nil {
		return fmt.Errorf("cannot save presets: %w", err)
	}
	a.presets = presets
	fmt.Fprintf(a.out, format+"\n", args...)
	return nil
}
