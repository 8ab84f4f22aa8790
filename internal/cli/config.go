package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GangSheet/internal/model"
	"github.com/piwi3910/GangSheet/internal/project"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage the persisted configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.config, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, subtleStyle.Render("# "+a.cfgFile))
			fmt.Fprintln(a.out, string(data))
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, a.cfgFile)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(a.cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgFile)
			}
			if err := project.SaveAppConfig(a.cfgFile, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("cannot write config: %w", err)
			}
			fmt.Fprintf(a.out, "wrote %s\n", a.cfgFile)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")

	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Back up the configuration and user presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportAllData(args[0], a.config, a.presets); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote backup %s\n", args[0])
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore the configuration and user presets from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.cfgFile, backup.Config); err != nil {
				return fmt.Errorf("cannot write config: %w", err)
			}
			if err := project.SaveCustomPresets(a.presetsPath(), backup.Presets); err != nil {
				return fmt.Errorf("cannot save presets: %w", err)
			}
			a.config, a.presets = backup.Config, backup.Presets
			fmt.Fprintf(a.out, "restored backup from %s (%d user presets)\n", backup.CreatedAt, len(backup.Presets))
			return nil
		},
	}

	cmd.AddCommand(show, path, initCmd, exportCmd, importCmd)
	return cmd
}
