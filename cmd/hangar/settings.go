package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/hangar/internal/config"
	"github.com/jbweber/hangar/internal/output"
)

// Settings commands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var (
	setInstallPath   string
	setDetectInstall bool
	setBIOSTemplate  string
	setVMXTemplate   string
)

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().StringVar(&setInstallPath, "install-path", "", "VM software install directory")
	settingsSetCmd.Flags().BoolVar(&setDetectInstall, "detect-install-path", false, "probe well-known install directories")
	settingsSetCmd.Flags().StringVar(&setBIOSTemplate, "bios-template", "", "original firmware template path (empty clears)")
	settingsSetCmd.Flags().StringVar(&setVMXTemplate, "vmx-template", "", "original VM template path (empty clears)")
	settingsSetCmd.MarkFlagsMutuallyExclusive("install-path", "detect-install-path")
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			settings := a.store.Settings()
			return printFormatted(func(f output.Formatter) (string, error) {
				return f.FormatSettings(settings)
			})
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change settings. Only the flags given are changed.

Example:
  hangar settings set --install-path /usr/lib/vmware
  hangar settings set --detect-install-path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			settings := a.store.Settings()
			changed := false

			switch {
			case setDetectInstall:
				path, err := config.DetectInstallPath()
				if err != nil {
					return fmt.Errorf("failed to detect install path: %w", err)
				}
				settings.VMwareInstallPath = &path
				changed = true
			case cmd.Flags().Changed("install-path"):
				path, err := config.ValidateInstallPath(setInstallPath)
				if err != nil {
					return err
				}
				settings.VMwareInstallPath = &path
				changed = true
			}

			if cmd.Flags().Changed("bios-template") {
				settings.OriginalBIOSTemplatePath, changed = optionalPath(setBIOSTemplate), true
			}
			if cmd.Flags().Changed("vmx-template") {
				settings.OriginalVMXTemplatePath, changed = optionalPath(setVMXTemplate), true
			}
			if !changed {
				return fmt.Errorf("nothing to change (see --help)")
			}

			if err := waitSaved(ctx, a.store.SetSettings(settings)); err != nil {
				return err
			}
			fmt.Println("✓ Settings saved")
			return nil
		})
	},
}

// optionalPath returns nil for an empty value.
func optionalPath(p string) *string {
	if p == "" {
		return nil
	}
	return &p
}
