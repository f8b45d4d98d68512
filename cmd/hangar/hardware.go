package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/naming"
	"github.com/jbweber/hangar/internal/output"
)

// Hardware profile commands
var hardwareCmd = &cobra.Command{
	Use:     "hardware",
	Aliases: []string{"hw"},
	Short:   "Manage hardware profiles",
	Long: `Manage hardware profiles.

A hardware profile pairs a firmware image with a VM executable. Containers may
reference a profile; the profile is applied to the domain when it is started.`,
}

var (
	hwName     string
	hwBIOSPath string
	hwVMXPath  string
	hwID       string
)

func init() {
	hardwareCmd.AddCommand(hardwareListCmd)
	hardwareCmd.AddCommand(hardwareAddCmd)
	hardwareCmd.AddCommand(hardwareRemoveCmd)
	hardwareCmd.AddCommand(hardwareImportCmd)

	hardwareAddCmd.Flags().StringVar(&hwName, "name", "", "display name")
	hardwareAddCmd.Flags().StringVar(&hwBIOSPath, "bios", "", "path to the firmware image")
	hardwareAddCmd.Flags().StringVar(&hwVMXPath, "vmx", "", "path to the VM executable")
	hardwareAddCmd.Flags().StringVar(&hwID, "id", "", "explicit id (default derived from the paths)")
	_ = hardwareAddCmd.MarkFlagRequired("bios")
	_ = hardwareAddCmd.MarkFlagRequired("vmx")
}

var hardwareListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List hardware profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			hardware := a.store.Hardware()
			return printFormatted(func(f output.Formatter) (string, error) {
				return f.FormatHardwareList(hardware)
			})
		})
	},
}

var hardwareAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a hardware profile",
	Long: `Add a hardware profile, or replace the one with the same id.

Example:
  hangar hardware add --name legacy --bios /srv/bios/legacy.rom --vmx /usr/bin/qemu-system-x86_64`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			h := v1alpha1.HardwareProfile{
				ID:        strings.TrimSpace(hwID),
				Name:      strings.TrimSpace(hwName),
				BIOSPath:  strings.TrimSpace(hwBIOSPath),
				VMXPath:   strings.TrimSpace(hwVMXPath),
				CreatedAt: v1alpha1.Now(),
			}
			if h.ID == "" {
				h.ID = naming.HardwareIDFromPaths(h.BIOSPath, h.VMXPath)
			}
			if h.Name == "" {
				h.Name = naming.ContainerNameFromPath(h.VMXPath)
			}
			if existing, ok := a.store.HardwareByID(h.ID); ok {
				h.CreatedAt = existing.CreatedAt
			}
			if err := h.Validate(); err != nil {
				return fmt.Errorf("invalid hardware profile: %w", err)
			}

			if err := waitSaved(ctx, a.store.AddHardware(h)); err != nil {
				return err
			}
			fmt.Printf("✓ Hardware profile %s (%s) saved\n", h.Name, h.ID)
			return nil
		})
	},
}

var hardwareRemoveCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a hardware profile",
	Long: `Remove a hardware profile.

Containers that reference the profile keep the reference and are listed as
dangling until they are updated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			h, err := findHardware(a.store.Hardware(), args[0])
			if err != nil {
				return err
			}

			if err := waitSaved(ctx, a.store.RemoveHardware(h.ID)); err != nil {
				return err
			}

			if len(a.store.Hardware()) == 0 {
				a.log.Warn().Msg("the last hardware profile was removed; empty hardware tables are not persisted")
			}
			for _, c := range a.store.DanglingContainers() {
				if c.HardwareID != nil && *c.HardwareID == h.ID {
					fmt.Printf("! Container %s still references %s\n", c.Name, h.ID)
				}
			}
			fmt.Printf("✓ Hardware profile %s removed\n", h.Name)
			return nil
		})
	},
}

var hardwareImportCmd = &cobra.Command{
	Use:   "import <batch.yaml>",
	Short: "Merge hardware profiles from a batch file",
	Long: `Merge a YAML list of hardware profiles into the table.

Entries whose id matches an existing profile replace it in place; new entries
are appended. Missing ids are derived from the bios and vmx paths, so importing
the same scan twice is idempotent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			raw, err := readBatch[v1alpha1.HardwareProfile](args[0])
			if err != nil {
				return err
			}
			batch, err := normalizeHardwareBatch(raw)
			if err != nil {
				return err
			}

			if err := waitSaved(ctx, a.store.MergeHardwareBatch(batch)); err != nil {
				return err
			}
			fmt.Printf("✓ Merged %d hardware profile(s), %d total\n", len(batch), len(a.store.Hardware()))
			return nil
		})
	},
}
