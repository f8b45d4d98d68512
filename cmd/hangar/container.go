package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/naming"
	"github.com/jbweber/hangar/internal/output"
	"github.com/jbweber/hangar/internal/store"
	"github.com/jbweber/hangar/internal/vmctl"
)

// Container commands
var containerCmd = &cobra.Command{
	Use:     "container",
	Aliases: []string{"ct"},
	Short:   "Manage containers",
	Long: `Manage containers.

A container is a managed record for one VM definition file (a libvirt domain
XML). It is not an OS-level container.`,
}

var (
	ctName          string
	ctHardware      string
	ctID            string
	ctVMXPath       string
	ctClearHardware bool
)

func init() {
	containerCmd.AddCommand(containerListCmd)
	containerCmd.AddCommand(containerAddCmd)
	containerCmd.AddCommand(containerRemoveCmd)
	containerCmd.AddCommand(containerUpdateCmd)
	containerCmd.AddCommand(containerMoveCmd)
	containerCmd.AddCommand(containerImportCmd)
	for _, op := range vmctl.Operations {
		containerCmd.AddCommand(newOperationCmd(op))
	}

	containerAddCmd.Flags().StringVar(&ctName, "name", "", "display name (default derived from the path)")
	containerAddCmd.Flags().StringVar(&ctHardware, "hardware", "", "hardware profile id or name")
	containerAddCmd.Flags().StringVar(&ctID, "id", "", "explicit id (default derived from the path)")

	containerUpdateCmd.Flags().StringVar(&ctName, "name", "", "new display name")
	containerUpdateCmd.Flags().StringVar(&ctVMXPath, "vmx", "", "new definition path")
	containerUpdateCmd.Flags().StringVar(&ctHardware, "hardware", "", "hardware profile id or name")
	containerUpdateCmd.Flags().BoolVar(&ctClearHardware, "clear-hardware", false, "remove the hardware reference")
	containerUpdateCmd.MarkFlagsMutuallyExclusive("hardware", "clear-hardware")
}

var containerListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List containers in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			containers := a.store.Containers()
			hardware := a.store.Hardware()
			return printFormatted(func(f output.Formatter) (string, error) {
				return f.FormatContainerList(containers, hardware)
			})
		})
	},
}

var containerAddCmd = &cobra.Command{
	Use:   "add <definition.xml>",
	Short: "Add a container for a VM definition",
	Long: `Add a container for a VM definition file, or replace the one with the
same id.

Example:
  hangar container add /var/lib/hangar/vms/web-01.xml --hardware legacy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}

			c := v1alpha1.Container{
				ID:        strings.TrimSpace(ctID),
				Name:      strings.TrimSpace(ctName),
				VMXPath:   path,
				CreatedAt: v1alpha1.Now(),
			}
			if c.ID == "" {
				c.ID = naming.ContainerIDFromPath(path)
			}
			if c.Name == "" {
				c.Name = naming.ContainerNameFromPath(path)
			}
			if ctHardware != "" {
				h, err := findHardware(a.store.Hardware(), ctHardware)
				if err != nil {
					return err
				}
				c.HardwareID = &h.ID
			}
			if existing, ok := a.store.ContainerByID(c.ID); ok {
				c.CreatedAt = existing.CreatedAt
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("invalid container: %w", err)
			}

			if err := waitSaved(ctx, a.store.AddContainer(c)); err != nil {
				return err
			}
			fmt.Printf("✓ Container %s (%s) saved\n", c.Name, c.ID)
			return nil
		})
	},
}

var containerRemoveCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a container",
	Long: `Remove a container record. The VM definition file and any libvirt domain
are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			c, err := findContainer(a.store.Containers(), args[0])
			if err != nil {
				return err
			}

			if err := waitSaved(ctx, a.store.RemoveContainer(c.ID)); err != nil {
				return err
			}
			fmt.Printf("✓ Container %s removed\n", c.Name)
			return nil
		})
	},
}

var containerUpdateCmd = &cobra.Command{
	Use:   "update <id|name>",
	Short: "Update a container's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			c, err := findContainer(a.store.Containers(), args[0])
			if err != nil {
				return err
			}

			var patch store.ContainerPatch
			if cmd.Flags().Changed("name") {
				name := strings.TrimSpace(ctName)
				if name == "" {
					return fmt.Errorf("--name must not be empty")
				}
				patch.Name = &name
			}
			if cmd.Flags().Changed("vmx") {
				path, err := absPath(ctVMXPath)
				if err != nil {
					return err
				}
				patch.VMXPath = &path
			}
			if cmd.Flags().Changed("hardware") {
				h, err := findHardware(a.store.Hardware(), ctHardware)
				if err != nil {
					return err
				}
				patch.HardwareID = &h.ID
			}
			patch.ClearHardware = ctClearHardware

			if !a.store.UpdateContainer(c.ID, patch) {
				return fmt.Errorf("container %q not found", c.ID)
			}
			// UpdateContainer only changes memory.
			if err := waitSaved(ctx, a.store.SaveContainers()); err != nil {
				return err
			}
			fmt.Printf("✓ Container %s updated\n", c.ID)
			return nil
		})
	},
}

var containerMoveCmd = &cobra.Command{
	Use:   "move <id|name> <target-id|name>",
	Short: "Move a container to another container's position",
	Long: `Move a container to the position currently held by the target, shifting
the entries in between. Display order is persisted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			containers := a.store.Containers()
			moved, err := findContainer(containers, args[0])
			if err != nil {
				return err
			}
			target, err := findContainer(containers, args[1])
			if err != nil {
				return err
			}

			if err := waitSaved(ctx, a.store.ReorderContainers(moved.ID, target.ID)); err != nil {
				return err
			}
			fmt.Printf("✓ Moved %s to the position of %s\n", moved.Name, target.Name)
			return nil
		})
	},
}

var containerImportCmd = &cobra.Command{
	Use:   "import <batch.yaml>",
	Short: "Merge containers from a batch file",
	Long: `Merge a YAML list of containers into the table.

Entries whose id matches an existing container replace it in place; new
entries are appended in file order. Missing ids and names are derived from
vmx_path, so importing the same scan twice is idempotent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			raw, err := readBatch[v1alpha1.Container](args[0])
			if err != nil {
				return err
			}
			batch, err := normalizeContainerBatch(raw)
			if err != nil {
				return err
			}

			if err := waitSaved(ctx, a.store.MergeContainerBatch(batch)); err != nil {
				return err
			}
			fmt.Printf("✓ Merged %d container(s), %d total\n", len(batch), len(a.store.Containers()))
			return nil
		})
	},
}

// newOperationCmd builds the lifecycle command for op.
func newOperationCmd(op vmctl.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <id|name>", op),
		Short: fmt.Sprintf("%s the container's VM", strings.ToUpper(string(op[:1]))+string(op[1:])),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := findContainer(a.store.Containers(), args[0])
				if err != nil {
					return err
				}
				if err := applyOperation(ctx, a, op, c); err != nil {
					return err
				}
				fmt.Printf("✓ %s: %s\n", c.Name, op)
				return nil
			})
		},
	}
}

// applyOperation runs op for c, passing the referenced hardware profile
// when it resolves.
func applyOperation(ctx context.Context, a *app, op vmctl.Operation, c v1alpha1.Container) error {
	var hw *v1alpha1.HardwareProfile
	if h, ok := a.store.ResolveHardware(c); ok {
		hw = &h
	} else if c.HasHardware() {
		a.log.Warn().
			Str("container", c.Name).
			Str("hardware_id", *c.HardwareID).
			Msg("hardware profile not found, using the definition as is")
	}

	if err := a.controller().Apply(ctx, op, c.VMXPath, hw); err != nil {
		return fmt.Errorf("failed to %s %s: %w", op, c.Name, err)
	}
	return nil
}
