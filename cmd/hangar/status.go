package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/hangar/internal/output"
	"github.com/jbweber/hangar/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which containers are running",
	Long: `Query libvirt once and show each container's phase.

A container is running when libvirt reports an active domain with the name
declared in its definition file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ctrl := a.controller()
			poller := status.NewPoller(ctx, ctrl, a.store,
				status.WithNameFunc(ctrl.DomainName),
				status.WithLogger(a.log),
			)

			statuses, err := poller.Refresh(ctx)
			if err != nil {
				return fmt.Errorf("failed to query VM status: %w", err)
			}
			return printFormatted(func(f output.Formatter) (string, error) {
				return f.FormatStatusList(statuses)
			})
		})
	},
}
