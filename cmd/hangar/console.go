package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jbweber/hangar/internal/host"
	"github.com/jbweber/hangar/internal/output"
	"github.com/jbweber/hangar/internal/shutdown"
	"github.com/jbweber/hangar/internal/status"
	"github.com/jbweber/hangar/internal/vmctl"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run an interactive session",
	Long: `Run a long-lived session that keeps the store open.

Commands (one per line on stdin):
  watch            show live VM status
  unwatch          stop refreshing status
  list             list containers
  start|stop|pause|reset <container>
  save             save every table now
  quit             save and exit

SIGINT and SIGTERM save every table before the process exits. When
metrics_addr is configured, Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := openApp(ctx, cmd)
		if err != nil {
			return err
		}
		return runConsole(ctx, a, os.Stdin, os.Stdout)
	},
}

func runConsole(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sig := host.NewSignals()
	defer sig.Stop()

	coord := shutdown.New(a.store,
		shutdown.WithLogger(a.log.With().Str("component", "shutdown").Logger()),
		shutdown.WithMetrics(a.metrics),
	)
	coordDone := make(chan error, 1)
	go func() { coordDone <- coord.Run(ctx, sig) }()

	srv := serveMetrics(a)

	ctrl := a.controller()
	poller := status.NewPoller(ctx, ctrl, a.store,
		status.WithInterval(a.cfg.PollInterval),
		status.WithNameFunc(ctrl.DomainName),
		status.WithLogger(a.log.With().Str("component", "status").Logger()),
		status.OnUpdate(func(snap status.Snapshot) {
			if snap.LastError != nil {
				fmt.Fprintf(out, "status unavailable: %v\n", snap.LastError)
				return
			}
			printStatuses(out, snap.Statuses)
		}),
	)

	lines := make(chan string)
	go readLines(ctx, in, lines)

	fmt.Fprintln(out, "hangar console; type quit to exit")

loop:
	for {
		select {
		case <-sig.AboutToClose():
			break loop
		case line, ok := <-lines:
			if !ok {
				sig.Close()
				break loop
			}
			if quit := handleConsoleLine(ctx, a, poller, out, line); quit {
				sig.Close()
				break loop
			}
		}
	}

	poller.Hide()

	flushErr := sig.Wait(ctx, a.cfg.ShutdownTimeout)
	if errors.Is(flushErr, host.ErrAckTimeout) {
		a.log.Error().Dur("timeout", a.cfg.ShutdownTimeout).Msg("shutdown flush did not finish in time")
	}

	cancel()
	poller.Wait()
	select {
	case err := <-coordDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			a.log.Debug().Err(err).Msg("shutdown coordinator finished")
		}
	default:
		// Still flushing after the timeout; Dispose below bounds the wait.
	}
	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		stop()
	}
	a.close()

	if s := sig.Signal(); s != nil {
		a.log.Info().Str("signal", s.String()).Msg("exiting on signal")
	}
	return flushErr
}

// handleConsoleLine runs one console command and reports whether the
// session should end.
func handleConsoleLine(ctx context.Context, a *app, poller *status.Poller, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "watch":
		poller.Show()
	case "unwatch":
		poller.Hide()
	case "list", "ls":
		formatter, err := newFormatter()
		if err == nil {
			var result string
			result, err = formatter.FormatContainerList(a.store.Containers(), a.store.Hardware())
			fmt.Fprint(out, result)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	case "save":
		if err := a.store.SaveAll(ctx); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		} else {
			fmt.Fprintln(out, "saved")
		}
	default:
		op, err := vmctl.ParseOperation(fields[0])
		if err != nil {
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
			return false
		}
		if len(fields) != 2 {
			fmt.Fprintf(out, "usage: %s <container>\n", op)
			return false
		}
		c, err := findContainer(a.store.Containers(), fields[1])
		if err == nil {
			err = applyOperation(ctx, a, op, c)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(out, "%s: %s\n", c.Name, op)
		if poller.Visible() {
			_, _ = poller.Refresh(ctx)
		}
	}
	return false
}

func printStatuses(out io.Writer, statuses []status.ContainerStatus) {
	formatter := &output.TableFormatter{NoHeaders: noHeaders}
	result, err := formatter.FormatStatusList(statuses)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "%s(%d running)\n", result, status.CountRunning(statuses))
}

// readLines forwards lines from in until it is exhausted or ctx ends.
func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

// serveMetrics starts the /metrics endpoint when an address is configured.
func serveMetrics(a *app) *http.Server {
	if a.cfg.MetricsAddr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", a.cfg.MetricsAddr).Msg("metrics server stopped")
		}
	}()
	a.log.Info().Str("addr", a.cfg.MetricsAddr).Msg("serving metrics")
	return srv
}
