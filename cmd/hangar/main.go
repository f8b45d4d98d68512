package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jbweber/hangar/internal/config"
	"github.com/jbweber/hangar/internal/gateway"
	"github.com/jbweber/hangar/internal/metrics"
	"github.com/jbweber/hangar/internal/output"
	"github.com/jbweber/hangar/internal/store"
	"github.com/jbweber/hangar/internal/vmctl"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Global flags
var (
	configPath   string
	dataDir      string
	logLevel     string
	outputFormat string
	noHeaders    bool
)

// disposeTimeout bounds how long a one-shot command waits for queued saves.
const disposeTimeout = 30 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hangar",
	Short: "Hangar - VM container and hardware profile manager",
	Long: `Hangar keeps a local catalogue of VM definitions ("containers") and the
hardware profiles they can be started with.

Records are stored as YAML tables under the data directory and every change is
saved and verified in the background. VMs are driven through libvirt.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/hangar/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the hangar tables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, yaml, json)")
	rootCmd.PersistentFlags().BoolVar(&noHeaders, "no-headers", false, "omit table headers")

	rootCmd.AddCommand(hardwareCmd)
	rootCmd.AddCommand(containerCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(consoleCmd)
}

// app holds the wiring shared by every command.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	store    *store.Store
	registry *prometheus.Registry
	metrics  *metrics.Store
}

// openApp resolves configuration, builds the store on the file gateway and
// loads every table.
func openApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = config.ExpandPath(dataDir); err != nil {
			return nil, fmt.Errorf("invalid --data-dir: %w", err)
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log := newLogger(cfg.Level())

	registry := prometheus.NewRegistry()
	m, err := metrics.NewStore(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	gw := gateway.NewFileGateway(cfg.DataDir)
	st := store.New(gw,
		store.WithLogger(log.With().Str("component", "store").Logger()),
		store.WithMetrics(m),
	)
	if err := st.Initialize(ctx); err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		registry: registry,
		metrics:  m,
	}, nil
}

// close drains queued saves.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), disposeTimeout)
	defer cancel()

	if err := a.store.Dispose(ctx); err != nil {
		a.log.Warn().Err(err).Msg("pending writes were not drained")
	}
}

func (a *app) controller() *vmctl.Controller {
	return vmctl.New(a.cfg.LibvirtSocket,
		vmctl.WithLogger(a.log.With().Str("component", "vmctl").Logger()),
	)
}

func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// withApp opens the app, runs fn and disposes the store afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}

// newFormatter validates the global output flags and builds a formatter.
func newFormatter() (output.Formatter, error) {
	if err := output.ValidateFormat(outputFormat); err != nil {
		return nil, err
	}
	return output.NewFormatter(output.Options{
		Format:    output.Format(outputFormat),
		NoHeaders: noHeaders,
	})
}

// printFormatted runs format and writes its result to stdout.
func printFormatted(format func(output.Formatter) (string, error)) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	result, err := format(formatter)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Print(result)
	return nil
}

// waitSaved blocks on a mutation's save and reports its outcome.
func waitSaved(ctx context.Context, r *store.Result) error {
	if err := r.Wait(ctx); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// absPath expands ~ and makes p absolute.
func absPath(p string) (string, error) {
	path, err := config.ExpandPath(p)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", p, err)
	}
	return path, nil
}
