package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackctl/stackctl/pkg/logging"
	"github.com/stackctl/stackctl/pkg/paths"
	"github.com/stackctl/stackctl/pkg/telemetry"
	"github.com/stackctl/stackctl/pkg/telemetry/events"
	"github.com/stackctl/stackctl/pkg/version"
)

type rootFlags struct {
	enableOtel  bool
	debugMode   bool
	logFilePath string
	logFile     io.Closer
	otelStop    func(context.Context) error
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "stackctl",
		Short: "stackctl - developer stack tooling",
		Long:  "stackctl is a command-line tool for building, testing and deploying application stacks",
		Example: `  stackctl telemetry status
  stackctl telemetry project`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logging before anything else
			logFile, err := logging.Setup(flags.debugMode, flags.logFilePath)
			if err != nil {
				// If logging setup fails, fall back to stderr so we still get logs
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: func() slog.Level {
						if flags.debugMode {
							return slog.LevelDebug
						}
						return slog.LevelInfo
					}(),
				})))
			}
			flags.logFile = logFile

			// The client is built here, after logging and the debug flag are known
			telemetry.SetGlobalTelemetryDebugMode(flags.debugMode)
			cmd.SetContext(telemetry.WithClient(cmd.Context(), telemetry.GetGlobalTelemetryClient()))

			if flags.enableOtel {
				cfg, err := parseOtelConfig()
				if err != nil {
					slog.Warn("Ignoring invalid OpenTelemetry environment", "error", err)
				}
				stop, err := initOTelSDK(cmd.Context(), cfg)
				if err != nil {
					slog.Warn("Failed to initialize OpenTelemetry SDK", "error", err)
				} else {
					flags.otelStop = stop
					slog.Debug("OpenTelemetry SDK initialized successfully", "endpoint", cfg.Endpoint)
				}
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// End of session: send whatever was tracked during this invocation
			if err := telemetry.FromContext(cmd.Context()).Flush(cmd.Context()); err != nil {
				slog.Debug("Failed to flush telemetry", "error", err)
			}

			if flags.otelStop != nil {
				// Detached so that an interrupted command still exports its spans
				ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 5*time.Second)
				if err := flags.otelStop(ctx); err != nil {
					slog.Debug("Failed to shut down OpenTelemetry SDK", "error", err)
				}
				cancel()
			}

			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					slog.Error("Failed to close log file", "error", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.enableOtel, "otel", "o", false, "Enable OpenTelemetry tracing")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.stackctl/stackctl.debug.log; only used with --debug)")

	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "advanced", Title: "Advanced Commands:"})

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newTelemetryCmd())

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	// Set the version for automatic telemetry initialization
	telemetry.SetGlobalTelemetryVersion(version.Version)

	// Print the telemetry notice only on first run
	if isFirstRun() && os.Getenv("STACKCTL_HIDE_TELEMETRY_BANNER") != "1" && telemetry.GetTelemetryEnabled() {
		fmt.Fprint(stderr, `
stackctl collects anonymous usage data to help improve the tool. To disable:
  - Run: stackctl telemetry disable
  - Or set environment variable: TELEMETRY_ENABLED=false

`)
	}

	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil {
		return ctx.Err()
	} else if taxErr, ok := errors.AsType[*events.TaxonomyError](err); ok {
		fmt.Fprintln(stderr, "Invalid telemetry event:", taxErr)
		if !taxErr.UnknownName {
			fmt.Fprintf(stderr, "Accepted values for %s: %v\n", taxErr.Name, events.AcceptedValues(events.EventName(taxErr.Name)))
		}
	} else if _, ok := errors.AsType[RuntimeError](err); ok {
		// Runtime errors have already been printed by the command itself
	} else {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr)
		_ = rootCmd.Usage()
	}

	return err
}

// RuntimeError wraps runtime errors to distinguish them from usage errors
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}

// isFirstRun checks if this is the first time stackctl is being run.
// It atomically creates a marker file in the user's config directory
// using os.O_EXCL to avoid a race condition when multiple processes
// start concurrently.
func isFirstRun() bool {
	configDir := paths.GetConfigDir()
	markerFile := filepath.Join(configDir, ".stackctl_first_run")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		slog.Warn("Failed to create config directory for first run marker", "error", err)
		return false
	}

	f, err := os.OpenFile(markerFile, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false // File already exists or other error, not first run
	}
	if err := f.Close(); err != nil {
		slog.Warn("Failed to close first run marker file", "error", err)
	}

	return true
}
