package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackctl/stackctl/pkg/cli"
	"github.com/stackctl/stackctl/pkg/telemetry"
	"github.com/stackctl/stackctl/pkg/telemetry/events"
	"github.com/stackctl/stackctl/pkg/userconfig"
)

func newTelemetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect and control anonymous usage telemetry",
		Example: `  # Show whether telemetry is enabled
  stackctl telemetry status

  # Show the anonymized identifiers of the current project
  stackctl telemetry project

  # Turn telemetry off
  stackctl telemetry disable`,
		GroupID: "advanced",
		RunE:    runTelemetryStatusCommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether telemetry is enabled",
		Args:  cobra.NoArgs,
		RunE:  runTelemetryStatusCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "events",
		Short: "List the usage events and the values they accept",
		Args:  cobra.NoArgs,
		Run:   runTelemetryEventsCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "track <event-name> <event-value>",
		Short: "Record a usage event",
		Long:  "Record a usage event. It is sent with the project identifiers when the command exits.",
		Args:  cobra.ExactArgs(2),
		RunE:  runTelemetryTrackCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "project",
		Short: "Show the anonymized identifiers of the current project",
		Args:  cobra.NoArgs,
		Run:   runTelemetryProjectCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Enable anonymous usage telemetry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setTelemetry(cmd, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Disable anonymous usage telemetry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setTelemetry(cmd, false)
		},
	})

	return cmd
}

func runTelemetryStatusCommand(cmd *cobra.Command, _ []string) error {
	out := cli.NewPrinter(cmd.OutOrStdout())

	config, err := userconfig.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out.PrintField("Enabled", telemetry.FromContext(cmd.Context()).Enabled())
	out.PrintField("Config", userconfig.Path())
	if backend := config.GetSettings().GitBackend; backend != "" {
		out.PrintField("Git backend", backend)
	} else {
		out.PrintField("Git backend", "exec")
	}
	return nil
}

func runTelemetryEventsCommand(cmd *cobra.Command, _ []string) {
	out := cli.NewPrinter(cmd.OutOrStdout())

	for _, name := range events.EventNames() {
		values := events.AcceptedValues(name)
		if len(values) == 0 {
			out.PrintField(string(name), "(no accepted values)")
			continue
		}
		out.PrintField(string(name), strings.Join(values, ", "))
	}
}

func runTelemetryTrackCommand(cmd *cobra.Command, args []string) error {
	if err := telemetry.FromContext(cmd.Context()).TrackEvent(args[0], args[1]); err != nil {
		return err
	}
	cli.NewPrinter(cmd.OutOrStdout()).PrintSuccess(fmt.Sprintf("Tracked %s=%s", args[0], args[1]))
	return nil
}

func runTelemetryProjectCommand(cmd *cobra.Command, _ []string) {
	out := cli.NewPrinter(cmd.OutOrStdout())
	client := telemetry.FromContext(cmd.Context())

	if !client.Enabled() {
		out.Println("Telemetry is disabled: no project metadata is read.")
		return
	}

	ids := client.Metadata().Collect(cmd.Context())
	printIdentifier(out, "Project ID", ids.ProjectID)
	printIdentifier(out, "Project name", ids.ProjectName)
	printIdentifier(out, "Initial commit", ids.InitialCommit)
}

func printIdentifier(out *cli.Printer, key, value string) {
	if value == "" {
		out.PrintMissing(key)
		return
	}
	out.PrintField(key, value)
}

func setTelemetry(cmd *cobra.Command, enabled bool) error {
	config, err := userconfig.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	config.SetTelemetry(enabled)
	if err := config.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	cli.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Telemetry " + state)
	return nil
}
