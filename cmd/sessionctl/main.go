package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"session-analytics-service/internal/analytics/adapters/file"
	"session-analytics-service/internal/analytics/adapters/remote"
	"session-analytics-service/internal/analytics/core/engine"
	"session-analytics-service/internal/analytics/core/ports"
	"session-analytics-service/internal/analytics/core/usecase"
	"session-analytics-service/internal/platform/config"
	"session-analytics-service/internal/platform/logging"
	"session-analytics-service/internal/sessions/core/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	dir        string
	remoteURL  string
	schemaFile string
	order      string
	timezone   string
	months     string
	logLevel   string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sessionctl",
		Short:         "Summarize session collection exports offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.dir, "dir", ".", "directory holding <kind>.json collection exports")
	flags.StringVar(&opts.remoteURL, "remote", "", "dashboard backend base URL; overrides --dir")
	flags.StringVar(&opts.schemaFile, "schema", "", "YAML schema overlay")
	flags.StringVar(&opts.order, "order", string(engine.OrderFirstSeen), "bucket order: first_seen | calendar | lexical")
	flags.StringVar(&opts.timezone, "tz", "UTC", "timezone used to derive months")
	flags.StringVar(&opts.months, "months", "pt", "month label language: pt | en")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	root.AddCommand(newSummarizeCmd(opts))
	root.AddCommand(newSignalCmd(opts))
	root.AddCommand(newSchemasCmd(opts))
	return root
}

var views = []string{"engagement", "avatar", "meditation", "questionary", "performance", "overview"}

func newSummarizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "summarize <view>",
		Short:     "Print a dashboard view as JSON",
		Long:      "Views: engagement, avatar, meditation, questionary, performance, overview.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: views,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildUseCase(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			v, err := summarize(ctx, uc, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}

func newSignalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "signal <kind> <id>",
		Short: "Print the raw signal series of one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := domain.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", usecase.ErrUnknownKind, args[0])
			}

			uc, err := buildUseCase(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			v, err := uc.Signal(ctx, kind, args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}

func newSchemasCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "Print the effective field schemas as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemas, err := config.LoadSchemas(opts.schemaFile)
			if err != nil {
				return err
			}
			out, err := config.MarshalSchemas(schemas)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func buildUseCase(opts *options) (*usecase.DashboardUseCase, error) {
	schemas, err := config.LoadSchemas(opts.schemaFile)
	if err != nil {
		return nil, err
	}
	order, err := engine.ParseOrder(opts.order)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return nil, err
	}
	months, err := config.ParseMonthLabels(opts.months)
	if err != nil {
		return nil, err
	}

	var source ports.SessionSourcePort = file.NewSessionSource(opts.dir)
	if opts.remoteURL != "" {
		source = remote.NewSessionSource(opts.remoteURL, opts.timeout)
	}

	return usecase.NewDashboardUseCase(source, usecase.Options{
		Schemas:  schemas,
		Location: loc,
		Months:   months,
		Order:    order,
		Logger:   logging.New(opts.logLevel, true),
	}), nil
}

func summarize(ctx context.Context, uc *usecase.DashboardUseCase, view string) (any, error) {
	switch view {
	case "engagement":
		return uc.Engagement(ctx)
	case "avatar":
		return uc.Avatar(ctx)
	case "meditation":
		return uc.Meditation(ctx)
	case "questionary":
		return uc.Questionary(ctx)
	case "performance":
		return uc.Performance(ctx)
	case "overview":
		return uc.Overview(ctx)
	}
	return nil, fmt.Errorf("unknown view %q (want one of %v)", view, views)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
