package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"podify.dev/pkg/podify/internal/adapter"
	"podify.dev/pkg/podify/internal/controller"
	m "podify.dev/pkg/podify/internal/model"
)

// convertCmd represents the convert command.
var convertCmd = newConvertCmd()

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "convert",
		Short:        "Move type-first files into the pod layout",
		Long:         convertLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := prepareRun()
			if err != nil {
				return err
			}

			ui := controller.NewUI(cmd)
			announceRun(cmd, ui, cfg)

			gate := controller.NewConfirmationGate(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.AutoConfirm)
			store := adapter.NewReportStore()

			summary, runErr := newOrchestrator(cfg, fsAdapter, gate, ui, store).Run(cmd.Context())
			slog.Info("conversion finished",
				"converted", summary.Converted,
				"skipped", summary.Skipped,
				"declined", summary.Declined,
				"failed", summary.Failed,
				"error", runErr,
			)

			if err := saveMetrics(store); err != nil {
				if runErr != nil {
					slog.Error("failed to write metrics", "error", err)
					return runErr
				}

				return err
			}

			return runErr
		},
	}

	cmd.Flags().BoolP(forceFlagName, "f", viper.GetBool(forceFlagName), "convert without asking for confirmation")
	bindFlagToConfig(cmd.Flags().Lookup(forceFlagName), forceFlagName)

	cmd.Flags().IntP(runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of moves executed concurrently within a batch")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().String(metricsFileFlagName, viper.GetString(metricsFileKey), "write run metrics in Prometheus textfile format")
	bindFlagToConfig(cmd.Flags().Lookup(metricsFileFlagName), metricsFileKey)

	return cmd
}

func announceRun(cmd *cobra.Command, ui controller.Reporter, cfg m.RunConfig) {
	ctx := cmd.Context()

	ui.ReportNotice(ctx, fmt.Sprintf("Project Directory: %s", cfg.ProjectRoot))
	ui.ReportNotice(ctx, fmt.Sprintf("Pod Prefix: %s", cfg.PodPrefix))

	if cfg.AutoConfirm {
		ui.ReportNotice(ctx, "skipping confirmation")
	}

	if cfg.SkipComponents {
		ui.ReportNotice(ctx, "skipping components")
	}

	if len(cfg.Exclude) > 0 {
		ui.ReportNotice(ctx, fmt.Sprintf("Excluding: %s", strings.Join(cfg.Exclude, ", ")))
	}
}

func saveMetrics(store adapter.ReportStore) error {
	path := strings.TrimSpace(viper.GetString(metricsFileKey))
	if path == "" {
		return nil
	}

	return store.SaveReport(m.Path(path))
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
