package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"podify.dev/pkg/podify/internal/adapter"
	"podify.dev/pkg/podify/internal/controller"
)

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:          "plan",
		Short:        "Show the moves a conversion would make",
		Long:         planLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			planFormat := controller.PlanFormat(format)
			if planFormat != controller.PlanFormatTable && planFormat != controller.PlanFormatYAML {
				return fmt.Errorf("unsupported --%s %q (want table or yaml)", formatFlagName, format)
			}

			cfg, err := prepareRun()
			if err != nil {
				return err
			}

			// Skip notices go to stderr so a yaml plan stays parseable.
			diagnostics := controller.NewDiagnosticUI(cmd)
			orchestrator := newOrchestrator(cfg, fsAdapter, controller.AlwaysConfirm{}, diagnostics, adapter.NewReportStore())

			batches, err := orchestrator.Plan(cmd.Context())
			if err != nil {
				return err
			}

			return controller.NewUI(cmd).DisplayPlan(cmd.Context(), batches, planFormat)
		},
	}

	cmd.Flags().StringVar(&format, formatFlagName, string(controller.PlanFormatTable), "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}
