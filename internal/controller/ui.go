// Package controller provides the user-facing collaborators of a conversion
// run: the confirmation gate and the action reporter.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "podify.dev/pkg/podify/internal/model"
)

// PlanFormat selects how DisplayPlan renders batches.
type PlanFormat string

// Available PlanFormat values.
const (
	PlanFormatTable PlanFormat = "table"
	PlanFormatYAML  PlanFormat = "yaml"
)

// Reporter receives observational events from a conversion run. Calls may
// arrive from several goroutines at once.
type Reporter interface {
	ReportConversion(ctx context.Context, plan m.ConversionPlan)
	ReportSkipped(ctx context.Context, path m.Path, reason string)
	ReportError(ctx context.Context, err error)
	ReportNotice(ctx context.Context, message string)
	ReportSummary(ctx context.Context, summary m.RunSummary)
	DisplayPlan(ctx context.Context, batches []m.Batch, format PlanFormat) error
}

// NewUI returns the reporter used by the CLI.
func NewUI(cmd *cobra.Command) Reporter {
	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
