package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	m "podify.dev/pkg/podify/internal/model"
)

// SimpleUI implements Reporter by printing to the cobra command output.
type SimpleUI struct {
	out    io.Writer
	mu     sync.Mutex
	styles styles
}

type styles struct {
	title       lipgloss.Style
	label       lipgloss.Style
	source      lipgloss.Style
	destination lipgloss.Style
	notice      lipgloss.Style
	warning     lipgloss.Style
}

// NewSimpleUI creates a new SimpleUI. Colors are only emitted when the
// command output is a terminal.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return newSimpleUI(cmd.OutOrStdout())
}

// NewDiagnosticUI creates a SimpleUI on the command's error stream, keeping
// standard output free for machine-readable results.
func NewDiagnosticUI(cmd *cobra.Command) *SimpleUI {
	return newSimpleUI(cmd.ErrOrStderr())
}

func newSimpleUI(out io.Writer) *SimpleUI {
	renderer := lipgloss.NewRenderer(out)

	return &SimpleUI{
		out: out,
		styles: styles{
			title:       renderer.NewStyle().Underline(true),
			label:       renderer.NewStyle().Bold(true),
			source:      renderer.NewStyle().Foreground(lipgloss.Color("4")),
			destination: renderer.NewStyle().Foreground(lipgloss.Color("1")),
			notice:      renderer.NewStyle().Foreground(lipgloss.Color("4")),
			warning:     renderer.NewStyle().Foreground(lipgloss.Color("3")),
		},
	}
}

// ReportConversion prints the start-of-conversion notice.
func (s *SimpleUI) ReportConversion(ctx context.Context, plan m.ConversionPlan) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("\n\n%s\n", s.styles.title.Render(plan.Title()))
	s.printf("%s %s\n", s.styles.label.Render("File Name:"), s.styles.label.Render(plan.Source.BaseName))
	s.printf("%s %s\n", s.styles.label.Render("Source:"), s.styles.source.Render(string(plan.Source.Full())))
	s.printf("%s %s\n\n", s.styles.label.Render("Destination:"), s.styles.destination.Render(string(plan.Destination.Full())))
}

// ReportSkipped prints a tolerated skip.
func (s *SimpleUI) ReportSkipped(ctx context.Context, path m.Path, reason string) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if reason == "" {
		s.printf("%s %s\n", s.styles.label.Render("Skipped:"), s.styles.label.Render(string(path)))
		return
	}

	s.printf("%s %s (%s)\n", s.styles.label.Render("Skipped:"), s.styles.label.Render(string(path)), reason)
}

// ReportError prints an unexpected, non-fatal error as a warning.
func (s *SimpleUI) ReportError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s %v\n", s.styles.warning.Render("Warning:"), err)
}

// ReportNotice prints an informational message.
func (s *SimpleUI) ReportNotice(ctx context.Context, message string) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s\n", s.styles.notice.Render(message))
}

// ReportSummary prints the outcome counts of the run.
func (s *SimpleUI) ReportSummary(ctx context.Context, summary m.RunSummary) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("\n%s converted %d, skipped %d, declined %d, failed %d\n",
		s.styles.label.Render("Done:"), summary.Converted, summary.Skipped, summary.Declined, summary.Failed)
}

// DisplayPlan renders the batches of a dry run.
func (s *SimpleUI) DisplayPlan(ctx context.Context, batches []m.Batch, format PlanFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch format {
	case PlanFormatYAML:
		return renderPlanYAML(s.out, batches)
	case PlanFormatTable, "":
		s.printf("%s", renderPlanTable(batches))
		return nil
	default:
		return fmt.Errorf("unknown plan format %q", format)
	}
}

func renderPlanTable(batches []m.Batch) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Phase", "Type", "Source", "Destination"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	count := 0

	for _, batch := range batches {
		for _, plan := range batch.Plans {
			table.Append([]string{
				string(batch.Phase),
				string(plan.FileType),
				string(plan.Source.Full()),
				string(plan.Destination.Full()),
			})

			count++
		}
	}

	table.SetFooter([]string{"", "", "Total Files", fmt.Sprintf("%d", count)})
	table.Render()

	return tableBuffer.String()
}

func renderPlanYAML(w io.Writer, batches []m.Batch) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(batches); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	return encoder.Close()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
