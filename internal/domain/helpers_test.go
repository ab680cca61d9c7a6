package domain

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"podify.dev/pkg/podify/internal/controller"
	m "podify.dev/pkg/podify/internal/model"
)

// recordingReporter keeps every event for later assertions.
type recordingReporter struct {
	mu          sync.Mutex
	conversions []m.ConversionPlan
	skipped     map[m.Path]string
	errors      []error
	notices     []string
	summaries   []m.RunSummary
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{skipped: map[m.Path]string{}}
}

func (r *recordingReporter) ReportConversion(_ context.Context, plan m.ConversionPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversions = append(r.conversions, plan)
}

func (r *recordingReporter) ReportSkipped(_ context.Context, path m.Path, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped[path] = reason
}

func (r *recordingReporter) ReportError(_ context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordingReporter) ReportNotice(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, message)
}

func (r *recordingReporter) ReportSummary(_ context.Context, summary m.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
}

func (r *recordingReporter) DisplayPlan(context.Context, []m.Batch, controller.PlanFormat) error {
	return nil
}

// gateFunc adapts a function to controller.ConfirmationGate.
type gateFunc func() bool

func (g gateFunc) Confirm(context.Context, string) bool { return g() }

// declineAll refuses every conversion.
var declineAll = gateFunc(func() bool { return false })

// writeFiles creates every relative path under root with placeholder content.
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", p, err)
		}
		if err := os.WriteFile(full, []byte("// "+p+"\n"), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// treeFiles lists every regular file under root as sorted slash paths.
func treeFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}

	sort.Strings(files)

	return files
}

func testConfig(root string) m.RunConfig {
	cfg := m.DefaultRunConfig(m.Path(root))
	cfg.AutoConfirm = true

	return cfg
}

func rel(root string, p m.Path) string {
	r, err := filepath.Rel(root, string(p))
	if err != nil {
		return string(p)
	}

	return filepath.ToSlash(r)
}
