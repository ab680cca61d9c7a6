package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"podify.dev/pkg/podify/internal/adapter"
	"podify.dev/pkg/podify/internal/controller"
	m "podify.dev/pkg/podify/internal/model"
)

// TreeWalker discovers convertible files and nested resource directories.
type TreeWalker interface {
	// ListConvertibleFiles returns the regular files directly inside dir whose
	// extension is one of extensions. A missing or excluded dir yields no files.
	ListConvertibleFiles(ctx context.Context, dir m.Path, extensions []string) ([]m.Path, error)

	// ListSubdirectories returns every directory below root, found with a
	// single recursive scan. Directories in skip are left out with their
	// subtrees. A missing root yields no directories.
	ListSubdirectories(ctx context.Context, root m.Path, skip ...m.Path) ([]m.Path, error)
}

type treeWalker struct {
	cfg       m.RunConfig
	fsAdapter adapter.SourceFSAdapter
	reporter  controller.Reporter
}

// NewTreeWalker constructs a TreeWalker over the provided filesystem adapter.
func NewTreeWalker(cfg m.RunConfig, fsAdapter adapter.SourceFSAdapter, reporter controller.Reporter) TreeWalker {
	return &treeWalker{cfg: cfg, fsAdapter: fsAdapter, reporter: reporter}
}

func (tw *treeWalker) ListConvertibleFiles(ctx context.Context, dir m.Path, extensions []string) ([]m.Path, error) {
	if tw.excluded(dir) {
		slog.Debug("excluded directory", "dir", dir)
		return nil, nil
	}

	entries, err := tw.fsAdapter.ListEntries(ctx, dir)
	if err != nil {
		if adapter.Classify(err) == m.FailureNotFound {
			slog.Debug("directory not found", "dir", dir)
			tw.reporter.ReportSkipped(ctx, dir, "directory not found")

			return nil, nil
		}

		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []m.Path

	for _, entry := range entries {
		if entry.IsDir || !slices.Contains(extensions, filepath.Ext(entry.Name)) {
			continue
		}

		path := dir.Join(entry.Name)
		if tw.excluded(path) {
			slog.Debug("excluded file", "path", path)
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

func (tw *treeWalker) ListSubdirectories(ctx context.Context, root m.Path, skip ...m.Path) ([]m.Path, error) {
	var (
		dirs        []m.Path
		rootMissing bool
	)

	err := tw.fsAdapter.Walk(ctx, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == string(root) && adapter.Classify(err) == m.FailureNotFound {
				rootMissing = true
				return nil
			}

			return err
		}

		if info == nil || !info.IsDir() || path == string(root) {
			return nil
		}

		if slices.Contains(skip, m.Path(path)) || tw.excluded(m.Path(path)) {
			return filepath.SkipDir
		}

		dirs = append(dirs, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	if rootMissing {
		slog.Debug("directory not found", "dir", root)
		return nil, nil
	}

	return dirs, nil
}

// excluded matches path, relative to the project root, against the exclude globs.
func (tw *treeWalker) excluded(path m.Path) bool {
	if len(tw.cfg.Exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(string(tw.cfg.ProjectRoot), string(path))
	if err != nil {
		return false
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range tw.cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}
