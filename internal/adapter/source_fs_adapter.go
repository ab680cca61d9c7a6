// Package adapter contains infrastructure adapters for the podify CLI.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	m "podify.dev/pkg/podify/internal/model"
)

// DirPerm is the permission used for every directory podify creates.
const DirPerm os.FileMode = 0o755

// Entry is a single directory listing item.
type Entry struct {
	Name  string
	IsDir bool
}

// SourceFSAdapter abstracts the filesystem operations the conversion relies on.
// It hides direct `os` access so the conversion can be exercised in memory.
type SourceFSAdapter interface {
	// ListEntries returns the immediate children of path. It fails with an
	// error matching fs.ErrNotExist when path is absent.
	ListEntries(ctx context.Context, path m.Path) ([]Entry, error)

	// CreateDirectory creates path. An existing directory fails with an error
	// matching fs.ErrExist unless parents is true.
	CreateDirectory(ctx context.Context, path m.Path, parents bool) error

	// Move renames source to destination. It never overwrites: an existing
	// destination fails with an error matching fs.ErrExist.
	Move(ctx context.Context, source, destination m.Path) error

	// Walk traverses root recursively.
	Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error

	// Exists reports whether path exists. Move relies on it for the
	// destination checks.
	Exists(ctx context.Context, path m.Path) (bool, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// AferoSourceFSAdapter implements SourceFSAdapter on top of an afero filesystem.
type AferoSourceFSAdapter struct {
	fs afero.Fs
}

// NewLocalSourceFSAdapter constructs an adapter backed by the operating system.
func NewLocalSourceFSAdapter() *AferoSourceFSAdapter {
	return NewSourceFSAdapter(afero.NewOsFs())
}

// NewSourceFSAdapter constructs an adapter backed by the provided filesystem.
func NewSourceFSAdapter(fsys afero.Fs) *AferoSourceFSAdapter {
	return &AferoSourceFSAdapter{fs: fsys}
}

// ListEntries lists the entries of path sorted by name.
func (a *AferoSourceFSAdapter) ListEntries(ctx context.Context, path m.Path) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(a.fs, string(path))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), IsDir: info.IsDir()})
	}

	return entries, nil
}

// CreateDirectory creates path, and its parents when requested.
func (a *AferoSourceFSAdapter) CreateDirectory(ctx context.Context, path m.Path, parents bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if parents {
		return a.fs.MkdirAll(string(path), DirPerm)
	}

	return a.fs.Mkdir(string(path), DirPerm)
}

// Move renames source to destination without overwriting. The destination
// directory must already exist, whatever the backing filesystem allows.
func (a *AferoSourceFSAdapter) Move(ctx context.Context, source, destination m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := a.fs.Stat(string(source)); err != nil {
		return &fs.PathError{Op: "rename", Path: string(source), Err: unwrapPathError(err)}
	}

	parentExists, err := a.Exists(ctx, m.Path(filepath.Dir(string(destination))))
	if err != nil {
		return err
	}

	if !parentExists {
		return &fs.PathError{Op: "rename", Path: string(destination), Err: fs.ErrNotExist}
	}

	exists, err := a.Exists(ctx, destination)
	if err != nil {
		return err
	}

	if exists {
		return &fs.PathError{Op: "rename", Path: string(destination), Err: fs.ErrExist}
	}

	return a.fs.Rename(string(source), string(destination))
}

// Walk iterates over root and everything below it.
func (a *AferoSourceFSAdapter) Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return afero.Walk(a.fs, string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// Exists reports whether path exists.
func (a *AferoSourceFSAdapter) Exists(ctx context.Context, path m.Path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return afero.Exists(a.fs, string(path))
}

// Classify maps a filesystem error onto the failure taxonomy.
func Classify(err error) m.FailureKind {
	switch {
	case err == nil:
		return m.FailureNone
	case errors.Is(err, fs.ErrNotExist):
		return m.FailureNotFound
	case errors.Is(err, fs.ErrExist):
		return m.FailureAlreadyExists
	default:
		return m.FailureOther
	}
}

func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}

	return fmt.Errorf("stat: %w", err)
}
