package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPodPrefix is the destination root directory name under app/.
const DefaultPodPrefix = "pods"

// AppDirName is the fixed application directory under the project root.
const AppDirName = "app"

// reservedPodPrefixes are the category directories a pod root must not shadow.
var reservedPodPrefixes = []string{"routes", "controllers", "templates", "components"}

// RunConfig holds the settings of one invocation. It is passed by value and
// never mutated once the run starts.
type RunConfig struct {
	ProjectRoot        Path
	PodPrefix          string
	SkipComponents     bool
	AutoConfirm        bool
	Parallel           int
	Exclude            []string
	ScriptExtensions   []string
	TemplateExtensions []string
}

// DefaultRunConfig returns the configuration used when nothing is overridden.
func DefaultRunConfig(projectRoot Path) RunConfig {
	return RunConfig{
		ProjectRoot:        projectRoot,
		PodPrefix:          DefaultPodPrefix,
		Parallel:           8,
		ScriptExtensions:   []string{".js"},
		TemplateExtensions: []string{".hbs"},
	}
}

// Validate reports configuration values that cannot produce a sane run.
func (c RunConfig) Validate() error {
	if strings.TrimSpace(string(c.ProjectRoot)) == "" {
		return errors.New("project root is empty")
	}

	prefix := strings.TrimSpace(c.PodPrefix)
	if prefix == "" {
		return errors.New("pod prefix is empty")
	}

	if strings.ContainsAny(prefix, `/\`) || prefix == "." || prefix == ".." {
		return fmt.Errorf("pod prefix %q must be a single directory name", c.PodPrefix)
	}

	for _, reserved := range reservedPodPrefixes {
		if prefix == reserved {
			return fmt.Errorf("pod prefix %q collides with a source directory", c.PodPrefix)
		}
	}

	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}

	if len(c.ScriptExtensions) == 0 || len(c.TemplateExtensions) == 0 {
		return errors.New("script and template extensions must not be empty")
	}

	for _, ext := range append(append([]string{}, c.ScriptExtensions...), c.TemplateExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

// AppDir returns <projectRoot>/app.
func (c RunConfig) AppDir() Path {
	return c.ProjectRoot.Join(AppDirName)
}

// PodRoot returns <projectRoot>/app/<podPrefix>.
func (c RunConfig) PodRoot() Path {
	return c.AppDir().Join(c.PodPrefix)
}

// ExtensionKindOf returns the kind of ext, or false when ext is not recognized.
func (c RunConfig) ExtensionKindOf(ext string) (ExtensionKind, bool) {
	for _, e := range c.ScriptExtensions {
		if e == ext {
			return ExtensionScript, true
		}
	}

	for _, e := range c.TemplateExtensions {
		if e == ext {
			return ExtensionTemplate, true
		}
	}

	return "", false
}

// Extensions returns the recognized extensions of the given kind.
func (c RunConfig) Extensions(kind ExtensionKind) []string {
	if kind == ExtensionTemplate {
		return c.TemplateExtensions
	}

	return c.ScriptExtensions
}
