package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunConfig_Validate(t *testing.T) {
	valid := DefaultRunConfig("/project")

	tests := []struct {
		name    string
		mutate  func(c *RunConfig)
		wantErr bool
	}{
		{"defaults", func(*RunConfig) {}, false},
		{"custom prefix", func(c *RunConfig) { c.PodPrefix = "features" }, false},
		{"empty root", func(c *RunConfig) { c.ProjectRoot = "" }, true},
		{"empty prefix", func(c *RunConfig) { c.PodPrefix = " " }, true},
		{"nested prefix", func(c *RunConfig) { c.PodPrefix = "a/b" }, true},
		{"dot prefix", func(c *RunConfig) { c.PodPrefix = ".." }, true},
		{"category prefix", func(c *RunConfig) { c.PodPrefix = "routes" }, true},
		{"zero parallel", func(c *RunConfig) { c.Parallel = 0 }, true},
		{"no template extensions", func(c *RunConfig) { c.TemplateExtensions = nil }, true},
		{"extension without dot", func(c *RunConfig) { c.ScriptExtensions = []string{"js"} }, true},
		{"valid exclude", func(c *RunConfig) { c.Exclude = []string{"app/routes/**/legacy-*"} }, false},
		{"broken exclude", func(c *RunConfig) { c.Exclude = []string{"app/[routes"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Exclude = nil
			cfg.ScriptExtensions = append([]string(nil), valid.ScriptExtensions...)
			cfg.TemplateExtensions = append([]string(nil), valid.TemplateExtensions...)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunConfig_Paths(t *testing.T) {
	cfg := DefaultRunConfig(Path(filepath.FromSlash("/project")))

	assert.Equal(t, Path(filepath.FromSlash("/project/app")), cfg.AppDir())
	assert.Equal(t, Path(filepath.FromSlash("/project/app/pods")), cfg.PodRoot())

	cfg.PodPrefix = "features"
	assert.Equal(t, Path(filepath.FromSlash("/project/app/features")), cfg.PodRoot())
}

func TestRunConfig_ExtensionKindOf(t *testing.T) {
	cfg := DefaultRunConfig("/project")

	kind, ok := cfg.ExtensionKindOf(".js")
	assert.True(t, ok)
	assert.Equal(t, ExtensionScript, kind)

	kind, ok = cfg.ExtensionKindOf(".hbs")
	assert.True(t, ok)
	assert.Equal(t, ExtensionTemplate, kind)

	_, ok = cfg.ExtensionKindOf(".css")
	assert.False(t, ok)

	assert.Equal(t, []string{".hbs"}, cfg.Extensions(ExtensionTemplate))
	assert.Equal(t, []string{".js"}, cfg.Extensions(ExtensionScript))
}

func TestResourcePath(t *testing.T) {
	rp := NewResourcePath(Path(filepath.FromSlash("/project/app/routes/foo.js")))

	assert.Equal(t, Path(filepath.FromSlash("/project/app/routes")), rp.Directory)
	assert.Equal(t, "foo", rp.BaseName)
	assert.Equal(t, ".js", rp.Extension)
	assert.Equal(t, Path(filepath.FromSlash("/project/app/routes/foo.js")), rp.Full())
}

func TestConversionPlan_Title(t *testing.T) {
	assert.Equal(t, "Converting Route", ConversionPlan{FileType: FileTypeRoute, Level: LevelRoot}.Title())
	assert.Equal(t, "Converting Nested Template", ConversionPlan{FileType: FileTypeTemplate, Level: LevelChild}.Title())
}

func TestRunSummary(t *testing.T) {
	var s RunSummary
	for _, o := range []Outcome{Converted, Converted, Declined, Skipped, Failed} {
		s.Add(o)
	}

	assert.Equal(t, RunSummary{Converted: 2, Declined: 1, Skipped: 1, Failed: 1}, s)
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, "declined", Declined.String())
	assert.Equal(t, "already_exists", FailureAlreadyExists.String())
}
