package model

import (
	"strings"
	"unicode"
)

// FileType is the singular token that names a destination file.
type FileType string

// Fixed file types for the four category directories.
const (
	FileTypeRoute      FileType = "route"
	FileTypeController FileType = "controller"
	FileTypeTemplate   FileType = "template"
	FileTypeComponent  FileType = "component"
)

// Label returns the capitalized display form, e.g. "Route".
func (f FileType) Label() string {
	if f == "" {
		return ""
	}

	runes := []rune(string(f))
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// Level tells whether a plan was built for a file directly inside a category
// directory or for one inside a nested resource directory.
type Level string

const (
	// LevelRoot marks files directly inside a category directory.
	LevelRoot Level = "root"
	// LevelChild marks files inside a resource subdirectory.
	LevelChild Level = "child"
)

// ConversionPlan describes a single move from the type-first layout into a pod.
type ConversionPlan struct {
	Source                    ResourcePath `yaml:"source"`
	Destination               ResourcePath `yaml:"destination"`
	RequiresDirectoryCreation bool         `yaml:"requires_directory_creation"`
	// CreateParents allows intermediate pod directories to be created with
	// the destination directory.
	CreateParents bool     `yaml:"create_parents"`
	FileType      FileType `yaml:"file_type"`
	Level         Level    `yaml:"level"`
}

// Title returns the heading shown before the conversion starts.
func (p ConversionPlan) Title() string {
	label := p.FileType.Label()
	if p.Level == LevelChild {
		label = "Nested " + label
	}

	return strings.TrimSpace("Converting " + label)
}

// Phase names the ordered steps of a run.
type Phase string

// Phases in execution order.
const (
	PhaseEnsureRootPod      Phase = "ensure-root-pod"
	PhaseComponents         Phase = "components"
	PhaseComponentTemplates Phase = "component-templates"
	PhaseRoots              Phase = "roots"
	PhaseChildren           Phase = "children"
)

// Batch is a group of plans that may execute in any order. A batch settles
// completely before the next one starts.
type Batch struct {
	Phase    Phase            `yaml:"phase"`
	Category string           `yaml:"category"`
	Plans    []ConversionPlan `yaml:"plans"`
}
