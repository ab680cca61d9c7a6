// Package model defines the data structures for pod conversion.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Dir returns all but the last element of the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// Join appends elements to the path.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// ExtensionKind classifies a recognized source extension.
type ExtensionKind string

const (
	// ExtensionScript covers route, controller and component sources.
	ExtensionScript ExtensionKind = "script"
	// ExtensionTemplate covers template sources.
	ExtensionTemplate ExtensionKind = "template"
)

// ResourcePath splits a file path into its directory, base name and extension.
type ResourcePath struct {
	Directory Path   `yaml:"directory"`
	BaseName  string `yaml:"base_name"`
	Extension string `yaml:"extension"`
}

// NewResourcePath splits path into a ResourcePath.
func NewResourcePath(path Path) ResourcePath {
	name := path.Base()
	ext := filepath.Ext(name)

	return ResourcePath{
		Directory: path.Dir(),
		BaseName:  strings.TrimSuffix(name, ext),
		Extension: ext,
	}
}

// FileName returns the base name joined with the extension.
func (r ResourcePath) FileName() string {
	return r.BaseName + r.Extension
}

// Full returns the complete path.
func (r ResourcePath) Full() Path {
	return r.Directory.Join(r.FileName())
}
