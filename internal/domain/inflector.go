package domain

import (
	"strings"

	"github.com/jinzhu/inflection"
	m "podify.dev/pkg/podify/internal/model"
)

// Category directory names under app/.
const (
	CategoryRoutes      = "routes"
	CategoryControllers = "controllers"
	CategoryTemplates   = "templates"
	CategoryComponents  = "components"
)

var categoryFileTypes = map[string]m.FileType{
	CategoryRoutes:      m.FileTypeRoute,
	CategoryControllers: m.FileTypeController,
	CategoryTemplates:   m.FileTypeTemplate,
	CategoryComponents:  m.FileTypeComponent,
}

// Singularize turns a plural directory name into the file type token that
// names destination files, e.g. "routes" -> "route".
func Singularize(plural string) m.FileType {
	name := strings.ToLower(strings.TrimSpace(plural))
	if fileType, ok := categoryFileTypes[name]; ok {
		return fileType
	}

	return m.FileType(inflection.Singular(name))
}

// IsCategory reports whether name is one of the four category directories.
func IsCategory(name string) bool {
	_, ok := categoryFileTypes[name]
	return ok
}
