package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "podify.dev/pkg/podify/internal/model"
)

// MapRootLevelFile builds the plan for a file found directly inside one of the
// category directories. Templates under app/templates/components are paired
// with the component directory of the same name.
func MapRootLevelFile(cfg m.RunConfig, filePath m.Path) (m.ConversionPlan, error) {
	source := m.NewResourcePath(filePath)
	if err := checkExtension(cfg, source); err != nil {
		return m.ConversionPlan{}, err
	}

	category := source.Directory.Base()
	if !IsCategory(category) {
		return m.ConversionPlan{}, fmt.Errorf("%s is not inside a category directory", filePath)
	}

	if category == CategoryComponents && source.Directory.Dir().Base() == CategoryTemplates {
		return mapComponentTemplate(cfg, source), nil
	}

	fileType := Singularize(category)

	directory := cfg.PodRoot().Join(source.BaseName)
	if fileType == m.FileTypeComponent {
		directory = cfg.PodRoot().Join(CategoryComponents, source.BaseName)
	}

	return m.ConversionPlan{
		Source: source,
		Destination: m.ResourcePath{
			Directory: directory,
			BaseName:  string(fileType),
			Extension: source.Extension,
		},
		RequiresDirectoryCreation: requiresDirectory(fileType),
		CreateParents:             fileType == m.FileTypeComponent,
		FileType:                  fileType,
		Level:                     m.LevelRoot,
	}, nil
}

// mapComponentTemplate places a component template next to the component
// script. The directory is expected to exist already.
func mapComponentTemplate(cfg m.RunConfig, source m.ResourcePath) m.ConversionPlan {
	return m.ConversionPlan{
		Source: source,
		Destination: m.ResourcePath{
			Directory: cfg.PodRoot().Join(CategoryComponents, source.BaseName),
			BaseName:  string(m.FileTypeTemplate),
			Extension: source.Extension,
		},
		FileType: m.FileTypeTemplate,
		Level:    m.LevelRoot,
	}
}

// MapChildLevelFile builds the plan for a file inside a resource directory
// beneath categoryDir, e.g. routes/foo/edit.js -> <pods>/foo/edit/route.js.
// Deeper resource directories keep their full path relative to categoryDir.
func MapChildLevelFile(cfg m.RunConfig, categoryDir, filePath m.Path) (m.ConversionPlan, error) {
	source := m.NewResourcePath(filePath)
	if err := checkExtension(cfg, source); err != nil {
		return m.ConversionPlan{}, err
	}

	resource, err := filepath.Rel(string(categoryDir), string(source.Directory))
	if err != nil {
		return m.ConversionPlan{}, fmt.Errorf("resolve resource of %s: %w", filePath, err)
	}

	if resource == "." || resource == ".." || strings.HasPrefix(resource, ".."+string(filepath.Separator)) {
		return m.ConversionPlan{}, fmt.Errorf("%s is not nested below %s", filePath, categoryDir)
	}

	fileType := Singularize(categoryDir.Base())

	return m.ConversionPlan{
		Source: source,
		Destination: m.ResourcePath{
			Directory: cfg.PodRoot().Join(resource, source.BaseName),
			BaseName:  string(fileType),
			Extension: source.Extension,
		},
		RequiresDirectoryCreation: true,
		CreateParents:             true,
		FileType:                  fileType,
		Level:                     m.LevelChild,
	}, nil
}

func requiresDirectory(fileType m.FileType) bool {
	switch fileType {
	case m.FileTypeRoute, m.FileTypeController, m.FileTypeComponent:
		return true
	default:
		return false
	}
}

func checkExtension(cfg m.RunConfig, source m.ResourcePath) error {
	if _, ok := cfg.ExtensionKindOf(source.Extension); !ok {
		return fmt.Errorf("%s has unrecognized extension %q", source.Full(), source.Extension)
	}

	return nil
}
