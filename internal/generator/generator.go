// Package generator turns entity type descriptors into companion partial
// class files that attach a metadata shadow type to each entity.
package generator

import (
	"fmt"

	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/models"
	"github.com/toyz/modelmeta/internal/templates"
	"github.com/toyz/modelmeta/internal/typename"
)

const (
	// DefaultExtension is appended to the entity name to form the file name
	DefaultExtension = ".Partial.cs"
	// DefaultAttribute associates the entity with its metadata type
	DefaultAttribute = "ModelMetadataType"
	// DefaultMarker is the commented-out annotation placed above every field
	DefaultMarker = "// [Required]"
	// MetadataSuffix is appended to the entity name to name the shadow type
	MetadataSuffix = "Metadata"
)

// DefaultUsings returns the using directives emitted when none are configured
func DefaultUsings() []string {
	return []string{
		"Microsoft.AspNetCore.Mvc",
		"System",
		"System.Collections.Generic",
		"System.ComponentModel.DataAnnotations",
	}
}

// Options configures the rendered files
type Options struct {
	Usings    []string // nil selects DefaultUsings, an empty slice emits none
	Extension string
	Attribute string
	Marker    string // empty selects DefaultMarker
	NoMarker  bool   // omit the marker line entirely
}

// Generator implements the CodeGenerator interface
type Generator struct {
	resolver *typename.Resolver
	registry *templates.TemplateRegistry
	options  Options
}

// NewGenerator creates a new generator. Empty options fall back to the defaults.
func NewGenerator(options Options) *Generator {
	return NewGeneratorWithRegistry(options, templates.DefaultTemplateRegistry)
}

// NewGeneratorWithRegistry creates a generator that renders with the given templates
func NewGeneratorWithRegistry(options Options, registry *templates.TemplateRegistry) *Generator {
	if options.Usings == nil {
		options.Usings = DefaultUsings()
	}
	if options.Extension == "" {
		options.Extension = DefaultExtension
	}
	if options.Attribute == "" {
		options.Attribute = DefaultAttribute
	}
	if options.NoMarker {
		options.Marker = ""
	} else if options.Marker == "" {
		options.Marker = DefaultMarker
	}
	return &Generator{
		resolver: typename.NewResolver(),
		registry: registry,
		options:  options,
	}
}

// FileName returns the output file name for an entity
func (g *Generator) FileName(entity *models.TypeDescriptor) string {
	return entity.BaseName() + g.options.Extension
}

// Model builds the template data for an entity. Overridable properties
// are left out; the rest keep their order, declared before inherited.
func (g *Generator) Model(entity *models.TypeDescriptor) models.MetadataModel {
	modifier := "internal"
	if entity.Public {
		modifier = "public"
	}

	var fields []models.MetadataField
	for _, prop := range entity.AllProperties() {
		if prop.Overridable {
			continue
		}
		fields = append(fields, models.MetadataField{
			Name: prop.Name,
			Type: g.resolver.Resolve(prop.Type),
		})
	}

	return models.MetadataModel{
		Namespace:    entity.Namespace,
		EntityName:   entity.BaseName(),
		MetadataName: entity.BaseName() + MetadataSuffix,
		Modifier:     modifier,
		Attribute:    g.options.Attribute,
		Marker:       g.options.Marker,
		Usings:       g.options.Usings,
		Fields:       fields,
	}
}

// Render renders the companion file for one entity
func (g *Generator) Render(entity *models.TypeDescriptor) (models.GeneratedFile, error) {
	if entity == nil {
		return models.GeneratedFile{}, errors.WrapGenerateError("metadata file", fmt.Errorf("entity cannot be nil"))
	}
	if entity.IsNested() {
		return models.GeneratedFile{}, errors.WrapGenerateError("metadata file for "+entity.FullName(),
			fmt.Errorf("nested types cannot take a companion partial class")).
			WithContext("entity", entity.FullName()).
			WithSuggestion("Declare the entity type at namespace level")
	}

	content, err := templates.RenderMetadataFileWith(g.registry, g.Model(entity))
	if err != nil {
		return models.GeneratedFile{}, errors.WrapTemplateError(templates.MetadataFileTemplate, "render", err).
			WithContext("entity", entity.FullName())
	}

	return models.GeneratedFile{
		Name:    g.FileName(entity),
		Entity:  entity,
		Content: content,
	}, nil
}

// RenderAll renders every entity in order. Repeated entities render repeatedly.
func (g *Generator) RenderAll(entities []*models.TypeDescriptor) ([]models.GeneratedFile, error) {
	files := make([]models.GeneratedFile, 0, len(entities))
	for _, entity := range entities {
		file, err := g.Render(entity)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
