// Package extractor discovers the entity types reachable from an aggregate
// root (a DbContext-style type) in a loaded type-descriptor module.
package extractor

import (
	"fmt"
	"strings"

	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/loader"
	"github.com/toyz/modelmeta/internal/models"
	"github.com/toyz/modelmeta/internal/typename"
	"github.com/toyz/modelmeta/internal/utils"
)

const (
	// DefaultContextMarker identifies aggregate roots by their base type's full name
	DefaultContextMarker = "Microsoft.EntityFrameworkCore.DbContext"
	// DefaultCollectionMarker identifies tracked entity collections by canonical name
	DefaultCollectionMarker = "DbSet"
)

// ModuleLoader loads a type-descriptor module
type ModuleLoader interface {
	Load(dir, name string) (*loader.Module, error)
}

// Options configures root and collection recognition
type Options struct {
	ContextMarker    string
	CollectionMarker string
}

// Extractor finds the aggregate root of a module and its entity types
type Extractor struct {
	loader      ModuleLoader
	resolver    *typename.Resolver
	diagnostics *utils.DiagnosticSystem
	options     Options
}

// NewExtractor creates a new extractor. Empty markers fall back to the defaults.
func NewExtractor(moduleLoader ModuleLoader, options Options, diagnostics *utils.DiagnosticSystem) *Extractor {
	if options.ContextMarker == "" {
		options.ContextMarker = DefaultContextMarker
	}
	if options.CollectionMarker == "" {
		options.CollectionMarker = DefaultCollectionMarker
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Extractor{
		loader:      moduleLoader,
		resolver:    typename.NewResolver(),
		diagnostics: diagnostics,
		options:     options,
	}
}

// Result is the outcome of one extraction
type Result struct {
	Module   *loader.Module
	Root     *models.TypeDescriptor
	Entities []*models.TypeDescriptor
}

// Extract loads the module and returns the entity types of its aggregate
// root in property order. An empty root selects by context marker.
func (e *Extractor) Extract(modulePath, moduleName, root string) ([]*models.TypeDescriptor, error) {
	result, err := e.ExtractResult(modulePath, moduleName, root)
	if err != nil {
		return nil, err
	}
	return result.Entities, nil
}

// ExtractResult is Extract with the loaded module and selected root attached
func (e *Extractor) ExtractResult(modulePath, moduleName, root string) (*Result, error) {
	module, err := e.LoadModule(modulePath, moduleName)
	if err != nil {
		return nil, err
	}

	rootType, err := e.SelectRoot(module, root)
	if err != nil {
		return nil, err
	}
	e.diagnostics.Verbose("Using context %s", rootType.FullName())

	if failed := rootType.Incomplete(); failed != nil {
		return nil, errors.NewTypeLoadError(failed.FullName(),
			fmt.Errorf("context type %s inherits from it", rootType.FullName()))
	}

	return &Result{
		Module:   module,
		Root:     rootType,
		Entities: e.EntityTypes(rootType),
	}, nil
}

// Candidates returns every type of the module whose base matches the context marker
func (e *Extractor) Candidates(modulePath, moduleName string) ([]*models.TypeDescriptor, error) {
	module, err := e.LoadModule(modulePath, moduleName)
	if err != nil {
		return nil, err
	}
	return e.ModuleCandidates(module), nil
}

// SelectRoot picks the aggregate root of a loaded module
func (e *Extractor) SelectRoot(module *loader.Module, root string) (*models.TypeDescriptor, error) {
	if root != "" {
		if t, ok := module.Lookup(root); ok {
			return t, nil
		}
		return nil, errors.NewRootNotFoundError(root, e.options.ContextMarker)
	}

	candidates := e.ModuleCandidates(module)
	switch len(candidates) {
	case 0:
		return nil, errors.NewRootNotFoundError("", e.options.ContextMarker)
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.FullName()
		}
		return nil, errors.NewAmbiguousRootError(names)
	}
}

// EntityTypes returns the element type of every tracked collection property
// of root. Duplicates are kept. Entities whose type or base types failed to
// load are skipped with a warning.
func (e *Extractor) EntityTypes(root *models.TypeDescriptor) []*models.TypeDescriptor {
	var entities []*models.TypeDescriptor
	for _, prop := range root.AllProperties() {
		if !e.IsCollection(prop.Type) {
			continue
		}
		entity := prop.Type.TypeArgs[0]
		if failed := entity.Incomplete(); failed != nil {
			e.diagnostics.Warn("Skipping %s: type %s could not be loaded", entity.FullName(), failed.FullName())
			continue
		}
		e.diagnostics.Debug("%s.%s -> %s", root.Name, prop.Name, entity.FullName())
		entities = append(entities, entity)
	}
	return entities
}

// IsCollection reports whether t is a generic type whose canonical name
// contains the collection marker
func (e *Extractor) IsCollection(t *models.TypeDescriptor) bool {
	if t == nil || !t.IsGeneric() || len(t.TypeArgs) == 0 {
		return false
	}
	return strings.Contains(e.resolver.Resolve(t), e.options.CollectionMarker)
}

// LoadModule loads a module and reports the types that failed to load
func (e *Extractor) LoadModule(modulePath, moduleName string) (*loader.Module, error) {
	module, err := e.loader.Load(modulePath, moduleName)
	if err != nil {
		return nil, err
	}
	if !module.Failures.IsEmpty() {
		e.diagnostics.Verbose("%d types could not be loaded from %s", module.Failures.Count(), module.Path)
		for _, failure := range module.Failures.Errors {
			e.diagnostics.Debug("%v", failure)
		}
	}
	return module, nil
}

// ModuleCandidates returns the types of a loaded module whose direct base
// type's full name contains the context marker
func (e *Extractor) ModuleCandidates(module *loader.Module) []*models.TypeDescriptor {
	var candidates []*models.TypeDescriptor
	for _, t := range module.Types {
		if t.Base != nil && strings.Contains(t.Base.FullName(), e.options.ContextMarker) {
			candidates = append(candidates, t)
		}
	}
	return candidates
}
