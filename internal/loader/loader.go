// Package loader reads type-descriptor modules and binds their type
// references into models.TypeDescriptor graphs.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/models"
	"github.com/toyz/modelmeta/internal/typeref"
)

// SupportedMajor is the module format major version this loader reads
const SupportedMajor = "v1"

// Module is a loaded type-descriptor module
type Module struct {
	Name     string
	Path     string
	MVID     uuid.UUID
	Types    []*models.TypeDescriptor // types that loaded, in declaration order
	Failures *errors.MultipleErrors   // types that did not load
}

// Lookup finds a loaded module type by full name
func (m *Module) Lookup(fullName string) (*models.TypeDescriptor, bool) {
	for _, t := range m.Types {
		if t.FullName() == fullName {
			return t, true
		}
	}
	return nil, false
}

// Loader loads type-descriptor modules from disk
type Loader struct {
	format Format
	parser *typeref.Parser
}

// NewLoader creates a loader for the given module format
func NewLoader(format Format) *Loader {
	return &Loader{
		format: format,
		parser: typeref.NewParser(),
	}
}

// Format returns the module format the loader reads
func (l *Loader) Format() Format {
	return l.format
}

// ModulePath returns the file a module base name resolves to
func (l *Loader) ModulePath(dir, name string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, l.format.FileName(name))
}

// Load reads and binds the module {dir}/{name}{ext}. Types whose references
// cannot be bound are recorded in Module.Failures and left out of Types.
func (l *Loader) Load(dir, name string) (*Module, error) {
	path := l.ModulePath(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewModuleNotFoundError(path)
		}
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	doc, err := l.format.Decode(data)
	if err != nil {
		return nil, errors.WrapModuleFormatError(path, err)
	}

	module, err := l.Bind(doc)
	if err != nil {
		return nil, errors.WrapModuleFormatError(path, err)
	}
	module.Path = path
	if module.Name == "" {
		module.Name = name
	}
	return module, nil
}

// Bind turns a decoded document into a module. It fails only on
// module-level problems; individual types fail into Module.Failures.
func (l *Loader) Bind(doc *Document) (*Module, error) {
	if err := checkFormatVersion(doc.Format); err != nil {
		return nil, err
	}

	module := &Module{
		Name:     doc.Name,
		Failures: errors.NewMultipleErrors(),
	}

	if doc.MVID != "" {
		id, err := uuid.Parse(doc.MVID)
		if err != nil {
			return nil, fmt.Errorf("invalid mvid %q: %w", doc.MVID, err)
		}
		module.MVID = id
	}

	b := newBinder(l.parser)
	b.registerCorlib()

	for _, ref := range doc.References {
		if err := b.registerReference(ref); err != nil {
			module.Failures.Add(errors.NewTypeLoadError(ref.Name, err))
		}
	}

	// Register every module type before binding so types may reference each other.
	shells := make([]*models.TypeDescriptor, len(doc.Types))
	for i, entry := range doc.Types {
		shell, err := b.registerModuleType(entry)
		if err != nil {
			module.Failures.Add(errors.NewTypeLoadError(entry.Name, err))
			continue
		}
		shells[i] = shell
	}

	for i, entry := range doc.Types {
		shell := shells[i]
		if shell == nil {
			continue
		}
		if err := b.bindModuleType(shell, entry); err != nil {
			// Keep the shell resolvable so references to it still bind.
			shell.LoadFailed = true
			module.Failures.Add(errors.NewTypeLoadError(entry.Name, err))
			continue
		}
		module.Types = append(module.Types, shell)
	}

	b.completeConstructed()

	return module, nil
}

// checkFormatVersion accepts any v1.x.y format version
func checkFormatVersion(version string) error {
	if version == "" {
		return fmt.Errorf("missing format version")
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid format version %q", version)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("unsupported format version %q (supported: %s)", version, SupportedMajor)
	}
	return nil
}

// binder resolves reference strings against the known type definitions
type binder struct {
	parser      *typeref.Parser
	definitions map[string]*models.TypeDescriptor
	constructed map[string]*models.TypeDescriptor
}

func newBinder(parser *typeref.Parser) *binder {
	return &binder{
		parser:      parser,
		definitions: make(map[string]*models.TypeDescriptor),
		constructed: make(map[string]*models.TypeDescriptor),
	}
}

func (b *binder) registerCorlib() {
	for _, ct := range corlib {
		expr, err := b.parser.Parse(ct.name)
		if err != nil {
			panic("invalid core library type: " + ct.name)
		}
		b.definitions[expr.DefinitionName()] = definitionOf(expr, ct.valueType, true, true)
	}
}

func (b *binder) registerReference(ref ReferenceEntry) error {
	expr, err := b.parser.Parse(ref.Name)
	if err != nil {
		return err
	}
	if len(expr.Args) > 0 || expr.IsArray() {
		return fmt.Errorf("reference must name a type definition")
	}
	if _, exists := b.definitions[expr.DefinitionName()]; exists {
		return nil
	}
	b.definitions[expr.DefinitionName()] = definitionOf(expr, ref.ValueType, !ref.Internal, true)
	return nil
}

func (b *binder) registerModuleType(entry TypeEntry) (*models.TypeDescriptor, error) {
	expr, err := b.parser.Parse(entry.Name)
	if err != nil {
		return nil, err
	}
	if len(expr.Args) > 0 || expr.IsArray() {
		return nil, fmt.Errorf("type name must name a type definition")
	}
	if existing, exists := b.definitions[expr.DefinitionName()]; exists && !existing.External {
		return nil, fmt.Errorf("duplicate type definition")
	}
	shell := definitionOf(expr, entry.ValueType, entry.Public, false)
	b.definitions[expr.DefinitionName()] = shell
	return shell, nil
}

func (b *binder) bindModuleType(shell *models.TypeDescriptor, entry TypeEntry) error {
	if entry.Base != "" {
		base, err := b.bind(entry.Base)
		if err != nil {
			return fmt.Errorf("base type: %w", err)
		}
		shell.Base = base
	}

	props := make([]*models.PropertyDescriptor, 0, len(entry.Properties))
	for _, pe := range entry.Properties {
		if pe.Name == "" {
			return fmt.Errorf("property without a name")
		}
		pt, err := b.bind(pe.Type)
		if err != nil {
			return fmt.Errorf("property %s: %w", pe.Name, err)
		}
		props = append(props, &models.PropertyDescriptor{
			Name:        pe.Name,
			Type:        pt,
			Overridable: pe.Virtual,
			Declarer:    shell,
		})
	}
	shell.Properties = props
	return nil
}

// bind parses a reference string and resolves it to a descriptor
func (b *binder) bind(ref string) (*models.TypeDescriptor, error) {
	expr, err := b.parser.Parse(ref)
	if err != nil {
		return nil, err
	}
	return b.bindExpr(expr)
}

func (b *binder) bindExpr(expr *typeref.Expr) (*models.TypeDescriptor, error) {
	key := expr.String()
	if t, ok := b.constructed[key]; ok {
		return t, nil
	}

	if expr.IsArray() {
		elem, err := b.bindExpr(expr.ElementExpr())
		if err != nil {
			return nil, err
		}
		arr := &models.TypeDescriptor{
			Name:      elem.Name + "[]",
			Namespace: elem.Namespace,
			Elem:      elem,
			Public:    elem.Public,
			External:  true,
		}
		b.constructed[key] = arr
		return arr, nil
	}

	def, ok := b.definitions[expr.DefinitionName()]
	if !ok {
		return nil, fmt.Errorf("unresolved type reference '%s'", expr.DefinitionName())
	}
	if len(expr.Args) == 0 {
		return def, nil
	}

	args := make([]*models.TypeDescriptor, len(expr.Args))
	for i, arg := range expr.Args {
		bound, err := b.bindExpr(arg.Type())
		if err != nil {
			return nil, err
		}
		args[i] = bound
	}

	t := &models.TypeDescriptor{
		Name:       def.Name,
		Namespace:  def.Namespace,
		Arity:      def.Arity,
		TypeArgs:   args,
		Definition: def,
		Base:       def.Base,
		Properties: def.Properties,
		Public:     def.Public,
		ValueType:  def.ValueType,
		External:   def.External,
	}
	b.constructed[key] = t
	return t, nil
}

// completeConstructed copies the members of every generic definition into
// the types constructed from it. A definition may be bound after a type
// constructed from it, so this runs once all module types are bound.
func (b *binder) completeConstructed() {
	for _, t := range b.constructed {
		def := t.Definition
		if def == nil {
			continue
		}
		t.Base = def.Base
		t.Properties = def.Properties
		t.LoadFailed = def.LoadFailed
	}
}

func definitionOf(expr *typeref.Expr, valueType, public, external bool) *models.TypeDescriptor {
	namespace, name := typeref.SplitName(expr.Name)
	if expr.Arity > 0 {
		name = fmt.Sprintf("%s`%d", name, expr.Arity)
	}
	return &models.TypeDescriptor{
		Name:      name,
		Namespace: namespace,
		Arity:     expr.Arity,
		Public:    public,
		ValueType: valueType,
		External:  external,
	}
}
