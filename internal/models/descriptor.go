package models

import "strings"

// TypeDescriptor describes a single type loaded from a type-descriptor module.
// Constructed generic types share their Definition and carry the bound
// type arguments in TypeArgs.
type TypeDescriptor struct {
	Name       string                // simple name, may carry an arity suffix ("DbSet`1")
	Namespace  string                // declaring namespace, empty for the global namespace
	Arity      int                   // number of generic parameters of the definition
	TypeArgs   []*TypeDescriptor     // bound generic arguments in declared order
	Definition *TypeDescriptor       // generic definition of a constructed type
	Elem       *TypeDescriptor       // element type of an array type
	Base       *TypeDescriptor       // direct base type, nil for roots of the hierarchy
	Properties []*PropertyDescriptor // declared properties in declaration order
	Public     bool
	ValueType  bool
	External   bool // defined outside the loaded module
	LoadFailed bool // binding failed, members may be missing
}

// PropertyDescriptor describes a property declared on a type
type PropertyDescriptor struct {
	Name        string
	Type        *TypeDescriptor
	Overridable bool // accessor is virtual
	Declarer    *TypeDescriptor
}

// IsGeneric reports whether the type is a generic definition or a constructed generic type
func (t *TypeDescriptor) IsGeneric() bool {
	return t.Arity > 0 || len(t.TypeArgs) > 0
}

// IsArray reports whether the type is an array of Elem
func (t *TypeDescriptor) IsArray() bool {
	return t.Elem != nil
}

// FullName returns the namespace-qualified name of the type without its type
// arguments. Nested types keep their declaring types ("Ns.Outer+Inner").
func (t *TypeDescriptor) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// DefinitionName returns the full name of the generic definition for constructed
// types, and the full name of the type itself otherwise.
func (t *TypeDescriptor) DefinitionName() string {
	if t.Definition != nil {
		return t.Definition.FullName()
	}
	return t.FullName()
}

// BaseName strips the arity suffix from the simple name
func (t *TypeDescriptor) BaseName() string {
	if i := strings.LastIndexByte(t.Name, '`'); i >= 0 {
		return t.Name[:i]
	}
	return t.Name
}

// AllProperties returns the declared properties followed by the properties
// inherited along the base chain. A property hidden by a more derived
// declaration of the same name is skipped.
func (t *TypeDescriptor) AllProperties() []*PropertyDescriptor {
	var props []*PropertyDescriptor
	seen := make(map[string]bool)
	for cur := t; cur != nil; cur = cur.Base {
		for _, p := range cur.Properties {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			props = append(props, p)
		}
	}
	return props
}

// IsNested reports whether the type is declared inside another type
func (t *TypeDescriptor) IsNested() bool {
	return strings.IndexByte(t.Name, '+') >= 0
}

// Incomplete returns the first type along the base chain, starting with t,
// whose binding failed. It returns nil when every member of the chain loaded.
func (t *TypeDescriptor) Incomplete() *TypeDescriptor {
	for cur := t; cur != nil; cur = cur.Base {
		if cur.LoadFailed {
			return cur
		}
		if cur.Definition != nil && cur.Definition.LoadFailed {
			return cur.Definition
		}
	}
	return nil
}

// String returns the reflection-style full name including bound type arguments
func (t *TypeDescriptor) String() string {
	if t.Elem != nil {
		return t.Elem.String() + "[]"
	}
	if len(t.TypeArgs) == 0 {
		return t.FullName()
	}
	var sb strings.Builder
	sb.WriteString(t.FullName())
	sb.WriteByte('[')
	for i, arg := range t.TypeArgs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
