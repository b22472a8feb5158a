// Package typename renders type descriptors as canonical display names:
// primitive aliases, Inner? for nullable value types and Outer<A,B> for
// generic types, applied recursively.
package typename

import (
	"strings"

	"github.com/toyz/modelmeta/internal/models"
)

// NullableDefinition is the full name of the nullable value wrapper definition
const NullableDefinition = "System.Nullable`1"

// aliases maps core library full names to their short language aliases.
// System.UInt16 has no entry on purpose.
var aliases = map[string]string{
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.Char":    "char",
	"System.Decimal": "decimal",
	"System.Double":  "double",
	"System.Single":  "float",
	"System.Int32":   "int",
	"System.Int64":   "long",
	"System.Object":  "object",
	"System.SByte":   "sbyte",
	"System.Int16":   "short",
	"System.String":  "string",
	"System.UInt32":  "uint",
	"System.UInt64":  "ulong",
	"System.Void":    "void",
}

// Alias returns the short alias for a core library type, if it has one
func Alias(fullName string) (string, bool) {
	alias, ok := aliases[fullName]
	return alias, ok
}

// Resolver converts type descriptors into canonical display names
type Resolver struct{}

// NewResolver creates a new type name resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the canonical name of t
func (r *Resolver) Resolve(t *models.TypeDescriptor) string {
	if t == nil {
		return ""
	}

	if t.IsArray() {
		return r.Resolve(t.Elem) + "[]"
	}

	if !t.IsGeneric() {
		if alias, ok := Alias(t.FullName()); ok {
			return alias
		}
		return displayName(t.Name)
	}

	if IsNullable(t) {
		inner := t.TypeArgs[0]
		// Nullable<Nullable<T>> cannot be constructed, but keep a single suffix regardless.
		if IsNullable(inner) {
			return r.Resolve(inner)
		}
		return r.Resolve(inner) + "?"
	}

	var sb strings.Builder
	sb.WriteString(displayName(t.BaseName()))
	sb.WriteByte('<')
	for i, arg := range t.TypeArgs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(r.Resolve(arg))
	}
	sb.WriteByte('>')
	return sb.String()
}

// IsNullable reports whether t is the nullable value wrapper bound to one argument
func IsNullable(t *models.TypeDescriptor) bool {
	return t != nil && len(t.TypeArgs) == 1 && t.DefinitionName() == NullableDefinition
}

// displayName writes nested type names with a dot between declaring and
// nested type ("Outer+Inner" becomes "Outer.Inner")
func displayName(name string) string {
	return strings.ReplaceAll(name, "+", ".")
}
