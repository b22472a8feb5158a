package typename

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/modelmeta/internal/models"
)

func named(namespace, name string) *models.TypeDescriptor {
	return &models.TypeDescriptor{Namespace: namespace, Name: name, Public: true}
}

func generic(namespace, name string, args ...*models.TypeDescriptor) *models.TypeDescriptor {
	def := &models.TypeDescriptor{Namespace: namespace, Name: name, Arity: len(args), Public: true}
	return &models.TypeDescriptor{
		Namespace:  namespace,
		Name:       name,
		Arity:      len(args),
		TypeArgs:   args,
		Definition: def,
		Public:     true,
	}
}

func nullable(inner *models.TypeDescriptor) *models.TypeDescriptor {
	t := generic("System", "Nullable`1", inner)
	t.ValueType = true
	return t
}

func TestResolvePrimitiveAliases(t *testing.T) {
	resolver := NewResolver()

	tests := map[string]string{
		"Boolean": "bool",
		"Byte":    "byte",
		"Char":    "char",
		"Decimal": "decimal",
		"Double":  "double",
		"Single":  "float",
		"Int32":   "int",
		"Int64":   "long",
		"Object":  "object",
		"SByte":   "sbyte",
		"Int16":   "short",
		"String":  "string",
		"UInt32":  "uint",
		"UInt64":  "ulong",
		"Void":    "void",
	}

	for name, alias := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, alias, resolver.Resolve(named("System", name)))
		})
	}
}

func TestResolveNonAliasedTypes(t *testing.T) {
	resolver := NewResolver()

	assert.Equal(t, "DateTime", resolver.Resolve(named("System", "DateTime")))
	assert.Equal(t, "UInt16", resolver.Resolve(named("System", "UInt16")))
	assert.Equal(t, "Blog", resolver.Resolve(named("Blogging", "Blog")))
	assert.Equal(t, "Widget", resolver.Resolve(named("", "Widget")))
	// Same simple name outside the System namespace is not aliased.
	assert.Equal(t, "Int32", resolver.Resolve(named("Custom", "Int32")))
}

func TestResolveNestedTypes(t *testing.T) {
	resolver := NewResolver()

	line := named("Shop", "Orders+Line")
	assert.Equal(t, "Orders.Line", resolver.Resolve(line))
	assert.Equal(t, "List<Orders.Line>", resolver.Resolve(generic("System.Collections.Generic", "List`1", line)))
	assert.Equal(t, "Registry.Map<string>", resolver.Resolve(generic("Shop", "Registry+Map`1", named("System", "String"))))
	assert.Equal(t, "Orders.Line[]", resolver.Resolve(&models.TypeDescriptor{Name: "Orders+Line[]", Namespace: "Shop", Elem: line}))
}

func TestResolveGenerics(t *testing.T) {
	resolver := NewResolver()

	str := named("System", "String")
	i32 := named("System", "Int32")

	tests := []struct {
		name     string
		input    *models.TypeDescriptor
		expected string
	}{
		{
			name:     "single argument",
			input:    generic("System.Collections.Generic", "List`1", i32),
			expected: "List<int>",
		},
		{
			name:     "entity argument",
			input:    generic("Microsoft.EntityFrameworkCore", "DbSet`1", named("Blogging", "Blog")),
			expected: "DbSet<Blog>",
		},
		{
			name: "nested arguments",
			input: generic("System.Collections.Generic", "Dictionary`2",
				str, generic("System.Collections.Generic", "List`1", i32)),
			expected: "Dictionary<string,List<int>>",
		},
		{
			name: "deeply nested",
			input: generic("System.Collections.Generic", "List`1",
				generic("System.Collections.Generic", "List`1",
					generic("System.Collections.Generic", "List`1", str))),
			expected: "List<List<List<string>>>",
		},
		{
			name:     "nullable argument",
			input:    generic("System.Collections.Generic", "List`1", nullable(i32)),
			expected: "List<int?>",
		},
		{
			name:     "name without arity suffix",
			input:    generic("Shop", "Pair", str, i32),
			expected: "Pair<string,int>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(tt.input))
		})
	}
}

func TestResolveNullable(t *testing.T) {
	resolver := NewResolver()

	assert.Equal(t, "int?", resolver.Resolve(nullable(named("System", "Int32"))))
	assert.Equal(t, "DateTime?", resolver.Resolve(nullable(named("System", "DateTime"))))
	assert.Equal(t, "int?", resolver.Resolve(nullable(nullable(named("System", "Int32")))))
}

func TestResolveArrays(t *testing.T) {
	resolver := NewResolver()

	bytes := &models.TypeDescriptor{Namespace: "System", Name: "Byte[]", Elem: named("System", "Byte")}
	assert.Equal(t, "byte[]", resolver.Resolve(bytes))

	jagged := &models.TypeDescriptor{Namespace: "System", Name: "Byte[][]", Elem: bytes}
	assert.Equal(t, "byte[][]", resolver.Resolve(jagged))
}

func TestIsNullable(t *testing.T) {
	assert.True(t, IsNullable(nullable(named("System", "Int32"))))
	assert.False(t, IsNullable(named("System", "Int32")))
	assert.False(t, IsNullable(generic("System.Collections.Generic", "List`1", named("System", "Int32"))))
	assert.False(t, IsNullable(nil))
}

func TestAlias(t *testing.T) {
	alias, ok := Alias("System.Int64")
	assert.True(t, ok)
	assert.Equal(t, "long", alias)

	_, ok = Alias("System.Guid")
	assert.False(t, ok)
}
