package loader

// Document is the serialized form of a type-descriptor module
type Document struct {
	Format     string           `yaml:"format" msgpack:"format"`
	Name       string           `yaml:"name" msgpack:"name"`
	MVID       string           `yaml:"mvid,omitempty" msgpack:"mvid,omitempty"`
	References []ReferenceEntry `yaml:"references,omitempty" msgpack:"references,omitempty"`
	Types      []TypeEntry      `yaml:"types" msgpack:"types"`
}

// ReferenceEntry declares a type defined by a referenced module
type ReferenceEntry struct {
	Name      string `yaml:"name" msgpack:"name"`
	ValueType bool   `yaml:"value_type,omitempty" msgpack:"value_type,omitempty"`
	Internal  bool   `yaml:"internal,omitempty" msgpack:"internal,omitempty"`
}

// TypeEntry is a type defined by the module itself
type TypeEntry struct {
	Name       string          `yaml:"name" msgpack:"name"`
	Base       string          `yaml:"base,omitempty" msgpack:"base,omitempty"`
	Public     bool            `yaml:"public,omitempty" msgpack:"public,omitempty"`
	ValueType  bool            `yaml:"value_type,omitempty" msgpack:"value_type,omitempty"`
	Properties []PropertyEntry `yaml:"properties,omitempty" msgpack:"properties,omitempty"`
}

// PropertyEntry is one property of a module type
type PropertyEntry struct {
	Name    string `yaml:"name" msgpack:"name"`
	Type    string `yaml:"type" msgpack:"type"`
	Virtual bool   `yaml:"virtual,omitempty" msgpack:"virtual,omitempty"`
}
