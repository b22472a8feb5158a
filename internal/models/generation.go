package models

// GeneratedFile represents a rendered companion file for one entity
type GeneratedFile struct {
	Name    string          // file name relative to the output directory
	Entity  *TypeDescriptor // entity the file was rendered for
	Content string          // rendered source text
}

// MetadataField is one mirrored property of a metadata shadow type
type MetadataField struct {
	Name string // property name, identical to the source property
	Type string // canonical type name
}

// MetadataModel is the data handed to the metadata file template
type MetadataModel struct {
	Namespace    string          // entity namespace, empty for the global namespace
	EntityName   string          // simple name of the entity
	MetadataName string          // name of the shadow type
	Modifier     string          // accessibility of the partial declaration
	Attribute    string          // association attribute name
	Marker       string          // commented-out marker line placed above every field
	Usings       []string        // using directives emitted at the top of the file
	Fields       []MetadataField // mirrored fields in declaration order
}

// GenerationSummary collects statistics for a single generate run
type GenerationSummary struct {
	ModulePath     string
	RootType       string
	EntitiesFound  int
	GeneratedFiles []string
}
