package templates

// MetadataFileTemplate is the name of the companion metadata file template
const MetadataFileTemplate = "metadata-file"

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerMetadataTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// Register adds or replaces a template
func (tr *TemplateRegistry) Register(name, template string) {
	tr.templates[name] = template
}

// registerMetadataTemplates registers the companion file templates.
// $i holds the member indentation, which is empty in the global namespace.
func (tr *TemplateRegistry) registerMetadataTemplates() {
	tr.templates[MetadataFileTemplate] = `{{range .Usings}}using {{.}};
{{end}}{{if .Usings}}
{{end}}#nullable disable

{{$i := ""}}{{if .Namespace}}{{$i = "    "}}namespace {{.Namespace}}
{
{{end}}{{$i}}[{{.Attribute}}(typeof({{.MetadataName}}))]
{{$i}}{{.Modifier}} partial class {{.EntityName}}
{{$i}}{
{{$i}}}

{{$i}}internal class {{.MetadataName}}
{{$i}}{
{{range .Fields}}{{if $.Marker}}{{$i}}    {{$.Marker}}
{{end}}{{$i}}    public {{.Type}} {{.Name}} { get; set; }
{{end}}{{$i}}}
{{if .Namespace}}}
{{end}}`
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
