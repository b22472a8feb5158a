// Package templates holds the text templates used to render companion files.
package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toyz/modelmeta/internal/models"
)

// RenderMetadataFile renders the companion metadata file for one entity
// using the default registry
func RenderMetadataFile(model models.MetadataModel) (string, error) {
	return RenderMetadataFileWith(DefaultTemplateRegistry, model)
}

// RenderMetadataFileWith renders the companion metadata file using the given registry
func RenderMetadataFileWith(registry *TemplateRegistry, model models.MetadataModel) (string, error) {
	tmpl, ok := registry.Get(MetadataFileTemplate)
	if !ok {
		return "", fmt.Errorf("template %s is not registered", MetadataFileTemplate)
	}
	return executeTemplate(MetadataFileTemplate, tmpl, model)
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
