package generator

import "github.com/toyz/modelmeta/internal/models"

// CodeGenerator renders companion metadata files for entity types
type CodeGenerator interface {
	Render(entity *models.TypeDescriptor) (models.GeneratedFile, error)
	RenderAll(entities []*models.TypeDescriptor) ([]models.GeneratedFile, error)
	FileName(entity *models.TypeDescriptor) string
}
