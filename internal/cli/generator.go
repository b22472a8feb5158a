package cli

import (
	"context"

	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/extractor"
	"github.com/toyz/modelmeta/internal/generator"
	"github.com/toyz/modelmeta/internal/loader"
	"github.com/toyz/modelmeta/internal/models"
	"github.com/toyz/modelmeta/internal/utils"
)

// Generator coordinates the build, extraction and file output for one project
type Generator struct {
	project       *Project
	config        *Config
	builder       *Builder
	extractor     *extractor.Extractor
	codeGenerator generator.CodeGenerator
	diagnostics   *utils.DiagnosticSystem
	summary       models.GenerationSummary
}

// NewGenerator creates a new CLI generator for a resolved project
func NewGenerator(project *Project, config *Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(config.DiagnosticLevel())
	}
	return &Generator{
		project:       project,
		config:        config,
		builder:       NewBuilder(config.Build.Command, diagnostics),
		extractor:     extractor.NewExtractor(loader.NewLoader(config.ModuleFormat()), config.ExtractorOptions(), diagnostics),
		codeGenerator: generator.NewGenerator(config.GeneratorOptions()),
		diagnostics:   diagnostics,
	}
}

// GetSummary returns the summary of the last Generate call
func (g *Generator) GetSummary() models.GenerationSummary {
	return g.summary
}

// ModulePath returns the directory the type-descriptor module is read from
func (g *Generator) ModulePath() string {
	return g.project.ModuleDir(g.config)
}

// Generate builds the project, extracts the entities of the root selected by
// root (empty for the default scan) and writes one file per entity into
// outputDir. An empty outputDir selects output.dir from the configuration.
func (g *Generator) Generate(ctx context.Context, outputDir, root string) error {
	g.summary = models.GenerationSummary{GeneratedFiles: make([]string, 0)}

	if err := g.builder.Build(ctx, g.project); err != nil {
		return err
	}

	result, err := g.extractor.ExtractResult(g.ModulePath(), g.project.Name, root)
	if err != nil {
		return err
	}
	g.summary.ModulePath = result.Module.Path
	g.summary.RootType = result.Root.FullName()
	g.summary.EntitiesFound = len(result.Entities)

	files, err := g.codeGenerator.RenderAll(result.Entities)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = g.config.Output.Dir
	}
	sink := utils.NewFileSink(outputDir)
	ending := g.config.LineEnding()

	for _, file := range files {
		path, err := sink.WriteFile(file.Name, utils.FormatLineEndings(file.Content, ending))
		if err != nil {
			return errors.WrapFileSystemError("write", file.Name, err).
				WithContext("output_dir", sink.Dir())
		}
		g.diagnostics.Item("create %s.", file.Name)
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	}

	return nil
}

// List builds the project and returns the loaded module with every type
// the default scan would consider as a root
func (g *Generator) List(ctx context.Context) (*loader.Module, []*models.TypeDescriptor, error) {
	if err := g.builder.Build(ctx, g.project); err != nil {
		return nil, nil, err
	}

	module, err := g.extractor.LoadModule(g.ModulePath(), g.project.Name)
	if err != nil {
		return nil, nil, err
	}
	return module, g.extractor.ModuleCandidates(module), nil
}
