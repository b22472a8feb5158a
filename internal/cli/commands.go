package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/modelmeta/internal/command"
	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/loader"
	"github.com/toyz/modelmeta/internal/utils"
)

const (
	// ExitSuccess is returned when a command completed
	ExitSuccess = 0
	// ExitFailure is returned when the pipeline failed after its arguments bound
	ExitFailure = 2
)

// App holds what the command actions share: the output streams, the
// directory commands resolve paths from, and the cancellation context
type App struct {
	Name    string
	Version string
	Out     io.Writer
	Err     io.Writer
	WorkDir string // empty means the process working directory
	Context context.Context

	// Diagnostics builds the console for a level; nil uses colored stdout/stderr
	Diagnostics func(level utils.DiagnosticLevel) *utils.DiagnosticSystem
}

// NewApp creates an app writing to stdout and stderr
func NewApp(ctx context.Context, version string) *App {
	return &App{
		Name:    "modelmeta",
		Version: version,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Context: ctx,
	}
}

// Command builds the command tree
func (a *App) Command() *command.Command {
	root := command.New(a.Name, "Generate ModelMetadataType companion files for the entities of a DbContext", a.Out)

	root.SubCommand("list", "List the context types defined by the project", func(cmd *command.Command) {
		cmd.Option("project", "project", "p", "Project file or directory (default: search upwards from the working directory)")
		cmd.OnRun(a.runList)
	})

	root.SubCommand("generate", "Generate one metadata file per entity of the context", func(cmd *command.Command) {
		cmd.Option("output", "output", "o", "Output directory (default: output.dir)")
		cmd.Option("project", "project", "p", "Project file or directory (default: search upwards from the working directory)")
		cmd.Option("context", "context", "c", "Full name of the context type (default: the only type derived from the context marker)")
		cmd.OnRun(a.runGenerate)
	})

	root.SubCommand("clean", "Delete generated metadata files from the output directory", func(cmd *command.Command) {
		cmd.Option("output", "output", "o", "Output directory (default: output.dir)")
		cmd.Option("project", "project", "p", "Project whose configuration is used")
		cmd.OnRun(a.runClean)
	})

	root.SubCommand("_compile", "Compile a readable module into the binary module format", func(cmd *command.Command) {
		cmd.Option("input", "input", "i", "Readable module file")
		cmd.Option("output", "output", "o", "Binary module file (default: next to the input)")
		cmd.OnRun(a.runCompile)
	})

	root.SubCommand("_version", "Print the version", func(cmd *command.Command) {
		cmd.OnRun(func(map[string]string) int {
			fmt.Fprintf(a.Out, "%s %s\n", a.Name, a.Version)
			return ExitSuccess
		})
	})

	return root
}

// Run dispatches the command line
func (a *App) Run(args []string) int {
	return a.Command().Run(args)
}

func (a *App) runList(args map[string]string) int {
	project, config, diagnostics, err := a.prepare(args["project"])
	if err != nil {
		return a.fail(err, config)
	}

	gen := NewGenerator(project, config, diagnostics)
	module, candidates, err := gen.List(a.ctx())
	if err != nil {
		return a.fail(err, config)
	}

	diagnostics.Verbose("Module %s (mvid %s)", module.Path, module.MVID)
	if len(candidates) == 0 {
		diagnostics.Warn("No type derived from '%s' found", config.ContextMarker)
	}
	for _, candidate := range candidates {
		fmt.Fprintln(a.Out, candidate.FullName())
	}
	return ExitSuccess
}

func (a *App) runGenerate(args map[string]string) int {
	project, config, diagnostics, err := a.prepare(args["project"])
	if err != nil {
		return a.fail(err, config)
	}

	diagnostics.Header("generating metadata for " + project.Name)
	diagnostics.Verbose("Project %s", project.Path)

	gen := NewGenerator(project, config, diagnostics)
	if err := gen.Generate(a.ctx(), a.path(args["output"]), args["context"]); err != nil {
		return a.fail(err, config)
	}

	summary := gen.GetSummary()
	if config.IsVerbose() {
		diagnostics.Summary("Generation Complete!", map[string]interface{}{
			"Context":         summary.RootType,
			"Entities found":  summary.EntitiesFound,
			"Files generated": len(summary.GeneratedFiles),
			"Module":          summary.ModulePath,
		})
	}
	return ExitSuccess
}

func (a *App) runClean(args map[string]string) int {
	dirs := []string{a.workDir()}
	if hint := args["project"]; hint != "" {
		project, err := NewProjectResolverAt(a.workDir()).Resolve(hint)
		if err != nil {
			return a.fail(err, nil)
		}
		dirs = append([]string{project.Dir}, dirs...)
	}

	config, err := LoadConfig(dirs...)
	if err != nil {
		return a.fail(err, nil)
	}
	diagnostics := a.diagnostics(config.DiagnosticLevel())

	outputDir := a.path(args["output"])
	if outputDir == "" {
		outputDir = a.path(config.Output.Dir)
	}

	removed, err := NewCleaner(config.Output.Extension).CleanGeneratedFiles([]string{outputDir})
	for _, path := range removed {
		diagnostics.Item("delete %s.", filepath.Base(path))
	}
	if err != nil {
		return a.fail(errors.WrapFileSystemError("clean", outputDir, err), config)
	}
	diagnostics.Success("Removed %d generated files", len(removed))
	return ExitSuccess
}

func (a *App) runCompile(args map[string]string) int {
	input := a.path(args["input"])
	if input == "" {
		fmt.Fprintln(a.Err, "missing --input")
		return command.UsageExitCode
	}

	output := a.path(args["output"])
	if output == "" {
		output = strings.TrimSuffix(input, loader.FormatYAML.Extension()) + loader.FormatMsgpack.Extension()
	}

	if err := CompileModule(input, output); err != nil {
		return a.fail(err, nil)
	}
	fmt.Fprintf(a.Out, "create %s.\n", filepath.Base(output))
	return ExitSuccess
}

// CompileModule converts a readable module into the binary format. The module
// must bind without failures.
func CompileModule(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewModuleNotFoundError(input)
		}
		return errors.WrapFileSystemError("read", input, err)
	}

	doc, err := loader.FormatYAML.Decode(data)
	if err != nil {
		return errors.WrapModuleFormatError(input, err)
	}

	module, err := loader.NewLoader(loader.FormatYAML).Bind(doc)
	if err != nil {
		return errors.WrapModuleFormatError(input, err)
	}
	if !module.Failures.IsEmpty() {
		return errors.WrapModuleFormatError(input, module.Failures)
	}

	encoded, err := loader.FormatMsgpack.Encode(doc)
	if err != nil {
		return errors.WrapModuleFormatError(output, err)
	}
	if err := os.WriteFile(output, encoded, 0644); err != nil {
		return errors.WrapFileSystemError("write", output, err)
	}
	return nil
}

// prepare resolves the project and loads its configuration. The project
// directory's configuration file wins over the working directory's.
func (a *App) prepare(hint string) (*Project, *Config, *utils.DiagnosticSystem, error) {
	project, err := NewProjectResolverAt(a.workDir()).Resolve(hint)
	if err != nil {
		return nil, nil, nil, err
	}

	config, err := LoadConfig(project.Dir, a.workDir())
	if err != nil {
		return nil, nil, nil, err
	}
	if config.Output.Dir != "" {
		config.Output.Dir = a.path(config.Output.Dir)
	}

	return project, config, a.diagnostics(config.DiagnosticLevel()), nil
}

// fail reports err and returns ExitFailure
func (a *App) fail(err error, config *Config) int {
	verbose := config != nil && config.IsVerbose()
	NewDiagnosticReporter(verbose, a.Err).ReportError(err)
	return ExitFailure
}

func (a *App) diagnostics(level utils.DiagnosticLevel) *utils.DiagnosticSystem {
	if a.Diagnostics != nil {
		return a.Diagnostics(level)
	}
	return utils.NewDiagnosticSystem(level)
}

func (a *App) ctx() context.Context {
	if a.Context == nil {
		return context.Background()
	}
	return a.Context
}

func (a *App) workDir() string {
	if a.WorkDir != "" {
		return a.WorkDir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// path resolves a relative command-line path against the working directory
func (a *App) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.workDir(), p)
}
