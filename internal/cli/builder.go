package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/kballard/go-shellquote"

	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/utils"
)

// ProjectPlaceholder expands to the project file path in the build command
const ProjectPlaceholder = "{project}"

// Builder runs the build command that emits a project's type-descriptor module
type Builder struct {
	command     string
	diagnostics *utils.DiagnosticSystem
}

// NewBuilder creates a builder for a shell-style command line
func NewBuilder(command string, diagnostics *utils.DiagnosticSystem) *Builder {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Builder{
		command:     command,
		diagnostics: diagnostics,
	}
}

// Enabled reports whether a build command is configured
func (b *Builder) Enabled() bool {
	return strings.TrimSpace(b.command) != ""
}

// Args splits the command line and expands the project placeholder in every argument
func (b *Builder) Args(project *Project) ([]string, error) {
	args, err := shellquote.Split(b.command)
	if err != nil {
		return nil, fmt.Errorf("invalid build command %q: %w", b.command, err)
	}
	for i, arg := range args {
		args[i] = strings.ReplaceAll(arg, ProjectPlaceholder, project.Path)
	}
	return args, nil
}

// Build runs the build command in the project directory. Output is streamed
// in verbose mode and otherwise kept for the error report.
func (b *Builder) Build(ctx context.Context, project *Project) error {
	if !b.Enabled() {
		b.diagnostics.Verbose("No build command configured, using the existing module")
		return nil
	}

	args, err := b.Args(project)
	if err != nil {
		return errors.WrapBuildError(project.Path, err)
	}
	b.diagnostics.Verbose("Running %s", shellquote.Join(args...))

	captured := &syncBuffer{}
	var stdout, stderr io.Writer = captured, captured
	if b.diagnostics.Level() >= utils.DiagnosticVerbose {
		stdout = io.MultiWriter(captured, b.diagnostics.Output())
		stderr = io.MultiWriter(captured, b.diagnostics.ErrorOutput())
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = project.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		buildErr := errors.WrapBuildError(project.Path, err).
			WithContext("command", shellquote.Join(args...))
		if output := strings.TrimSpace(captured.String()); output != "" {
			buildErr = buildErr.WithContext("output", output)
		}
		if ctx.Err() != nil {
			return buildErr.WithSuggestion("The build was interrupted")
		}
		return buildErr.WithSuggestion("Run the build command by hand to see the full output")
	}
	return nil
}

// syncBuffer collects build output written from the stdout and stderr pipes
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
