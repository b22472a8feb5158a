package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/modelmeta/internal/errors"
)

// ProjectPattern matches project files such as Blogging.csproj
const ProjectPattern = "*.*proj"

// Project is a resolved project file
type Project struct {
	Path string // project file
	Dir  string // directory holding the project file
	Name string // project file name without extension, also the module base name
}

// ModuleDir returns the directory the build leaves the type-descriptor module in
func (p *Project) ModuleDir(config *Config) string {
	if filepath.IsAbs(config.Module.Dir) {
		return config.Module.Dir
	}
	return filepath.Join(p.Dir, filepath.FromSlash(config.Module.Dir))
}

// ProjectResolver finds the project a command operates on
type ProjectResolver struct {
	workDir string
}

// NewProjectResolver creates a resolver that searches from the working directory
func NewProjectResolver() *ProjectResolver {
	return &ProjectResolver{}
}

// NewProjectResolverAt creates a resolver that searches from dir
func NewProjectResolverAt(dir string) *ProjectResolver {
	return &ProjectResolver{workDir: dir}
}

// Resolve finds the project. A hint may name a project file or the directory
// holding it. Without a hint the search walks up from the working directory
// to the first directory holding a project file.
func (r *ProjectResolver) Resolve(hint string) (*Project, error) {
	if hint != "" {
		return r.resolveHint(hint)
	}

	startDir, err := r.startDir()
	if err != nil {
		return nil, err
	}

	currentDir := startDir
	for {
		files, err := findProjectFiles(currentDir)
		if err != nil {
			return nil, err
		}
		if len(files) == 1 {
			return newProject(files[0])
		}
		if len(files) > 1 {
			return nil, errors.NewAmbiguousProjectError(currentDir, files)
		}

		// Move to parent directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return nil, errors.NewNoProjectError(startDir)
}

// resolveHint resolves an explicit project file or directory
func (r *ProjectResolver) resolveHint(hint string) (*Project, error) {
	path := hint
	if !filepath.IsAbs(path) && r.workDir != "" {
		path = filepath.Join(r.workDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNoProjectError(hint)
		}
		return nil, errors.WrapFileSystemError("stat", path, err)
	}

	if !info.IsDir() {
		return newProject(path)
	}

	files, err := findProjectFiles(path)
	if err != nil {
		return nil, err
	}
	switch len(files) {
	case 0:
		return nil, errors.NewNoProjectError(path)
	case 1:
		return newProject(files[0])
	default:
		return nil, errors.NewAmbiguousProjectError(path, files)
	}
}

func (r *ProjectResolver) startDir() (string, error) {
	if r.workDir != "" {
		return filepath.Abs(r.workDir)
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return currentDir, nil
}

// findProjectFiles lists the project files directly inside dir
func findProjectFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, ProjectPattern))
	if err != nil {
		return nil, errors.WrapFileSystemError("search", dir, err)
	}

	var files []string
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && !info.IsDir() {
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}

func newProject(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", path, err)
	}
	base := filepath.Base(abs)
	return &Project{
		Path: abs,
		Dir:  filepath.Dir(abs),
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}, nil
}
