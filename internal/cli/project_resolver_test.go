package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/modelmeta/internal/errors"
)

func TestProjectResolverHint(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, "Blogging.csproj")
	writeFile(t, projectFile, "<Project />")

	t.Run("project file", func(t *testing.T) {
		project, err := NewProjectResolver().Resolve(projectFile)
		require.NoError(t, err)

		assert.Equal(t, projectFile, project.Path)
		assert.Equal(t, dir, project.Dir)
		assert.Equal(t, "Blogging", project.Name)
	})

	t.Run("project directory", func(t *testing.T) {
		project, err := NewProjectResolver().Resolve(dir)
		require.NoError(t, err)
		assert.Equal(t, projectFile, project.Path)
	})

	t.Run("relative to the working directory", func(t *testing.T) {
		project, err := NewProjectResolverAt(filepath.Dir(dir)).Resolve(filepath.Base(dir))
		require.NoError(t, err)
		assert.Equal(t, projectFile, project.Path)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := NewProjectResolver().Resolve(filepath.Join(dir, "missing"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.NoProjectErrorCode))
	})

	t.Run("directory without project", func(t *testing.T) {
		_, err := NewProjectResolver().Resolve(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.NoProjectErrorCode))
	})

	t.Run("directory with several projects", func(t *testing.T) {
		multi := t.TempDir()
		writeFile(t, filepath.Join(multi, "A.csproj"), "<Project />")
		writeFile(t, filepath.Join(multi, "B.fsproj"), "<Project />")

		_, err := NewProjectResolver().Resolve(multi)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.AmbiguousProjectErrorCode))

		var coded errors.CodedError
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, []string{filepath.Join(multi, "A.csproj"), filepath.Join(multi, "B.fsproj")}, coded.Context()["files"])
	})
}

func TestProjectResolverWalksUp(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, "Shop.csproj")
	writeFile(t, projectFile, "<Project />")

	nested := filepath.Join(dir, "Models", "Entities")
	require.NoError(t, os.MkdirAll(nested, 0755))

	project, err := NewProjectResolverAt(nested).Resolve("")
	require.NoError(t, err)
	assert.Equal(t, projectFile, project.Path)
	assert.Equal(t, "Shop", project.Name)
}

func TestProjectResolverIgnoresDirectoriesNamedLikeProjects(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Fake.csproj"), 0755))
	writeFile(t, filepath.Join(dir, "Real.csproj"), "<Project />")

	project, err := NewProjectResolverAt(dir).Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "Real", project.Name)
}

func TestProjectModuleDir(t *testing.T) {
	project := &Project{Dir: filepath.FromSlash("/src/Blogging")}

	relative := &Config{Module: ModuleConfig{Dir: "bin/Debug/net5.0"}}
	assert.Equal(t, filepath.Join(project.Dir, "bin", "Debug", "net5.0"), project.ModuleDir(relative))

	absoluteDir := t.TempDir()
	absolute := &Config{Module: ModuleConfig{Dir: absoluteDir}}
	assert.Equal(t, absoluteDir, project.ModuleDir(absolute))
}
