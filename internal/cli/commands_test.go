package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/modelmeta/internal/command"
	"github.com/toyz/modelmeta/internal/loader"
)

const expectedBlog = `using Microsoft.AspNetCore.Mvc;
using System;
using System.Collections.Generic;
using System.ComponentModel.DataAnnotations;

#nullable disable

namespace Blogging
{
    [ModelMetadataType(typeof(BlogMetadata))]
    public partial class Blog
    {
    }

    internal class BlogMetadata
    {
        // [Required]
        public int BlogId { get; set; }
        // [Required]
        public string Url { get; set; }
    }
}
`

func TestGenerateCommand(t *testing.T) {
	dir := setupProject(t)
	app, out, errOut := testApp(dir)

	code := app.Run([]string{"generate", "-o", "Generated"})
	require.Equal(t, ExitSuccess, code, errOut.String())

	blog, err := os.ReadFile(filepath.Join(dir, "Generated", "Blog.Partial.cs"))
	require.NoError(t, err)
	assert.Equal(t, expectedBlog, string(blog))

	post, err := os.ReadFile(filepath.Join(dir, "Generated", "Post.Partial.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(post), "        public int PostId { get; set; }\n")

	output := out.String()
	assert.Contains(t, output, "create Blog.Partial.cs.")
	assert.Contains(t, output, "create Post.Partial.cs.")
	assert.Less(t, strings.Index(output, "create Blog.Partial.cs."), strings.Index(output, "create Post.Partial.cs."))
	assert.Empty(t, errOut.String())
}

func TestGenerateCommandConfiguration(t *testing.T) {
	dir := setupProject(t)
	writeFile(t, filepath.Join(dir, ".modelmeta.yaml"), yamlProjectConfig+`output:
  dir: meta
  extension: .Meta.cs
  usings: [System]
  line_ending: crlf
`)
	app, _, errOut := testApp(dir)

	code := app.Run([]string{"generate", "--project", "Blogging.csproj", "--context", "Blogging.BloggingContext"})
	require.Equal(t, ExitSuccess, code, errOut.String())

	data, err := os.ReadFile(filepath.Join(dir, "meta", "Blog.Meta.cs"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "using System;\r\n\r\n#nullable disable\r\n"))
	assert.NotContains(t, strings.ReplaceAll(string(data), "\r\n", ""), "\n")
}

func TestGenerateCommandMarkup(t *testing.T) {
	dir := setupProject(t)
	writeFile(t, filepath.Join(dir, ".modelmeta.yaml"), yamlProjectConfig+`output:
  usings: [System]
  attribute: MetadataType
  marker: "[Display]"
`)
	app, _, errOut := testApp(dir)

	require.Equal(t, ExitSuccess, app.Run([]string{"generate"}), errOut.String())

	data, err := os.ReadFile(filepath.Join(dir, "Post.Partial.cs"))
	require.NoError(t, err)
	assert.Equal(t, `using System;

#nullable disable

namespace Blogging
{
    [MetadataType(typeof(PostMetadata))]
    public partial class Post
    {
    }

    internal class PostMetadata
    {
        [Display]
        public int PostId { get; set; }
    }
}
`, string(data))
}

func TestGenerateCommandSkipsFailedEntities(t *testing.T) {
	dir := setupProject(t)
	writeFile(t, filepath.Join(dir, "bin", "Blogging.tdm.yaml"), bloggingModule+
		"      - name: Author\n"+
		"        type: Vendor.Identity.User\n")
	app, out, errOut := testApp(dir)

	require.Equal(t, ExitSuccess, app.Run([]string{"generate"}), errOut.String())

	assert.Contains(t, out.String(), "Skipping Blogging.Post: type Blogging.Post could not be loaded")
	assert.Contains(t, out.String(), "create Blog.Partial.cs.")
	_, err := os.Stat(filepath.Join(dir, "Post.Partial.cs"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommandFailures(t *testing.T) {
	t.Run("unknown context", func(t *testing.T) {
		dir := setupProject(t)
		app, _, errOut := testApp(dir)

		code := app.Run([]string{"generate", "-c", "Blogging.Missing"})
		assert.Equal(t, ExitFailure, code)
		assert.Contains(t, errOut.String(), "Type: Context Type Not Found")
		assert.Contains(t, errOut.String(), "context type 'Blogging.Missing' not found")
	})

	t.Run("missing module", func(t *testing.T) {
		dir := setupProject(t)
		require.NoError(t, os.Remove(filepath.Join(dir, "bin", "Blogging.tdm.yaml")))
		app, _, errOut := testApp(dir)

		code := app.Run([]string{"generate"})
		assert.Equal(t, ExitFailure, code)
		assert.Contains(t, errOut.String(), "Type: Module Not Found")
		assert.Contains(t, errOut.String(), "Missing "+filepath.Join(dir, "bin", "Blogging.tdm.yaml"))
	})

	t.Run("no project", func(t *testing.T) {
		app, _, errOut := testApp(t.TempDir())

		code := app.Run([]string{"generate", "-p", "."})
		assert.Equal(t, ExitFailure, code)
		assert.Contains(t, errOut.String(), "Type: Project Not Found")
	})

	t.Run("invalid configuration", func(t *testing.T) {
		dir := setupProject(t)
		writeFile(t, filepath.Join(dir, ".modelmeta.yaml"), "module:\n  format: xml\n")
		app, _, errOut := testApp(dir)

		code := app.Run([]string{"generate"})
		assert.Equal(t, ExitFailure, code)
		assert.Contains(t, errOut.String(), "Type: Configuration Error")
	})

	t.Run("missing option value", func(t *testing.T) {
		dir := setupProject(t)
		app, out, _ := testApp(dir)

		code := app.Run([]string{"generate", "-o"})
		assert.Equal(t, command.UsageExitCode, code)
		assert.True(t, strings.HasPrefix(out.String(), "Usage: modelmeta generate [options] "))

		_, err := os.Stat(filepath.Join(dir, "Blog.Partial.cs"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestListCommand(t *testing.T) {
	dir := setupProject(t)
	app, out, errOut := testApp(dir)

	code := app.Run([]string{"list"})
	require.Equal(t, ExitSuccess, code, errOut.String())
	assert.Equal(t, "Blogging.BloggingContext\n", out.String())
}

func TestCleanCommand(t *testing.T) {
	dir := setupProject(t)
	app, _, errOut := testApp(dir)
	require.Equal(t, ExitSuccess, app.Run([]string{"generate"}), errOut.String())
	writeFile(t, filepath.Join(dir, "Blog.cs"), "public partial class Blog {}")

	app, out, errOut := testApp(dir)
	code := app.Run([]string{"clean"})
	require.Equal(t, ExitSuccess, code, errOut.String())

	assert.Contains(t, out.String(), "delete Blog.Partial.cs.")
	assert.Contains(t, out.String(), "delete Post.Partial.cs.")

	_, err := os.Stat(filepath.Join(dir, "Blog.Partial.cs"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "Blog.cs"))
	assert.NoError(t, err)
}

func TestCompileCommand(t *testing.T) {
	dir := setupProject(t)
	input := filepath.Join(dir, "bin", "Blogging.tdm.yaml")
	app, out, errOut := testApp(dir)

	code := app.Run([]string{"_compile", "-i", input})
	require.Equal(t, ExitSuccess, code, errOut.String())
	assert.Equal(t, "create Blogging.tdm.\n", out.String())

	// The binary module is what a default configuration reads
	module, err := loader.NewLoader(loader.FormatMsgpack).Load(filepath.Join(dir, "bin"), "Blogging")
	require.NoError(t, err)
	assert.Equal(t, "Blogging", module.Name)

	writeFile(t, filepath.Join(dir, ".modelmeta.yaml"), "module:\n  dir: bin\n")
	app, _, errOut = testApp(dir)
	require.Equal(t, ExitSuccess, app.Run([]string{"generate"}), errOut.String())

	blog, err := os.ReadFile(filepath.Join(dir, "Blog.Partial.cs"))
	require.NoError(t, err)
	assert.Equal(t, expectedBlog, string(blog))
}

func TestCompileCommandFailures(t *testing.T) {
	dir := setupProject(t)

	app, _, errOut := testApp(dir)
	assert.Equal(t, command.UsageExitCode, app.Run([]string{"_compile"}))
	assert.Equal(t, "missing --input\n", errOut.String())

	broken := filepath.Join(dir, "Broken.tdm.yaml")
	writeFile(t, broken, "format: v1.0.0\nname: Broken\ntypes:\n  - name: Broken.Thing\n    properties:\n      - name: Owner\n        type: Broken.Missing\n")
	app, _, errOut = testApp(dir)
	assert.Equal(t, ExitFailure, app.Run([]string{"_compile", "-i", broken}))
	assert.Contains(t, errOut.String(), "Type: Invalid Module")
}

func TestVersionAndUsage(t *testing.T) {
	app, out, _ := testApp(t.TempDir())
	assert.Equal(t, ExitSuccess, app.Run([]string{"_version"}))
	assert.Equal(t, "modelmeta test\n", out.String())

	app, out, _ = testApp(t.TempDir())
	assert.Equal(t, command.UsageExitCode, app.Run(nil))
	usage := out.String()
	assert.Contains(t, usage, "generate")
	assert.Contains(t, usage, "list")
	assert.Contains(t, usage, "clean")
	assert.NotContains(t, usage, "_compile")
	assert.NotContains(t, usage, "_version")
}
