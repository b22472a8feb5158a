package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/modelmeta/internal/utils"
)

const bloggingModule = "format: v1.0.0\n" +
	"name: Blogging\n" +
	"mvid: 6f9619ff-8b86-d011-b42d-00c04fc964ff\n" +
	"references:\n" +
	"  - name: Microsoft.EntityFrameworkCore.DbContext\n" +
	"  - name: Microsoft.EntityFrameworkCore.DbSet`1\n" +
	"types:\n" +
	"  - name: Blogging.BloggingContext\n" +
	"    base: Microsoft.EntityFrameworkCore.DbContext\n" +
	"    public: true\n" +
	"    properties:\n" +
	"      - name: Blogs\n" +
	"        type: Microsoft.EntityFrameworkCore.DbSet`1[Blogging.Blog]\n" +
	"      - name: Posts\n" +
	"        type: Microsoft.EntityFrameworkCore.DbSet`1[Blogging.Post]\n" +
	"  - name: Blogging.Blog\n" +
	"    public: true\n" +
	"    properties:\n" +
	"      - name: BlogId\n" +
	"        type: System.Int32\n" +
	"      - name: Url\n" +
	"        type: System.String\n" +
	"      - name: Posts\n" +
	"        type: System.Collections.Generic.List`1[Blogging.Post]\n" +
	"        virtual: true\n" +
	"  - name: Blogging.Post\n" +
	"    public: true\n" +
	"    properties:\n" +
	"      - name: PostId\n" +
	"        type: System.Int32\n"

const yamlProjectConfig = "module:\n  format: yaml\n  dir: bin\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupProject creates a Blogging project whose readable module is already built
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Blogging.csproj"), "<Project Sdk=\"Microsoft.NET.Sdk\" />\n")
	writeFile(t, filepath.Join(dir, ".modelmeta.yaml"), yamlProjectConfig)
	writeFile(t, filepath.Join(dir, "bin", "Blogging.tdm.yaml"), bloggingModule)
	return dir
}

// testApp returns an app rooted at dir that writes everything to buffers
func testApp(dir string) (*App, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	app := &App{
		Name:    "modelmeta",
		Version: "test",
		Out:     &out,
		Err:     &errOut,
		WorkDir: dir,
		Diagnostics: func(level utils.DiagnosticLevel) *utils.DiagnosticSystem {
			return utils.NewDiagnosticSystemWithWriters(level, &out, &errOut)
		},
	}
	return app, &out, &errOut
}
