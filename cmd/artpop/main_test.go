package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site creates a throwaway site root and makes it the working directory
func site(t *testing.T, doc string, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	if doc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "art.html"), []byte(doc), 0644))
	}
	for _, f := range files {
		full := filepath.Join(dir, "images", "portfolio", f)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("img"), 0644))
	}
	chdir(t, dir)
	return dir
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_EndToEnd(t *testing.T) {
	dir := site(t, "<html><body><main>\n<p>hi</p></main></body></html>\n", "2020/x.png")

	code, stdout, stderr := runCLI()
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Updated art.html (with content).\n", stdout)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "art.html"))
	require.NoError(t, err)
	doc := string(data)

	want := "<main>\n<!-- BEGIN AUTO-GENERATED ART -->\n" +
		"\t\t\t\t<h2>2020</h2>\n" +
		"\t\t\t\t<ul style=\"list-style-type: none; padding: 0;\">\n" +
		"\t\t\t\t\t<li><a href=\"images/portfolio/2020/x.png\">x.png</a></li>\n" +
		"\t\t\t\t</ul>\n" +
		"<!-- END AUTO-GENERATED ART -->\n"
	assert.Contains(t, doc, want)
	assert.Equal(t, 1, strings.Count(doc, "<li>"))

	backup, err := os.ReadFile(filepath.Join(dir, "art.html.bak"))
	require.NoError(t, err)
	assert.Equal(t, "<html><body><main>\n<p>hi</p></main></body></html>\n", string(backup))
}

func TestRun_NoContent(t *testing.T) {
	site(t, "<main></main>")

	code, stdout, _ := runCLI()
	assert.Equal(t, 0, code)
	assert.Equal(t, "Updated art.html (no content).\n", stdout)
}

func TestRun_MissingDocument(t *testing.T) {
	site(t, "", "2020/x.png")

	code, stdout, stderr := runCLI()
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: art.html: not found\n", stderr)
}

func TestRun_MissingAnchor(t *testing.T) {
	original := "<html><body><section>no anchor</section></body></html>"
	dir := site(t, original, "2020/x.png")

	code, stdout, stderr := runCLI()
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "<main>")

	data, err := os.ReadFile(filepath.Join(dir, "art.html"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	_, err = os.Stat(filepath.Join(dir, "art.html.bak"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_DryRunFlag(t *testing.T) {
	dir := site(t, "<main></main>", "2020/x.png")

	code, stdout, _ := runCLI("--dry-run")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Would update art.html (with content).\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, "art.html"))
	require.NoError(t, err)
	assert.Equal(t, "<main></main>", string(data))
}

func TestRun_ConfigFile(t *testing.T) {
	dir := site(t, "", "2020/x.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery.html"), []byte("<main></main>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "artpop.toml"), []byte("[site]\ndocument = \"gallery.html\"\n"), 0644))

	code, stdout, stderr := runCLI()
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Updated gallery.html (with content).\n", stdout)

	_, err := os.Stat(filepath.Join(dir, "gallery.html.bak"))
	assert.NoError(t, err)
}

func TestCheckCmd(t *testing.T) {
	site(t, "<main></main>", "2020/x.png")

	code, stdout, stderr := runCLI("check")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "+ 2020/x.png")
	assert.Contains(t, stderr, "out of date")

	code, _, _ = runCLI()
	require.Equal(t, 0, code)

	code, stdout, _ = runCLI("check")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "art.html is up to date (1 files)")
}

func TestCheckCmd_HrefPrefixChange(t *testing.T) {
	dir := site(t, "<main></main>", "2020/x.png")

	code, _, stderr := runCLI()
	require.Equal(t, 0, code, stderr)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "artpop.toml"), []byte("[site]\nhref_prefix = \"/media/\"\n"), 0644))

	code, stdout, stderr := runCLI("check")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "+ 2020/x.png  /media/2020/x.png")
	assert.Contains(t, stdout, "- 2020/x.png  images/portfolio/2020/x.png")
	assert.Contains(t, stderr, "1 missing, 1 extra")
}

func TestRun_ExtensionsFromConfig(t *testing.T) {
	dir := site(t, "<main></main>", "2020/a.jpg", "2020/b.tiff", "2020/c.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "artpop.toml"), []byte("[site]\nextensions = [\"tiff\"]\n"), 0644))

	code, _, stderr := runCLI()
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "art.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "b.tiff")
	assert.NotContains(t, string(data), "a.jpg")
	assert.NotContains(t, string(data), "c.png")
}

func TestListCmd(t *testing.T) {
	site(t, "<main></main>", "10/b.jpg", "2/a.jpg", "2/c.png", "3/notes.txt")

	code, stdout, _ := runCLI("list")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "3 files in 2 years")
	assert.Less(t, strings.Index(stdout, "\n2 "), strings.Index(stdout, "\n10 "))
	assert.NotContains(t, stdout, "\n3  ")

	code, stdout, _ = runCLI("list", "--files", "--all")
	require.Equal(t, 0, code)
	assert.Equal(t, "YEARS\n===========\n2\n  a.jpg\n  c.png\n3\n10\n  b.jpg\n", stdout)
}

func TestConfigShow(t *testing.T) {
	site(t, "")

	code, stdout, _ := runCLI("config", "show")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `document = "art.html"`)
	assert.Contains(t, stdout, `backup_suffix = ".bak"`)
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := runCLI("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "artpop dev\n", stdout)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
