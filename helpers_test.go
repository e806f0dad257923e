package html2pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// testDomain is the CDN stripped by the fixtures below.
const testDomain = "cdn.example-cdn.test"

// Fixture content for a page saved as "gpt.html" + "gpt_files/".
const (
	fixtureHTML = `<!DOCTYPE html>
<html>
<head>
<script src="https://cdn.example-cdn.test/assets/app.js" defer></script>
<link rel="stylesheet" href="https://cdn.example-cdn.test/assets/site.css">
<link rel="stylesheet" href="gpt_files/style.css">
</head>
<body>
<img src="gpt_files/logo.png" alt="logo">
<p>Hello from the saved page</p>
<a href="https://cdn.example-cdn.test/download/file.zip">download</a>
</body>
</html>
`
	fixtureStyleCSS = `@font-face {
  font-family: "Söhne";
  src: url(https://cdn.example-cdn.test/fonts/soehne.woff2) format("woff2");
}
body { color: #222; background: url(https://cdn.example-cdn.test/bg.png); }
`
	fixturePlainCSS = "p { margin: 0 }\n"
)

var fixtureLogo = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0xff, 0xfe}

// savedPage describes a fixture written by writeSavedPage.
type savedPage struct {
	dir      string
	htmlPath string
	assetDir string
}

// writeSavedPage writes gpt.html and gpt_files/ into a fresh temp directory.
func writeSavedPage(t *testing.T, withAssets bool) savedPage {
	t.Helper()

	dir := t.TempDir()
	page := savedPage{
		dir:      dir,
		htmlPath: filepath.Join(dir, "gpt.html"),
		assetDir: filepath.Join(dir, "gpt_files"),
	}
	mustWrite(t, page.htmlPath, []byte(fixtureHTML))

	if withAssets {
		mustWrite(t, filepath.Join(page.assetDir, "style.css"), []byte(fixtureStyleCSS))
		mustWrite(t, filepath.Join(page.assetDir, "plain.css"), []byte(fixturePlainCSS))
		mustWrite(t, filepath.Join(page.assetDir, "img", "logo.png"), fixtureLogo)
	}
	return page
}

func mustWrite(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// isolateTempDir points os.TempDir at a fresh directory so tests can assert
// nothing was left behind. Not compatible with t.Parallel.
func isolateTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	t.Setenv("TMP", dir)
	t.Setenv("TEMP", dir)
	return dir
}

// ---------------------------------------------------------------------------
// Mock renderer
// ---------------------------------------------------------------------------

// mockRenderer records what it was asked to render and what the workspace
// looked like at that moment.
type mockRenderer struct {
	engine    Engine
	checkErr  error
	renderErr error
	block     bool // wait for ctx to end instead of writing
	panicMsg  string

	checked     bool
	called      bool
	htmlPath    string
	outputPath  string
	html        string
	styleCSS    string
	hasDeadline bool
}

func (m *mockRenderer) Engine() Engine {
	if m.engine == "" {
		return EngineHeadlessBrowser
	}
	return m.engine
}

func (m *mockRenderer) Check() error {
	m.checked = true
	return m.checkErr
}

func (m *mockRenderer) Render(ctx context.Context, htmlPath, outputPath string) error {
	m.called = true
	m.htmlPath = htmlPath
	m.outputPath = outputPath
	_, m.hasDeadline = ctx.Deadline()

	if data, err := os.ReadFile(htmlPath); err == nil {
		m.html = string(data)
	}
	if data, err := os.ReadFile(filepath.Join(filepath.Dir(htmlPath), "gpt_files", "style.css")); err == nil {
		m.styleCSS = string(data)
	}

	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if m.renderErr != nil {
		return m.renderErr
	}
	return os.WriteFile(outputPath, []byte("%PDF-1.4 mock"), 0o644)
}

// withRenderer injects a renderer, bypassing backend selection.
func withRenderer(r renderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}
