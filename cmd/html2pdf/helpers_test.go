package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testDomain is the CDN stripped by the fixtures below.
const testDomain = "cdn.example-cdn.test"

const (
	fixtureHTML = `<!DOCTYPE html>
<html><head>
<script src="https://cdn.example-cdn.test/assets/app.js"></script>
<link rel="stylesheet" href="https://cdn.example-cdn.test/assets/site.css">
<link rel="stylesheet" href="gpt_files/style.css">
</head><body><p>Hello</p></body></html>
`
	fixtureStyleCSS = `@font-face { font-family: "Söhne"; src: url(https://cdn.example-cdn.test/f.woff2); }
body { color: #222; }
`
)

// writeSavedPage writes gpt.html and gpt_files/style.css into a temp dir and
// returns the directory.
func writeSavedPage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "gpt.html"), fixtureHTML, 0o644)
	mustWrite(t, filepath.Join(dir, "gpt_files", "style.css"), fixtureStyleCSS, 0o644)
	return dir
}

func mustWrite(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// testEnv returns an Environment writing into buffers, with lookups that find
// nothing unless overridden.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout:     &stdout,
		Stderr:     &stderr,
		LookPath:   func(string) (string, error) { return "", os.ErrNotExist },
		LookChrome: func() (string, bool) { return "", false },
	}
	return env, &stdout, &stderr
}
