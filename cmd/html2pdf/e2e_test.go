//go:build !windows

package main

// Notes:
// - These tests drive runMain end to end with a shell script standing in for
//   wkhtmltopdf. The script records the page it was handed so we can check the
//   sanitized copy, then writes a stub PDF.
// - They modify PATH and HTML2PDF_* variables and therefore run serially.
// - Headless Chrome is exercised by the library's integration tests only.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fakeWkhtmltopdf = `#!/bin/sh
# args: --enable-local-file-access HTML PDF
echo "$2" > "$FAKE_WK_DIR/input-path"
if [ -n "$FAKE_WK_FAIL" ]; then
	echo "Loading pages (1/6)" >&2
	echo "Exit with code 1 due to network error: HostNotFoundError" >&2
	exit 1
fi
cp "$2" "$FAKE_WK_DIR/seen.html"
cp "$(dirname "$2")/gpt_files/style.css" "$FAKE_WK_DIR/seen.css" 2>/dev/null
printf '%%PDF-1.4 fake\n' > "$3"
`

// installFakeWkhtmltopdf puts a fake wkhtmltopdf first on PATH and returns
// the directory where it records what it saw.
func installFakeWkhtmltopdf(t *testing.T) string {
	t.Helper()
	binDir := t.TempDir()
	mustWrite(t, filepath.Join(binDir, "wkhtmltopdf"), fakeWkhtmltopdf, 0o755)

	seen := t.TempDir()
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("FAKE_WK_DIR", seen)
	t.Setenv("FAKE_WK_FAIL", "")
	clearEnvConfig(t)
	return seen
}

func clearEnvConfig(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
}

func readSeen(t *testing.T, seen, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(seen, name))
	if err != nil {
		t.Fatalf("fake wkhtmltopdf did not record %s: %v", name, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestE2E_ExternalBinary - Successful conversion
// ---------------------------------------------------------------------------

func TestE2E_ExternalBinary(t *testing.T) {
	seen := installFakeWkhtmltopdf(t)
	page := writeSavedPage(t)
	out := filepath.Join(t.TempDir(), "nested", "out.pdf")

	env, stdout, stderr := testEnv()
	code := runMain([]string{
		"html2pdf", "--engine", "external-binary", "--domain", testDomain,
		filepath.Join(page, "gpt.html"), out,
	}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0\nstderr: %s", code, stderr.String())
	}

	pdf, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF-") {
		t.Errorf("PDF = %q, want %%PDF- prefix", pdf)
	}
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("stdout = %q, want Created message", stdout.String())
	}

	html := readSeen(t, seen, "seen.html")
	if strings.Contains(html, testDomain) {
		t.Errorf("renderer saw unsanitized HTML:\n%s", html)
	}
	if !strings.Contains(html, `href="gpt_files/style.css"`) {
		t.Errorf("local stylesheet link was dropped:\n%s", html)
	}
	css := readSeen(t, seen, "seen.css")
	if strings.Contains(css, testDomain) {
		t.Errorf("renderer saw unsanitized CSS:\n%s", css)
	}
	if !strings.Contains(css, "color: #222") {
		t.Errorf("unrelated CSS rule was dropped:\n%s", css)
	}

	// Source files are never modified.
	if got, _ := os.ReadFile(filepath.Join(page, "gpt.html")); string(got) != fixtureHTML {
		t.Error("source HTML was modified")
	}
	if got, _ := os.ReadFile(filepath.Join(page, "gpt_files", "style.css")); string(got) != fixtureStyleCSS {
		t.Error("source CSS was modified")
	}

	// The workspace is removed after the run.
	workspaceHTML := strings.TrimSpace(readSeen(t, seen, "input-path"))
	if _, err := os.Stat(filepath.Dir(workspaceHTML)); !os.IsNotExist(err) {
		t.Errorf("workspace %s still exists", filepath.Dir(workspaceHTML))
	}
}

func TestE2E_DefaultPaths(t *testing.T) {
	installFakeWkhtmltopdf(t)
	page := writeSavedPage(t)
	t.Chdir(page)

	env, _, stderr := testEnv()
	code := runMain([]string{"html2pdf", "-q", "--engine", "external-binary"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0\nstderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(page, "gpt.pdf")); err != nil {
		t.Errorf("gpt.pdf not created in working directory: %v", err)
	}
}

func TestE2E_EnvOverrides(t *testing.T) {
	seen := installFakeWkhtmltopdf(t)
	t.Setenv("HTML2PDF_ENGINE", "external-binary")
	t.Setenv("HTML2PDF_DOMAINS", "other.example.test, "+testDomain)
	page := writeSavedPage(t)
	out := filepath.Join(t.TempDir(), "env.pdf")

	env, _, stderr := testEnv()
	code := runMain([]string{"html2pdf", filepath.Join(page, "gpt.html"), out}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0\nstderr: %s", code, stderr.String())
	}
	if html := readSeen(t, seen, "seen.html"); strings.Contains(html, testDomain) {
		t.Errorf("HTML2PDF_DOMAINS not applied:\n%s", html)
	}
}

func TestE2E_FlagBeatsEnv(t *testing.T) {
	installFakeWkhtmltopdf(t)
	t.Setenv("HTML2PDF_ENGINE", "external-binary")
	t.Setenv("HTML2PDF_WKHTMLTOPDF", filepath.Join(t.TempDir(), "missing-wk"))
	page := writeSavedPage(t)

	env, _, stderr := testEnv()
	code := runMain([]string{
		"html2pdf", "--wkhtmltopdf", "wkhtmltopdf",
		filepath.Join(page, "gpt.html"), filepath.Join(t.TempDir(), "flag.pdf"),
	}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (flag should override env)\nstderr: %s", code, stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestE2E_Failures - Backend missing or failing
// ---------------------------------------------------------------------------

func TestE2E_BackendMissing(t *testing.T) {
	clearEnvConfig(t)
	t.Setenv("PATH", t.TempDir())
	page := writeSavedPage(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	env, _, stderr := testEnv()
	code := runMain([]string{"html2pdf", "--engine", "external-binary", filepath.Join(page, "gpt.html"), out}, env)
	if code != ExitBackend {
		t.Errorf("runMain() = %d, want %d", code, ExitBackend)
	}
	if !strings.Contains(stderr.String(), "PDF backend not available") {
		t.Errorf("stderr = %q, want backend not available", stderr.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("PDF written despite missing backend")
	}
}

func TestE2E_BackendFails(t *testing.T) {
	seen := installFakeWkhtmltopdf(t)
	t.Setenv("FAKE_WK_FAIL", "1")
	page := writeSavedPage(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	env, _, stderr := testEnv()
	code := runMain([]string{"html2pdf", "--engine", "external-binary", filepath.Join(page, "gpt.html"), out}, env)
	if code != ExitBackend {
		t.Errorf("runMain() = %d, want %d", code, ExitBackend)
	}
	for _, want := range []string{"PDF backend failed", "HostNotFoundError"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr should contain %q, got %q", want, stderr.String())
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("PDF written despite backend failure")
	}

	workspaceHTML := strings.TrimSpace(readSeen(t, seen, "input-path"))
	if _, err := os.Stat(filepath.Dir(workspaceHTML)); !os.IsNotExist(err) {
		t.Errorf("workspace %s not removed after failure", filepath.Dir(workspaceHTML))
	}
}
