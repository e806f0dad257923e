package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	html2pdf "github.com/alnah/go-html2pdf"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status      string          `json:"status"` // "ready", "warnings", "errors"
	Chrome      chromeInfo      `json:"chrome"`
	Wkhtmltopdf wkhtmltopdfInfo `json:"wkhtmltopdf"`
	Env         envInfo         `json:"environment"`
	System      systemInfo      `json:"system"`
	Warnings    []string        `json:"warnings,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// wkhtmltopdfInfo holds the external-binary backend lookup.
type wkhtmltopdfInfo struct {
	Binary string `json:"binary"`
	Found  bool   `json:"found"`
	Path   string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// doctorBinary picks the wkhtmltopdf binary to look up: flag, env, default.
func doctorBinary(flags *cliFlags) string {
	if flags.isSet("wkhtmltopdf") && flags.backend.wkhtmltopdf != "" {
		return flags.backend.wkhtmltopdf
	}
	if v := os.Getenv("HTML2PDF_WKHTMLTOPDF"); v != "" {
		return v
	}
	return html2pdf.DefaultBinary
}

// runDoctorCmd runs the checks, prints them and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(jsonOutput bool, binary string, env *Environment) int {
	result := runDoctor(binary, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(binary string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, env.LookChrome)
	checkWkhtmltopdf(result, binary, env.LookPath)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkChrome detects Chrome/Chromium for the headless-browser engine.
func checkChrome(result *doctorResult, lookChrome func() (string, bool)) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = lookChrome()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from launcher lookup or user env
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkWkhtmltopdf resolves the external-binary backend on PATH.
func checkWkhtmltopdf(result *doctorResult, binary string, lookPath func(string) (string, error)) {
	result.Wkhtmltopdf.Binary = binary

	path, err := lookPath(binary)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not found on PATH; --engine external-binary will fail", binary))
		return
	}
	result.Wkhtmltopdf.Found = true
	result.Wkhtmltopdf.Path = path
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 or pass --no-sandbox")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("HTML2PDF_CONTAINER") == "1" {
		return true, "HTML2PDF_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for workspaces is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	result.System.TempDir = tmpDir

	probe, err := os.MkdirTemp(tmpDir, "html2pdf-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	defer os.RemoveAll(probe)

	if err := os.WriteFile(filepath.Join(probe, "probe"), []byte("ok"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	result.System.TempWritable = true
}

// doctorStyles colors status tags. The renderer is bound to the output
// writer, so pipes and buffers get plain text.
type doctorStyles struct {
	title, ok, warn, err lipgloss.Style
}

func newDoctorStyles(w io.Writer) doctorStyles {
	r := lipgloss.NewRenderer(w)
	return doctorStyles{
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("35")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("220")),
		err:   r.NewStyle().Foreground(lipgloss.Color("167")),
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	st := newDoctorStyles(w)
	ok, warn, fail := st.ok.Render("[OK]"), st.warn.Render("[WARN]"), st.err.Render("[ERROR]")
	section := func(name string) { fmt.Fprintln(w, st.title.Render(name)) }

	section("html2pdf doctor")
	fmt.Fprintln(w)

	section("Chrome/Chromium (headless-browser)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintf(w, "  %s Sandbox: enabled\n", ok)
		} else {
			fmt.Fprintf(w, "  %s Sandbox: disabled (ROD_NO_SANDBOX=1)\n", ok)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found\n", fail)
	}
	fmt.Fprintln(w)

	section("wkhtmltopdf (external-binary)")
	if r.Wkhtmltopdf.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Wkhtmltopdf.Path)
	} else {
		fmt.Fprintf(w, "  %s %s not found on PATH\n", warn, r.Wkhtmltopdf.Binary)
	}
	fmt.Fprintln(w)

	section("Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	fmt.Fprintln(w)

	section("System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable (%s)\n", ok, r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable (%s)\n", fail, r.System.TempDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		section("Warnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		section("Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", fail, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
