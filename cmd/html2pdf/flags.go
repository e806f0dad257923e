package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
)

// ErrUsage marks command-line mistakes (bad flags, too many arguments).
var ErrUsage = errors.New("invalid usage")

// maxPositionalArgs is HTML_PATH and PDF_PATH.
const maxPositionalArgs = 2

// commonFlags holds output-control flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// backendFlags holds flags that shape the rendering backends.
type backendFlags struct {
	engine      html2pdf.Engine
	timeout     string
	domains     []string
	wkhtmltopdf string
	browserBin  string
	noSandbox   bool
	pageSize    string
	margin      float64
}

// modeFlags select an alternative action instead of converting.
type modeFlags struct {
	doctor      bool
	json        bool
	printConfig bool
	version     bool
	help        bool
}

// cliFlags holds every parsed flag plus which ones were set explicitly.
type cliFlags struct {
	common  commonFlags
	backend backendFlags
	mode    modeFlags
	changed map[string]bool
}

// isSet reports whether the named flag appeared on the command line.
func (f *cliFlags) isSet(name string) bool {
	return f.changed[name]
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addBackendFlags adds backend flags to a FlagSet.
func addBackendFlags(fs *flag.FlagSet, f *backendFlags) {
	f.engine = html2pdf.DefaultEngine
	fs.Var(&f.engine, "engine", "rendering backend: headless-browser, external-binary")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 30s, 2m)")
	fs.StringSliceVar(&f.domains, "domain", nil, "CDN domain to strip (repeatable, replaces the default)")
	fs.StringVar(&f.wkhtmltopdf, "wkhtmltopdf", "", "wkhtmltopdf binary name or path")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium binary for headless-browser")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter, legal")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0-3.0)")
}

// addModeFlags adds the non-converting modes to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVar(&f.doctor, "doctor", false, "check the system and exit")
	fs.BoolVar(&f.json, "json", false, "with --doctor, print JSON")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the resolved config as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

// parseFlags parses args (including the program name) and returns the flags
// and positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{changed: make(map[string]bool)}

	fs := flag.NewFlagSet("html2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	addCommonFlags(fs, &f.common)
	addBackendFlags(fs, &f.backend)
	addModeFlags(fs, &f.mode)

	if len(args) > 0 {
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})

	positional := fs.Args()
	if len(positional) > maxPositionalArgs {
		return nil, nil, fmt.Errorf("%w: expected at most %d arguments (HTML_PATH PDF_PATH), got %d",
			ErrUsage, maxPositionalArgs, len(positional))
	}
	return f, positional, nil
}
