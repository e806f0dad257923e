package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf [HTML_PATH] [PDF_PATH] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a saved web page (HTML file + <name>_files folder) to PDF,")
	fmt.Fprintln(w, "stripping references to CDN domains first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  HTML_PATH    Saved page (default: gpt.html)")
	fmt.Fprintln(w, "  PDF_PATH     Output PDF (default: gpt.pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>          headless-browser (default) or external-binary")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout (default: 60s)")
	fmt.Fprintln(w, "      --domain <s>          CDN domain to strip, repeatable (default: cdn.oaistatic.com)")
	fmt.Fprintln(w, "      --wkhtmltopdf <path>  wkhtmltopdf binary for external-binary")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome binary for headless-browser")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox (containers, CI)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --print-config        Print the resolved config as YAML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnostics:")
	fmt.Fprintln(w, "      --doctor              Check Chrome, wkhtmltopdf and the environment")
	fmt.Fprintln(w, "      --json                JSON output for --doctor")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PDF_CONFIG, HTML2PDF_ENGINE, HTML2PDF_TIMEOUT, HTML2PDF_DOMAINS,")
	fmt.Fprintln(w, "  HTML2PDF_WKHTMLTOPDF, HTML2PDF_PAGE_SIZE, ROD_BROWSER_BIN, ROD_NO_SANDBOX")
	fmt.Fprintln(w, "  Flags override environment, which overrides the config file.")
}
