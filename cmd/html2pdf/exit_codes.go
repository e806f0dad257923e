package main

import (
	"errors"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Exit codes for the html2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // HTML not found, output directory, permission denied
	ExitBackend = 4 // wkhtmltopdf or browser missing or failing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Backend errors (exit 4)
	if errors.Is(err, html2pdf.ErrBackendUnavailable) ||
		errors.Is(err, html2pdf.ErrBackendFailed) ||
		errors.Is(err, html2pdf.ErrBrowserConnect) ||
		errors.Is(err, html2pdf.ErrPageCreate) ||
		errors.Is(err, html2pdf.ErrPageLoad) ||
		errors.Is(err, html2pdf.ErrPDFGeneration) ||
		errors.Is(err, html2pdf.ErrWritePDF) {
		return ExitBackend
	}

	// I/O errors (exit 3)
	if errors.Is(err, html2pdf.ErrHTMLNotFound) ||
		errors.Is(err, html2pdf.ErrOutputDir) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2pdf.ErrInvalidEngine) ||
		errors.Is(err, html2pdf.ErrInvalidPageSize) ||
		errors.Is(err, html2pdf.ErrInvalidMargin) ||
		errors.Is(err, html2pdf.ErrInvalidDomains) {
		return ExitUsage
	}

	return ExitGeneral
}
