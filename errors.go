package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Input and output errors.
	ErrHTMLNotFound = errors.New("HTML file not found")
	ErrOutputDir    = errors.New("failed to create output directory")
	ErrWorkspace    = errors.New("failed to prepare sanitized workspace")

	// Backend errors.
	ErrBackendUnavailable = errors.New("PDF backend not available")
	ErrBackendFailed      = errors.New("PDF backend failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrWritePDF           = errors.New("failed to write PDF file")

	// Option validation errors.
	ErrInvalidEngine   = errors.New("invalid engine")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrInvalidDomains  = errors.New("invalid sanitize domains")
)
