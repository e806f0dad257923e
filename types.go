package html2pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/sanitize"
)

// Default paths used when Input leaves them empty.
const (
	DefaultHTMLPath = "gpt.html"
	DefaultPDFPath  = "gpt.pdf"
)

// AssetDirSuffix is appended to the HTML file's stem to find its asset folder,
// matching what browsers write on "Save Page As".
const AssetDirSuffix = "_files"

// DefaultDomain is the CDN stripped when no domain is configured.
const DefaultDomain = sanitize.DefaultDomain

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = 0.4
)

// paperSize holds paper dimensions in inches.
type paperSize struct {
	width, height float64
}

var paperSizes = map[string]paperSize{
	PageSizeA4:     {width: 8.27, height: 11.69},
	PageSizeLetter: {width: 8.5, height: 11},
	PageSizeLegal:  {width: 8.5, height: 14},
}

// PageSettings configures the headless-browser print. The external binary
// uses its own defaults.
type PageSettings struct {
	Size   string  // "a4", "letter", "legal"
	Margin float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 with Chrome's default margin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:   PageSizeA4,
		Margin: DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// paper returns the paper dimensions, defaulting to A4.
func (p *PageSettings) paper() paperSize {
	if p == nil {
		return paperSizes[PageSizeA4]
	}
	if size, ok := paperSizes[strings.ToLower(p.Size)]; ok {
		return size
	}
	return paperSizes[PageSizeA4]
}

// margin returns the margin in inches, defaulting to DefaultMargin.
func (p *PageSettings) margin() float64 {
	if p == nil {
		return DefaultMargin
	}
	return p.Margin
}

// Input names the source page and the PDF to produce.
type Input struct {
	HTMLPath   string // saved page; empty = DefaultHTMLPath
	OutputPath string // PDF destination; empty = DefaultPDFPath
}

// paths returns the input and output paths with defaults applied.
func (in Input) paths() (htmlPath, outputPath string) {
	htmlPath, outputPath = in.HTMLPath, in.OutputPath
	if htmlPath == "" {
		htmlPath = DefaultHTMLPath
	}
	if outputPath == "" {
		outputPath = DefaultPDFPath
	}
	return htmlPath, outputPath
}

// Result describes a finished conversion.
type Result struct {
	OutputPath     string        // absolute path of the written PDF
	Engine         Engine        // backend that rendered it
	AssetsMirrored bool          // whether <stem>_files existed and was copied
	AssetFiles     int           // regular files copied from the asset dir
	CSSSanitized   int           // stylesheets rewritten in the copy
	Duration       time.Duration // wall time of the whole conversion
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine     Engine
	timeout    time.Duration
	domains    []string
	page       *PageSettings
	binary     string
	binaryArgs []string
	browserBin string
	noSandbox  bool
	logger     *log.Logger
}

// WithEngine selects the rendering backend.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithTimeout bounds a single render.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithDomains replaces the CDN domains stripped before rendering.
func WithDomains(domains ...string) Option {
	return func(c *Converter) {
		c.cfg.domains = append([]string(nil), domains...)
	}
}

// WithPage sets headless-browser page settings. nil keeps the defaults.
func WithPage(p *PageSettings) Option {
	return func(c *Converter) {
		if p != nil {
			c.cfg.page = p
		}
	}
}

// WithExternalBinary sets the converter binary (name on PATH or path) and
// extra arguments for the external-binary engine.
func WithExternalBinary(binary string, args ...string) Option {
	return func(c *Converter) {
		if binary != "" {
			c.cfg.binary = binary
		}
		c.cfg.binaryArgs = append([]string(nil), args...)
	}
}

// WithBrowserBin sets the Chrome binary for the headless-browser engine.
// Overrides ROD_BROWSER_BIN.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, needed in most containers.
func WithNoSandbox(disable bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = disable
	}
}

// WithLogger routes progress and diagnostics to l. Without it the converter
// is silent.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// discardLogger returns a logger that drops everything.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
