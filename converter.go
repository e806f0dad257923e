package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/sanitize"
)

// dirPermissions for output directories created on demand.
const dirPermissions = 0o750

// Converter sanitizes a saved web page and renders it to PDF.
// Create with NewConverter and call Convert once per page.
// A Converter holds no browser or process between calls and is safe for
// concurrent use.
type Converter struct {
	cfg       converterConfig
	sanitizer *sanitize.Sanitizer
	renderer  renderer
	logger    *log.Logger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithTimeout, WithDomains).
// Returns an error if the engine, page settings or domains are invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			engine:  DefaultEngine,
			timeout: defaultTimeout,
			domains: []string{DefaultDomain},
			page:    DefaultPageSettings(),
			binary:  DefaultBinary,
			logger:  discardLogger(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.engine.Validate(); err != nil {
		return nil, err
	}
	if err := c.cfg.page.Validate(); err != nil {
		return nil, err
	}

	s, err := sanitize.New(c.cfg.domains...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomains, err)
	}
	c.sanitizer = s
	c.logger = c.cfg.logger

	// Create renderer if not injected (e.g., by tests)
	if c.renderer == nil {
		c.renderer, err = newRenderer(c.cfg)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Engine reports the backend this converter renders with.
func (c *Converter) Engine() Engine {
	return c.renderer.Engine()
}

// Domains returns the CDN domains stripped before rendering.
func (c *Converter) Domains() []string {
	return c.sanitizer.Domains()
}

// Convert sanitizes input.HTMLPath into a temporary workspace, renders it and
// writes the PDF to input.OutputPath. The source page and its asset folder are
// never modified, and the workspace is removed on every exit path.
// The context is used for cancellation; the converter timeout bounds rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	htmlPath, outputPath := input.paths()

	if !fileutil.FileExists(htmlPath) {
		return nil, fmt.Errorf("%w: %s", ErrHTMLNotFound, htmlPath)
	}
	if err := c.renderer.Check(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	if err := os.MkdirAll(filepath.Dir(absOutput), dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}

	ws, err := prepareWorkspace(htmlPath, c.sanitizer, c.logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			c.logger.Warn("workspace cleanup failed", "err", cerr)
		}
	}()
	c.logger.Debug("workspace ready", "dir", ws.dir, "assets", ws.assetsMirrored, "stylesheets", ws.cssSanitized)

	renderCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	engine := c.renderer.Engine()
	c.logger.Debug("rendering", "engine", engine, "timeout", c.cfg.timeout)
	if err := c.renderer.Render(renderCtx, ws.htmlPath, absOutput); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("rendering with %s: %w%s", engine, err, hints.ForTimeout())
		}
		return nil, fmt.Errorf("rendering with %s: %w", engine, err)
	}

	return &Result{
		OutputPath:     absOutput,
		Engine:         engine,
		AssetsMirrored: ws.assetsMirrored,
		AssetFiles:     ws.assetFiles,
		CSSSanitized:   ws.cssSanitized,
		Duration:       time.Since(start),
	}, nil
}
