package html2pdf

import (
	"context"
	"fmt"
)

// renderer turns the sanitized HTML file into a PDF at outputPath.
// Each backend owns its process or browser for exactly one Render call.
type renderer interface {
	// Engine identifies the backend.
	Engine() Engine
	// Check verifies the backend can run, before any work is done.
	Check() error
	// Render writes the PDF. htmlPath sits in the sanitized workspace with its
	// asset folder next to it.
	Render(ctx context.Context, htmlPath, outputPath string) error
}

// Compile-time interface checks
var (
	_ renderer = (*externalRenderer)(nil)
	_ renderer = (*rodRenderer)(nil)
)

// newRenderer picks the backend for cfg.engine.
func newRenderer(cfg converterConfig) (renderer, error) {
	switch cfg.engine {
	case EngineExternalBinary:
		return newExternalRenderer(cfg.binary, cfg.binaryArgs, cfg.logger), nil
	case EngineHeadlessBrowser:
		return newRodRenderer(cfg.browserBin, cfg.noSandbox, cfg.page, cfg.logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, string(cfg.engine))
}
