package html2pdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/process"
)

// networkIdleWindow is how long the page must stay without in-flight
// requests before it is considered settled.
const networkIdleWindow = 500 * time.Millisecond

// idleExcludedTypes lists request types ignored while waiting for network
// idle. It is empty, not nil: rod treats nil as "skip images, fonts, media
// and websockets", which are the assets a saved page loads.
var idleExcludedTypes = []proto.NetworkResourceType{}

// filePermissions for the written PDF.
const filePermissions = 0o644

// rodRenderer implements renderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
// A browser is launched per Render call and torn down before it returns.
type rodRenderer struct {
	browserBin string
	noSandbox  bool
	page       *PageSettings
	logger     *log.Logger
}

// newRodRenderer creates a rodRenderer.
func newRodRenderer(browserBin string, noSandbox bool, page *PageSettings, logger *log.Logger) *rodRenderer {
	if logger == nil {
		logger = discardLogger()
	}
	return &rodRenderer{
		browserBin: browserBin,
		noSandbox:  noSandbox,
		page:       page,
		logger:     logger,
	}
}

func (r *rodRenderer) Engine() Engine {
	return EngineHeadlessBrowser
}

// Check always succeeds: rod fetches a browser on demand, so availability
// is only known at launch.
func (r *rodRenderer) Check() error {
	return nil
}

// browserSession is one launched browser and the launcher that owns it.
type browserSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// close tears down the page's browser and every process it spawned.
func (s *browserSession) close() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	process.KillProcessGroup(s.launcher.PID())
	s.launcher.Kill()
	s.launcher.Cleanup()
}

// Render opens the sanitized page in headless Chrome and prints it to outputPath.
func (r *rodRenderer) Render(ctx context.Context, htmlPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	session, err := r.launch(ctx)
	if err != nil {
		return err
	}
	defer session.close()

	pdf, err := r.print(ctx, session.browser, htmlPath)
	if err != nil {
		return err
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(outputPath, pdf, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// launch starts Chrome and connects to it.
func (r *rodRenderer) launch(ctx context.Context) (*browserSession, error) {
	l := launcher.New().Context(ctx)

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := r.browserBin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if r.noSandbox || bin != "" || os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}
	r.logger.Debug("browser launched", "pid", l.PID())

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}

	return &browserSession{launcher: l, browser: browser}, nil
}

// print loads htmlPath, waits for the network to go quiet and returns the PDF bytes.
func (r *rodRenderer) print(ctx context.Context, browser *rod.Browser, htmlPath string) ([]byte, error) {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	target, err := fileURL(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Arm the idle waiter before navigating so early requests are counted.
	waitIdle := page.WaitRequestIdle(networkIdleWindow, nil, nil, idleExcludedTypes)
	if err := page.Navigate(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(r.printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// printOptions builds proto.PagePrintToPDF from the page settings.
// A CSS @page size in the document takes precedence over the paper size.
func (r *rodRenderer) printOptions() *proto.PagePrintToPDF {
	paper := r.page.paper()
	margin := r.page.margin()

	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(paper.width),
		PaperHeight:       floatPtr(paper.height),
		MarginTop:         floatPtr(margin),
		MarginBottom:      floatPtr(margin),
		MarginLeft:        floatPtr(margin),
		MarginRight:       floatPtr(margin),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// fileURL converts a local path to a file:// URL, escaping spaces and the like.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed // C:/x -> /C:/x
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String(), nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
