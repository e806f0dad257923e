package html2pdf

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/sanitize"
)

// workspacePattern names the temporary directory holding the sanitized copy.
const workspacePattern = "html2pdf-*"

// workspace is a temporary mirror of the saved page: the sanitized HTML file
// and, when present, its asset folder with stylesheets sanitized.
// The source files are never modified.
type workspace struct {
	dir            string
	htmlPath       string
	assetsMirrored bool
	assetFiles     int
	cssSanitized   int
}

// assetDir returns the "<stem>_files" folder saved next to htmlPath.
func assetDir(htmlPath string) string {
	base := filepath.Base(htmlPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(htmlPath), stem+AssetDirSuffix)
}

// prepareWorkspace builds the sanitized mirror of htmlPath.
// On error nothing is left on disk.
func prepareWorkspace(htmlPath string, s *sanitize.Sanitizer, logger *log.Logger) (*workspace, error) {
	if !fileutil.FileExists(htmlPath) {
		return nil, fmt.Errorf("%w: %s", ErrHTMLNotFound, htmlPath)
	}

	raw, err := os.ReadFile(htmlPath) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrWorkspace, htmlPath, err)
	}
	cleaned := s.HTML(sanitize.DecodeLossy(raw))

	dir, err := os.MkdirTemp("", workspacePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp dir: %v", ErrWorkspace, err)
	}
	ws := &workspace{dir: dir}

	if err := ws.populate(htmlPath, cleaned, s, logger); err != nil {
		_ = ws.Close()
		return nil, err
	}
	return ws, nil
}

func (ws *workspace) populate(htmlPath, cleaned string, s *sanitize.Sanitizer, logger *log.Logger) error {
	ws.htmlPath = filepath.Join(ws.dir, filepath.Base(htmlPath))
	if err := os.WriteFile(ws.htmlPath, []byte(cleaned), 0o600); err != nil {
		return fmt.Errorf("%w: writing sanitized HTML: %v", ErrWorkspace, err)
	}

	src := assetDir(htmlPath)
	if !fileutil.DirExists(src) {
		logger.Debug("no asset folder", "expected", src)
		return nil
	}

	dst := filepath.Join(ws.dir, filepath.Base(src))
	n, err := fileutil.CopyTree(src, dst)
	if err != nil {
		return fmt.Errorf("%w: mirroring %s: %v", ErrWorkspace, src, err)
	}
	ws.assetsMirrored = true
	ws.assetFiles = n

	ws.cssSanitized, err = sanitizeStylesheets(dst, s, logger)
	if err != nil {
		return err
	}
	logger.Debug("assets mirrored", "dir", src, "files", n, "stylesheets", ws.cssSanitized)
	return nil
}

// sanitizeStylesheets rewrites every *.css regular file under root and
// returns how many changed. Unreadable stylesheets are logged and left as is.
// CopyTree leaves no links in the mirror; any found are still never written through.
func sanitizeStylesheets(root string, s *sanitize.Sanitizer, logger *log.Logger) (int, error) {
	rewritten := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != ".css" {
			return nil
		}

		data, err := os.ReadFile(path) // #nosec G304 -- path is inside the workspace
		if err != nil {
			logger.Warn("skipping unreadable stylesheet", "path", path, "err", err)
			return nil
		}

		decoded := sanitize.DecodeLossy(data)
		cleaned := s.CSS(decoded)
		if cleaned == decoded {
			return nil
		}

		// #nosec G306 -- the file already exists; WriteFile keeps its mode
		if err := os.WriteFile(path, []byte(cleaned), 0o600); err != nil {
			return fmt.Errorf("%w: rewriting %s: %v", ErrWorkspace, path, err)
		}
		rewritten++
		return nil
	})
	if err != nil {
		return rewritten, err
	}
	return rewritten, nil
}

// Close removes the workspace directory and everything in it.
func (ws *workspace) Close() error {
	if ws == nil || ws.dir == "" {
		return nil
	}
	if err := os.RemoveAll(ws.dir); err != nil {
		return fmt.Errorf("removing workspace %s: %w", ws.dir, err)
	}
	return nil
}
