package html2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/hints"
)

// DefaultBinary is the converter looked up on PATH by the external-binary engine.
const DefaultBinary = "wkhtmltopdf"

// localFileAccessFlag lets wkhtmltopdf load the mirrored asset folder.
const localFileAccessFlag = "--enable-local-file-access"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// execRunner implements CommandRunner using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary and args come from the invoking user

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// externalRenderer renders by invoking wkhtmltopdf (or a compatible binary).
type externalRenderer struct {
	binary   string
	args     []string
	runner   CommandRunner
	lookPath func(string) (string, error)
	logger   *log.Logger
}

// newExternalRenderer creates an externalRenderer backed by a real command runner.
func newExternalRenderer(binary string, args []string, logger *log.Logger) *externalRenderer {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &externalRenderer{
		binary:   binary,
		args:     args,
		runner:   execRunner{},
		lookPath: exec.LookPath,
		logger:   logger,
	}
}

func (r *externalRenderer) Engine() Engine {
	return EngineExternalBinary
}

// Check verifies the binary resolves on PATH.
func (r *externalRenderer) Check() error {
	_, err := r.resolve()
	return err
}

// resolve looks the binary up on every call; the renderer keeps no state
// between conversions.
func (r *externalRenderer) resolve() (string, error) {
	path, err := r.lookPath(r.binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found on PATH%s", ErrBackendUnavailable, r.binary, hints.ForBackendNotFound(r.binary))
	}
	return path, nil
}

// Render runs: <binary> [args...] --enable-local-file-access <html> <pdf>.
// A non-zero exit or a missing/empty output file is a backend failure.
func (r *externalRenderer) Render(ctx context.Context, htmlPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bin, err := r.resolve()
	if err != nil {
		return err
	}

	args := make([]string, 0, len(r.args)+3)
	args = append(args, r.args...)
	args = append(args, localFileAccessFlag, htmlPath, outputPath)

	r.logger.Debug("running external converter", "bin", bin, "args", strings.Join(args, " "))

	_, stderr, err := r.runner.Run(ctx, bin, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s interrupted: %w", ErrBackendFailed, r.binary, ctxErr)
		}
		return fmt.Errorf("%w: %s: %s", ErrBackendFailed, r.binary, describeExit(err, stderr))
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		r.logger.Debug("external converter output", "stderr", msg)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s exited successfully but produced no PDF at %s", ErrBackendFailed, r.binary, outputPath)
	}
	return nil
}

// describeExit combines the exit status with the last stderr line, which is
// where wkhtmltopdf reports the cause.
func describeExit(err error, stderr string) string {
	status := err.Error()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status = fmt.Sprintf("exit status %d", exitErr.ExitCode())
	}

	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return status
	}
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	return status + ": " + msg
}
