package html2pdf

import "fmt"

// Engine selects the rendering backend for one conversion.
type Engine string

// Supported engines.
const (
	// EngineHeadlessBrowser prints the page with headless Chrome (go-rod).
	EngineHeadlessBrowser Engine = "headless-browser"
	// EngineExternalBinary shells out to wkhtmltopdf.
	EngineExternalBinary Engine = "external-binary"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineHeadlessBrowser

// Engines lists the accepted values, in help order.
func Engines() []Engine {
	return []Engine{EngineHeadlessBrowser, EngineExternalBinary}
}

// ParseEngine converts a name to an Engine. Only the exact enumerated values
// are accepted; the empty string means unset and selects DefaultEngine.
func ParseEngine(name string) (Engine, error) {
	switch Engine(name) {
	case "":
		return DefaultEngine, nil
	case EngineHeadlessBrowser, EngineExternalBinary:
		return Engine(name), nil
	}
	return "", invalidEngine(name)
}

func invalidEngine(name string) error {
	return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, name, EngineHeadlessBrowser, EngineExternalBinary)
}

// Validate reports whether e is a supported engine.
func (e Engine) Validate() error {
	if e != EngineHeadlessBrowser && e != EngineExternalBinary {
		return fmt.Errorf("%w: %q", ErrInvalidEngine, string(e))
	}
	return nil
}

// String implements fmt.Stringer and pflag.Value.
func (e Engine) String() string {
	return string(e)
}

// Set implements pflag.Value so an Engine can be bound to a flag directly.
// An explicit empty value is rejected.
func (e *Engine) Set(s string) error {
	if s == "" {
		return invalidEngine(s)
	}
	parsed, err := ParseEngine(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Type implements pflag.Value.
func (e *Engine) Type() string {
	return "engine"
}
