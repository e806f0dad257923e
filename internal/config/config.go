package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults applied by DefaultConfig.
const (
	DefaultEngine      = "headless-browser"
	DefaultDomain      = "cdn.oaistatic.com"
	DefaultTimeout     = "60s"
	DefaultBinary      = "wkhtmltopdf"
	DefaultPageSize    = "a4"
	DefaultMargin      = 0.4
	MaxMargin          = 3.0
	MaxDomains         = 32
	MaxDomainLength    = 253 // RFC 1035
	MaxPathLength      = 4096
	MaxEngineLength    = 32
	MaxExtraArgs       = 64
	MaxExtraArgLength  = 1024
	configDirName      = "go-html2pdf"
	defaultConfigDepth = 2 // current dir + user config dir
)

// Config holds all settings for one conversion.
type Config struct {
	Engine   string         `yaml:"engine"`  // "headless-browser" or "external-binary"
	Timeout  string         `yaml:"timeout"` // Go duration, e.g. "90s"
	Sanitize SanitizeConfig `yaml:"sanitize"`
	External ExternalConfig `yaml:"external"`
	Browser  BrowserConfig  `yaml:"browser"`
	Page     PageConfig     `yaml:"page"`
}

// SanitizeConfig lists the CDN domains stripped before rendering.
type SanitizeConfig struct {
	Domains []string `yaml:"domains"`
}

// ExternalConfig configures the external-binary backend.
type ExternalConfig struct {
	Binary string   `yaml:"binary"` // name on PATH or absolute path
	Args   []string `yaml:"args"`   // extra arguments placed before the input file
}

// BrowserConfig configures the headless-browser backend.
type BrowserConfig struct {
	Bin       string `yaml:"bin"`       // empty = ROD_BROWSER_BIN or rod-managed Chromium
	NoSandbox bool   `yaml:"noSandbox"` // disable the Chrome sandbox
}

// PageConfig defines print-to-PDF settings for the headless-browser backend.
type PageConfig struct {
	Size   string  `yaml:"size"`   // "a4", "letter", "legal"
	Margin float64 `yaml:"margin"` // inches, all sides
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Engine:   DefaultEngine,
		Timeout:  DefaultTimeout,
		Sanitize: SanitizeConfig{Domains: []string{DefaultDomain}},
		External: ExternalConfig{Binary: DefaultBinary},
		Page:     PageConfig{Size: DefaultPageSize, Margin: DefaultMargin},
	}
}

// TimeoutDuration parses Timeout. Callers should run Validate first.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, and again by the CLI after env and flag
// overrides are merged.
func (c *Config) Validate() error {
	if err := validateFieldLength("engine", c.Engine, MaxEngineLength); err != nil {
		return err
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
		}
	}

	if len(c.Sanitize.Domains) > MaxDomains {
		return fmt.Errorf("%w: sanitize.domains has %d entries (max %d)", ErrInvalidValue, len(c.Sanitize.Domains), MaxDomains)
	}
	for i, d := range c.Sanitize.Domains {
		if err := validateFieldLength(fmt.Sprintf("sanitize.domains[%d]", i), d, MaxDomainLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("external.binary", c.External.Binary, MaxPathLength); err != nil {
		return err
	}
	if len(c.External.Args) > MaxExtraArgs {
		return fmt.Errorf("%w: external.args has %d entries (max %d)", ErrInvalidValue, len(c.External.Args), MaxExtraArgs)
	}
	for i, a := range c.External.Args {
		if err := validateFieldLength(fmt.Sprintf("external.args[%d]", i), a, MaxExtraArgLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "a4", "letter", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be a4, letter, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Margin < 0 || c.Page.Margin > MaxMargin {
		return fmt.Errorf("%w: page.margin must be between 0 and %.1f, got %.2f", ErrInvalidValue, MaxMargin, c.Page.Margin)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, in the same shape LoadConfig reads.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// current directory first, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*defaultConfigDepth)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
