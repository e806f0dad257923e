package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string   // HTML2PDF_CONFIG: config file name or path
	Engine      string   // HTML2PDF_ENGINE: headless-browser, external-binary
	Timeout     string   // HTML2PDF_TIMEOUT: render timeout
	Domains     []string // HTML2PDF_DOMAINS: comma-separated CDN domains
	Wkhtmltopdf string   // HTML2PDF_WKHTMLTOPDF: converter binary
	PageSize    string   // HTML2PDF_PAGE_SIZE: a4, letter, legal
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":      true,
	"HTML2PDF_ENGINE":      true,
	"HTML2PDF_TIMEOUT":     true,
	"HTML2PDF_DOMAINS":     true,
	"HTML2PDF_WKHTMLTOPDF": true,
	"HTML2PDF_PAGE_SIZE":   true,
	"HTML2PDF_CONTAINER":   true, // read by --doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:  os.Getenv("HTML2PDF_CONFIG"),
		Engine:      os.Getenv("HTML2PDF_ENGINE"),
		Timeout:     os.Getenv("HTML2PDF_TIMEOUT"),
		Domains:     splitList(os.Getenv("HTML2PDF_DOMAINS")),
		Wkhtmltopdf: os.Getenv("HTML2PDF_WKHTMLTOPDF"),
		PageSize:    os.Getenv("HTML2PDF_PAGE_SIZE"),
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PDF_* variables.
// Helps catch typos like HTML2PDF_DOMAIN instead of HTML2PDF_DOMAINS.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTML2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if len(env.Domains) > 0 {
		cfg.Sanitize.Domains = env.Domains
	}
	if env.Wkhtmltopdf != "" {
		cfg.External.Binary = env.Wkhtmltopdf
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
}
