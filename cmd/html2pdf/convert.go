package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// run resolves configuration, converts one page and reports the result.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment, logger *log.Logger) error {
	cfg, err := resolveConfig(flags, loadEnvConfig())
	if err != nil {
		return err
	}

	if flags.mode.printConfig {
		out, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("rendering config: %w", err)
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	conv, err := html2pdf.NewConverter(opts...)
	if err != nil {
		return err
	}

	input := html2pdf.Input{}
	if len(positional) > 0 {
		input.HTMLPath = positional[0]
	}
	if len(positional) > 1 {
		input.OutputPath = positional[1]
	}

	logger.Debug("converting", "engine", conv.Engine(), "domains", conv.Domains())
	result, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	logger.Debug("converted",
		"engine", result.Engine,
		"assets", result.AssetFiles,
		"stylesheets", result.CSSSanitized,
		"took", result.Duration.Round(time.Millisecond),
	)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", result.OutputPath)
	}
	return nil
}

// resolveConfig builds the effective config.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies explicitly set flags into cfg (CLI wins).
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	b := flags.backend
	if flags.isSet("engine") {
		cfg.Engine = b.engine.String()
	}
	if flags.isSet("timeout") {
		cfg.Timeout = b.timeout
	}
	if flags.isSet("domain") {
		cfg.Sanitize.Domains = b.domains
	}
	if flags.isSet("wkhtmltopdf") {
		cfg.External.Binary = b.wkhtmltopdf
	}
	if flags.isSet("browser-bin") {
		cfg.Browser.Bin = b.browserBin
	}
	if flags.isSet("no-sandbox") {
		cfg.Browser.NoSandbox = b.noSandbox
	}
	if flags.isSet("page-size") {
		cfg.Page.Size = b.pageSize
	}
	if flags.isSet("margin") {
		cfg.Page.Margin = b.margin
	}
}

// converterOptions translates a validated config into converter options.
func converterOptions(cfg *config.Config, logger *log.Logger) ([]html2pdf.Option, error) {
	engine, err := html2pdf.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	size := cfg.Page.Size
	if size == "" {
		size = html2pdf.PageSizeA4
	}

	opts := []html2pdf.Option{
		html2pdf.WithEngine(engine),
		html2pdf.WithDomains(cfg.Sanitize.Domains...),
		html2pdf.WithPage(&html2pdf.PageSettings{Size: size, Margin: cfg.Page.Margin}),
		html2pdf.WithExternalBinary(cfg.External.Binary, cfg.External.Args...),
		html2pdf.WithBrowserBin(cfg.Browser.Bin),
		html2pdf.WithNoSandbox(cfg.Browser.NoSandbox),
		html2pdf.WithLogger(logger),
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, html2pdf.WithTimeout(d))
	}
	return opts, nil
}
