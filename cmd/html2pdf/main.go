package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Parse flags first to know whether maxprocs should log.
	// Error ignored: runMain reparses and reports it.
	verbose := false
	if flags, _, err := parseFlags(os.Args); err == nil {
		verbose = flags.common.verbose && !flags.common.quiet
	}
	logger := newLogger(env.Stderr, logLevel(false, verbose))

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))

	os.Exit(runMain(os.Args, env))
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		fmt.Fprintln(env.Stderr)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	switch {
	case flags.mode.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.mode.version:
		fmt.Fprintf(env.Stdout, "html2pdf %s\n", Version)
		return ExitSuccess
	case flags.mode.json && !flags.mode.doctor:
		fmt.Fprintln(env.Stderr, "--json requires --doctor")
		return ExitUsage
	}

	logger := newLogger(env.Stderr, logLevel(flags.common.quiet, flags.common.verbose))

	if flags.mode.doctor {
		return runDoctorCmd(flags.mode.json, doctorBinary(flags), env)
	}

	warnUnknownEnvVars(logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, positional, flags, env, logger); err != nil {
		logger.Error(err.Error())
		return exitCodeFor(err)
	}
	return ExitSuccess
}
