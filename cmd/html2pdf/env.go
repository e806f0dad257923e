package main

import (
	"io"
	"os"
	"os/exec"

	"github.com/go-rod/rod/lib/launcher"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// LookPath resolves a binary on PATH (wkhtmltopdf in --doctor).
	LookPath func(file string) (string, error)
	// LookChrome locates a Chrome/Chromium install.
	LookChrome func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LookPath:   exec.LookPath,
		LookChrome: launcher.LookPath,
	}
}
