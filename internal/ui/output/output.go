// Package output provides utilities for creating termenv.Output with
// consistent color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile to use. It honors NO_COLOR,
// returning Ascii when set, and otherwise detects the terminal's
// capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w with the shared profile logic.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stdout
	}
	return termenv.NewOutput(w, termenv.WithProfile(ColorProfile()))
}
