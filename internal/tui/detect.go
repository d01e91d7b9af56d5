package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how tripload renders progress.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is watching the terminal.
	ModeInteractive
)

// DetectMode determines whether output written to out is watched by a human.
//
// Returns ModeNonInteractive if:
//   - TRIPLOAD_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - out is not a terminal
//
// Returns ModeInteractive otherwise.
func DetectMode(out *os.File) Mode {
	if os.Getenv("TRIPLOAD_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive reports whether stderr, where progress is drawn, is interactive.
func IsInteractive() bool {
	return DetectMode(os.Stderr) == ModeInteractive
}

// TerminalWidth returns the width of out, or fallback when it cannot be determined.
func TerminalWidth(out *os.File, fallback int) int {
	if out == nil {
		return fallback
	}
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
