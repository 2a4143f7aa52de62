// Package color decides whether CLI output is styled.
package color

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by --color.
const (
	Auto   = "auto"
	Always = "always"
	Never  = "never"
)

// Validate rejects unknown modes.
func Validate(mode string) error {
	switch mode {
	case Auto, Always, Never:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (expected auto, always or never)", mode)
	}
}

// ShouldUseColors reports whether output written to w should be styled.
// In auto mode that means w is a terminal and NO_COLOR is unset.
func ShouldUseColors(mode string, w io.Writer) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	default:
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return false
		}
		return os.Getenv("NO_COLOR") == ""
	}
}

// ConfigureColorProfile sets the global lipgloss profile for the mode. It
// must run before anything is rendered.
//
// "always" forces TrueColor so piped output keeps its colors, "never" forces
// plain ASCII, and "auto" keeps lipgloss's own detection.
func ConfigureColorProfile(mode string) {
	switch mode {
	case Always:
		lipgloss.SetColorProfile(termenv.TrueColor)
	case Never:
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
