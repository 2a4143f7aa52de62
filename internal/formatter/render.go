package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// newMarkdownRenderer returns a glamour renderer for the color mode, or nil
// when output should stay plain.
func newMarkdownRenderer(colorMode string) *glamour.TermRenderer {
	var opts []glamour.TermRendererOption

	switch colorMode {
	case "never":
		return nil
	case "always":
		opts = append(opts,
			glamour.WithAutoStyle(),
			glamour.WithColorProfile(termenv.TrueColor),
			glamour.WithWordWrap(0),
		)
	default:
		opts = append(opts,
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(0),
		)
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil
	}
	return r
}

// Markdown renders text with glamour, falling back to the text itself.
func Markdown(colorMode, text string) string {
	r := newMarkdownRenderer(colorMode)
	if r == nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	// glamour pads with blank lines
	return strings.TrimSpace(rendered)
}
