package dispatch

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ziggle-dev/clanker-input/internal/mechanism"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// Platform families with distinct strategy tables.
const (
	PlatformDarwin  = "darwin"
	PlatformWindows = "windows"
	PlatformLinux   = "linux"
)

// Current is the platform family of the running host, detected once.
var Current = sync.OnceValue(func() string {
	return Family(runtime.GOOS)
})

// Family maps a GOOS value onto a platform family. Every unix-like system
// that is not macOS uses the Linux table.
func Family(goos string) string {
	switch strings.ToLower(goos) {
	case PlatformDarwin:
		return PlatformDarwin
	case PlatformWindows:
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

var defaultOrder = map[string][]string{
	PlatformDarwin:  {mechanism.NameAppleScript},
	PlatformWindows: {mechanism.NamePowerShell},
	PlatformLinux:   {mechanism.NameZenity, mechanism.NameKdialog, mechanism.NameTerminal},
}

// DefaultOrder returns the built-in mechanism order for a platform family.
func DefaultOrder(platform string) []string {
	return slices.Clone(defaultOrder[Family(platform)])
}

// Fallback reports whether a failing mechanism on this platform hands over
// to the next one. Only the Linux table has more than one graphical surface.
func Fallback(platform string) bool {
	return Family(platform) == PlatformLinux
}

// Terminal styles.
const (
	StyleLine = "line"
	StyleForm = "form"
)

// Deps are what mechanisms need to be constructed.
type Deps struct {
	Runner  runner.Runner
	Console mechanism.ConsoleOpener
	// TerminalStyle selects the terminal rendition: StyleLine (default) or
	// StyleForm.
	TerminalStyle string
}

// Mechanisms builds the named mechanisms in order.
func Mechanisms(names []string, deps Deps) ([]mechanism.Mechanism, error) {
	if deps.Runner == nil {
		deps.Runner = runner.New()
	}

	out := make([]mechanism.Mechanism, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case mechanism.NameAppleScript:
			out = append(out, mechanism.NewAppleScript(deps.Runner))
		case mechanism.NamePowerShell:
			out = append(out, mechanism.NewPowerShell(deps.Runner))
		case mechanism.NameZenity:
			out = append(out, mechanism.NewZenity(deps.Runner))
		case mechanism.NameKdialog:
			out = append(out, mechanism.NewKdialog(deps.Runner))
		case mechanism.NameTerminal:
			if deps.TerminalStyle == StyleForm {
				out = append(out, mechanism.NewForm(deps.Console))
			} else {
				out = append(out, mechanism.NewTerminal(deps.Console))
			}
		case mechanism.NameForm:
			out = append(out, mechanism.NewForm(deps.Console))
		default:
			return nil, fmt.Errorf("unknown input mechanism %q", name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no input mechanisms configured")
	}
	return out, nil
}
