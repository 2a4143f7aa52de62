// Package escape quotes free text for embedding in constructed command lines.
//
// Dialog chrome is single-line on every mechanism, so each function folds
// line breaks ("\r\n", "\r", "\n") into one space before escaping.
package escape

import "strings"

var (
	lineFolder       = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	appleScriptQuote = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	shellQuote       = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

	// PowerShell closes a '...' literal on any of these quote runes, not
	// only the ASCII one.
	powerShellQuote = strings.NewReplacer(
		`'`, `''`,
		"\u2018", "\u2018\u2018",
		"\u2019", "\u2019\u2019",
		"\u201A", "\u201A\u201A",
		"\u201B", "\u201B\u201B",
	)
)

// Line folds line breaks into spaces without any quoting. Use it for text
// handed to a process as a discrete argv element.
func Line(s string) string {
	return lineFolder.Replace(s)
}

// AppleScript escapes s for use inside an AppleScript "..." string literal.
func AppleScript(s string) string {
	return appleScriptQuote.Replace(Line(s))
}

// PowerShell escapes s for use inside a PowerShell '...' literal.
func PowerShell(s string) string {
	return powerShellQuote.Replace(Line(s))
}

// Shell escapes s for use inside a POSIX shell "..." argument.
func Shell(s string) string {
	return shellQuote.Replace(Line(s))
}

// AppleScriptList renders items as an AppleScript list literal: {"a", "b"}.
func AppleScriptList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + AppleScript(item) + `"`
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// PowerShellArray renders items as a PowerShell array literal: @('a','b').
func PowerShellArray(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + PowerShell(item) + "'"
	}
	return "@(" + strings.Join(quoted, ",") + ")"
}
