package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/ziggle-dev/clanker-input/internal/color"
	"github.com/ziggle-dev/clanker-input/internal/formatter"
)

func printHelp(w io.Writer, colorMode string) {
	useColors := color.ShouldUseColors(colorMode, w)
	mdMode := color.Never
	if useColors {
		mdMode = colorMode
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).MarginTop(1)
	optionStyle := lipgloss.NewStyle()
	codeStyle := lipgloss.NewStyle().Italic(true)

	if useColors {
		titleStyle = titleStyle.Foreground(lipgloss.Color("6"))     // Cyan
		sectionStyle = sectionStyle.Foreground(lipgloss.Color("3")) // Yellow
		optionStyle = optionStyle.Foreground(lipgloss.Color("2"))   // Green
		codeStyle = codeStyle.Foreground(lipgloss.Color("8"))       // Dim
	}

	title := titleStyle.Render("clanker-input - Ask a person for input through native dialogs")

	usage := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Usage:"),
		"  clanker-input <command> [options]",
	)

	commands := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Commands:"),
		fmt.Sprintf("  %s        Ask one question, or a chain of questions", optionStyle.Render("ask")),
		fmt.Sprintf("  %s        Serve the user_input tool over MCP "+codeStyle.Render("(stdio or sse)"), optionStyle.Render("mcp")),
		fmt.Sprintf("  %s     Print the JSON Schema of request files", optionStyle.Render("schema")),
		fmt.Sprintf("  %s    Print version information", optionStyle.Render("version")),
	)

	mechanisms := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Dialogs:"),
		"  macOS    AppleScript "+codeStyle.Render("(osascript)"),
		"  Windows  PowerShell",
		"  Linux    zenity, then kdialog, then the terminal",
		"",
		"  The order per platform can be changed in the config file.",
	)

	options := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Global Options:"),
		fmt.Sprintf("  %s       Config file "+codeStyle.Render("(default $XDG_CONFIG_HOME/clanker-input/config.yaml)"), optionStyle.Render("--config")),
		fmt.Sprintf("  %s        Control color output (auto, always, never)", optionStyle.Render("--color")),
		fmt.Sprintf("  %s    Log level written to stderr (debug, info, warn, error)", optionStyle.Render("--log-level")),
		fmt.Sprintf("  %s         Show help for a command", optionStyle.Render("--help")),
	)

	examplesBlock := `~~~sh
# Ask one question
clanker-input ask "What is your name?"

# Ask for a secret
clanker-input ask --password "API token"

# Pick from a list
clanker-input ask --type dropdown --option dev --option prod "Environment?"

# Ask several questions and get the answers as JSON
clanker-input ask --question "What is your name?" --question "What is your email?" -o json

# Show which dialog would be used
clanker-input ask --dry-run "What is your name?"

# Serve the MCP tool to a local client
clanker-input mcp
~~~`

	examples := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Examples:"),
		formatter.Markdown(mdMode, examplesBlock),
	)

	fileExample := `~~~yaml
timeout_seconds: 120
questions:
  - prompt: What is your name?
  - prompt: Deploy to which environment?
    type: dropdown
    options: [staging, production]
  - prompt: Deploy token
    password: true
~~~`

	fileFormat := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Request Files:"),
		"  "+optionStyle.Render("ask --file")+" reads a YAML request; "+optionStyle.Render("schema")+" prints its JSON Schema:",
		"",
		formatter.Markdown(mdMode, fileExample),
	)

	exitCodes := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Exit Status:"),
		"  0 answered, 1 failed, 2 cancelled",
	)

	help := lipgloss.JoinVertical(lipgloss.Left,
		title,
		usage,
		commands,
		mechanisms,
		options,
		examples,
		fileFormat,
		exitCodes,
	)

	_, _ = fmt.Fprintln(w, help)
}
