package mechanism

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziggle-dev/clanker-input/internal/escape"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// PowerShell presents prompts through VisualBasic and WinForms dialogs.
//
// Text and password dialogs report cancellation as empty output, which cannot
// be told apart from a submitted empty string; both are treated as
// cancellation. The dropdown form uses an explicit exit code instead.
type PowerShell struct {
	process
}

// NewPowerShell returns the Windows mechanism.
func NewPowerShell(r runner.Runner) *PowerShell {
	return &PowerShell{process{name: NamePowerShell, binary: "powershell", runner: r}}
}

// Command builds the powershell invocation.
func (p *PowerShell) Command(req prompt.Request) runner.Command {
	return runner.Command{
		Name: p.binary,
		Args: []string{"-NoProfile", "-Command", utf8Output + "\n" + p.script(req)},
	}
}

// utf8Output makes Windows PowerShell write answers as UTF-8 instead of the
// OEM code page.
const utf8Output = "[Console]::OutputEncoding = [System.Text.Encoding]::UTF8"

func (p *PowerShell) script(req prompt.Request) string {
	text := escape.PowerShell(req.Text)
	title := escape.PowerShell(req.TitleOrDefault())

	switch req.Kind {
	case prompt.KindDropdown:
		return strings.Join([]string{
			"Add-Type -AssemblyName System.Windows.Forms",
			"$f = New-Object System.Windows.Forms.Form",
			fmt.Sprintf("$f.Text = '%s'", title),
			"$f.Width = 420; $f.Height = 170; $f.StartPosition = 'CenterScreen'; $f.TopMost = $true",
			"$f.FormBorderStyle = 'FixedDialog'; $f.MaximizeBox = $false; $f.MinimizeBox = $false",
			"$l = New-Object System.Windows.Forms.Label",
			fmt.Sprintf("$l.Text = '%s'", text),
			"$l.Left = 10; $l.Top = 10; $l.Width = 380",
			"$c = New-Object System.Windows.Forms.ComboBox",
			"$c.DropDownStyle = 'DropDownList'; $c.Left = 10; $c.Top = 35; $c.Width = 380",
			fmt.Sprintf("[void]$c.Items.AddRange(%s)", escape.PowerShellArray(req.Choices)),
			fmt.Sprintf("$c.SelectedIndex = %d", req.DefaultChoiceIndex()),
			"$ok = New-Object System.Windows.Forms.Button",
			"$ok.Text = 'OK'; $ok.DialogResult = 'OK'; $ok.Left = 230; $ok.Top = 80",
			"$cancel = New-Object System.Windows.Forms.Button",
			"$cancel.Text = 'Cancel'; $cancel.DialogResult = 'Cancel'; $cancel.Left = 315; $cancel.Top = 80",
			"$f.AcceptButton = $ok; $f.CancelButton = $cancel",
			"$f.Controls.AddRange(@($l, $c, $ok, $cancel))",
			"if ($f.ShowDialog() -eq 'OK') { Write-Output $c.SelectedItem } else { exit 1 }",
		}, "\n")
	case prompt.KindPassword:
		return strings.Join([]string{
			fmt.Sprintf("$cred = Get-Credential -UserName '%s' -Message '%s'", title, text),
			"if ($cred) { Write-Output $cred.GetNetworkCredential().Password }",
		}, "\n")
	default:
		return strings.Join([]string{
			"Add-Type -AssemblyName Microsoft.VisualBasic",
			fmt.Sprintf("[Microsoft.VisualBasic.Interaction]::InputBox('%s', '%s', '%s')",
				text, title, escape.PowerShell(req.DefaultValue())),
		}, "\n")
	}
}

// Present shows the dialog and waits for it to close.
func (p *PowerShell) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	return p.invoke(ctx, p.Command(req), func(res runner.Result) prompt.Outcome {
		if req.Kind == prompt.KindDropdown && res.ExitCode == 1 {
			return prompt.Cancel()
		}
		if res.ExitCode != 0 {
			return exitFailure(p.name, res)
		}
		out := runner.TrimOutput(res.Stdout)
		if out == "" {
			return prompt.Cancel()
		}
		return prompt.Answer(out)
	})
}
