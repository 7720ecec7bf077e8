package helper

import (
	"fmt"
	"strings"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
)

func customLabel(d *dialog.Dialog) (string, bool) {
	b := d.Buttons()[0]
	if !d.Renders(negotiate.FeatureCustomLabels) {
		return "", false
	}
	label := d.Label(b)
	return label, !strings.EqualFold(label, b.ID.DefaultLabel())
}

// Zenity is the GNOME helper.
var Zenity = Program{
	Name: "zenity",
	Args: func(d *dialog.Dialog) []string {
		args := []string{"--info"}
		switch d.Icon() {
		case core.IconWarning:
			args[0] = "--warning"
		case core.IconError:
			args[0] = "--error"
		case core.IconQuestion:
			args = append(args, "--icon-name=dialog-question")
		}
		args = append(args, "--title="+d.Title(), "--text="+d.Message(), "--no-markup")
		if label, ok := customLabel(d); ok {
			args = append(args, "--ok-label="+label)
		}
		return args
	},
	Dismissed: exitCodeIs(1, 5),
}

// KDialog is the KDE helper.
var KDialog = Program{
	Name: "kdialog",
	Args: func(d *dialog.Dialog) []string {
		mode := "--msgbox"
		switch d.Icon() {
		case core.IconWarning:
			mode = "--sorry"
		case core.IconError:
			mode = "--error"
		}
		args := []string{"--title", d.Title(), mode, d.Message()}
		if label, ok := customLabel(d); ok {
			args = append(args, "--ok-label", label)
		}
		return args
	},
	Dismissed: exitCodeIs(1),
}

// OSAScript runs "display dialog" through AppleScript.
var OSAScript = Program{
	Name: "osascript",
	Args: func(d *dialog.Dialog) []string {
		label := d.Label(d.Buttons()[0])
		script := fmt.Sprintf(`display dialog "%s" with title "%s" buttons {"%s"} default button "%s"`,
			escapeAppleScript(d.Message()), escapeAppleScript(d.Title()),
			escapeAppleScript(label), escapeAppleScript(label))
		switch d.Icon() {
		case core.IconInformation, core.IconQuestion:
			script += " with icon note"
		case core.IconWarning:
			script += " with icon caution"
		case core.IconError:
			script += " with icon stop"
		}
		return []string{"-e", script}
	},
	Dismissed: func(out Output) bool {
		return out.ExitCode != 0 && (strings.Contains(out.Stderr, "User canceled") || strings.Contains(out.Stderr, "(-128)"))
	},
}

// PowerShell shows a Windows Forms message box.
var PowerShell = Program{
	Name: "powershell.exe",
	Args: func(d *dialog.Dialog) []string {
		icon := "None"
		switch d.Icon() {
		case core.IconInformation:
			icon = "Information"
		case core.IconWarning:
			icon = "Warning"
		case core.IconError:
			icon = "Error"
		case core.IconQuestion:
			icon = "Question"
		}
		script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms
$r = [System.Windows.Forms.MessageBox]::Show(%s, %s, 'OK', '%s')
if ($r -ne [System.Windows.Forms.DialogResult]::OK) { exit 1 }`,
			quoteForPowerShell(d.Message()), quoteForPowerShell(d.Title()), icon)
		return []string{"-NoProfile", "-NonInteractive", "-Command", script}
	},
	Dismissed: exitCodeIs(1),
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func quoteForPowerShell(value string) string {
	if value == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
