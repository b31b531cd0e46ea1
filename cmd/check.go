package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidmeta/vidmeta/constant"
	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/style"
)

// CheckDependencies reports an error when mpv is not in PATH.
func CheckDependencies() error {
	if _, err := exec.LookPath("mpv"); err != nil {
		printMissingDependencyError("mpv")
		return fmt.Errorf("mpv not found in PATH")
	}
	return nil
}

func installHint(goos string) string {
	switch goos {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The %s engine needs '%s' in your PATH.", dep, dep))

	suggestion := ""
	if hint := installHint(runtime.GOOS); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Fprintln(os.Stderr, box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}
