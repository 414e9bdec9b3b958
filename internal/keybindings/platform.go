package keybindings

import (
	"os"
	"runtime"
	"strings"
)

// DetectPlatform identifies the current operating system platform.
func DetectPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "darwin"
	case "linux":
		return "linux"
	case "windows":
		return "windows"
	case "freebsd", "openbsd", "netbsd":
		return "bsd"
	default:
		return "unix"
	}
}

// DetectTerminal identifies the current terminal type from environment
// variables; used by the highlighter to decide whether the terminal likely
// supports the capabilities §4.1 assumes (cursor save/restore, color).
func DetectTerminal() string {
	term := os.Getenv("TERM")
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app":
		return "iterm"
	case "Apple_Terminal":
		return "terminal"
	case "vscode":
		return "vscode"
	}
	switch {
	case strings.Contains(term, "tmux"):
		return "tmux"
	case strings.Contains(term, "screen"):
		return "screen"
	case strings.HasPrefix(term, "xterm"):
		return "xterm"
	case strings.Contains(term, "kitty"):
		return "kitty"
	case term == "dumb":
		return "dumb"
	default:
		return "generic"
	}
}

// GetPlatformSpecificKeyBindings returns platform-specific keybinding
// adjustments layered on top of the selected profile.
func GetPlatformSpecificKeyBindings(platform string) map[Action][]KeyStroke {
	switch platform {
	case "darwin":
		return map[Action][]KeyStroke{
			ActionKillWord: {NewAltKeyStroke(0, "backspace"), NewCtrlKeyStroke('w')},
			ActionWordLeft: {NewAltKeyStroke('b', "b"), NewLeftArrowKeyStroke()},
		}
	case "linux", "bsd", "unix":
		return map[Action][]KeyStroke{
			ActionKillWord: {NewCtrlKeyStroke('w')},
		}
	default:
		return nil
	}
}
