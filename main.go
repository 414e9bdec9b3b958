// Package main is the entry point for the tern interactive file manager.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/tern-fm/tern/internal/app"
	"github.com/tern-fm/tern/internal/config"
	"github.com/tern-fm/tern/internal/diag"
	"github.com/tern-fm/tern/internal/keybindings"
	"github.com/tern-fm/tern/internal/session"
	"github.com/tern-fm/tern/internal/termio"
	"github.com/tern-fm/tern/pkg/ui"
)

var (
	version string
	commit  string
)

// GetVersionInfo returns the version information.
func GetVersionInfo() (string, string) {
	// Prefer ldflags-injected values when available
	if version != "" || commit != "" {
		return version, commit
	}

	// Fallback for `go install`: use module build info
	if bi, ok := debug.ReadBuildInfo(); ok {
		v := bi.Main.Version
		if v == "(devel)" {
			v = ""
		}
		var rev string
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) >= 7 {
					rev = s.Value[:7]
				} else {
					rev = s.Value
				}
				break
			}
		}
		return v, rev
	}

	return "", ""
}

// RunApp wires up one interactive session and runs its event loop until
// the user exits. Separated from main for testability, the way
// router.Route was separated from the teacher's main().
func RunApp() int {
	diagSink := diag.NewStderrSink()

	cm := config.NewConfigManager()
	if err := cm.LoadConfig(); err != nil {
		diagSink.Warn("config", "%v", err)
	}
	cfg := cm.GetConfig()

	cwd, err := os.Getwd()
	if err != nil {
		diagSink.Error("startup", "could not determine working directory: %v", err)
		return 1
	}

	sess := session.New(cfg, profileDir(cfg), cwd)
	for _, loadErr := range sess.Load(os.Getenv("PATH")) {
		diagSink.Warn("startup", "%v", loadErr)
	}

	resolver := keybindings.NewResolver(cfg)
	keymap, err := resolver.Resolve(keybindings.Profile(cfg.Interactive.Profile))
	if err != nil {
		diagSink.Warn("keybindings", "%v", err)
		keymap = keybindings.DefaultKeyBindingMap()
	}

	term := termio.DefaultTerminal{}
	stdinFd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(stdinFd)
	if err != nil {
		diagSink.Error("startup", "could not enter raw mode: %v", err)
		return 1
	}
	defer func() { _ = term.Restore(stdinFd, state) }()

	ui.DisableWrap(os.Stdout)
	defer ui.EnableWrap(os.Stdout)

	reader := &termio.TimedByteReader{R: bufio.NewReader(os.Stdin), Fd: os.Stdin.Fd()}
	loop := app.NewLoop(sess, keymap, diagSink, reader, os.Stdout)

	if err := loop.Run(); err != nil {
		_ = term.Restore(stdinFd, state)
		fmt.Fprintln(os.Stderr)
	}

	for _, saveErr := range sess.Save() {
		diagSink.Warn("shutdown", "%v", saveErr)
	}
	return 0
}

// profileDir returns the directory persisted tables live under,
// ~/.config/tern/<profile>/, generalizing getConfigPaths' XDG convention
// (internal/config/load.go) from a single config file to a per-profile
// directory of tables.
func profileDir(cfg *config.Config) string {
	home, _ := os.UserHomeDir()
	profile := cfg.Interactive.Profile
	if profile == "" {
		profile = "default"
	}
	return filepath.Join(home, ".config", "tern", profile)
}

func main() {
	os.Exit(RunApp())
}
