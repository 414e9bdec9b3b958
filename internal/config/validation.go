package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func (c *Config) validateEditor() error {
	if c.Opener == "" {
		return nil
	}
	bin := parseEditorBinary(c.Opener)
	if validEditorPath(bin) {
		return nil
	}
	if _, err := exec.LookPath(bin); err != nil {
		return &ValidationError{"opener", c.Opener, "command not found in PATH or invalid path"}
	}
	return nil
}

func parseEditorBinary(editor string) string {
	if editor == "" {
		return ""
	}
	// Support basic quoted paths or first token before whitespace
	if (strings.HasPrefix(editor, "\"") && strings.Count(editor, "\"") >= 2) || (strings.HasPrefix(editor, "'") && strings.Count(editor, "'") >= 2) {
		q := editor[0:1]
		if idx := strings.Index(editor[1:], q); idx >= 0 {
			return editor[1 : 1+idx]
		}
	}
	if i := strings.IndexAny(editor, " \t"); i > 0 {
		return editor[:i]
	}
	return editor
}

func validEditorPath(bin string) bool {
	if !strings.ContainsAny(bin, "/\\") {
		return false
	}
	_, err := os.Stat(bin)
	return err == nil
}

func (c *Config) validateSuggestionStrategy() error {
	if len(c.SuggestionStrategy) > 7 {
		return &ValidationError{"suggestion_strategy", c.SuggestionStrategy, "must be at most 7 characters"}
	}
	for _, r := range c.SuggestionStrategy {
		if !strings.ContainsRune("abcefhj-", r) {
			return &ValidationError{"suggestion_strategy", c.SuggestionStrategy, fmt.Sprintf("unknown source code %q", r)}
		}
	}
	return nil
}

// Validate checks the configuration for internally-inconsistent or unsafe
// values. It does not reach into external state (PATH lookups aside).
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateSuggestionStrategy(); err != nil {
		return err
	}
	if err := c.validateAliases(); err != nil {
		return err
	}
	if err := c.validateKeybindings(); err != nil {
		return err
	}
	return nil
}
