// Package config loads and persists tern's startup configuration: the
// record the external CLI-flag parser hands to the core (spec.md §6),
// plus the keybinding/profile preferences layered on top of it.
package config

import (
	"fmt"
	"regexp"
	"strconv"

	"go.yaml.in/yaml/v3"
)

var (
	configPathSegmentRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	aliasPlaceholderPattern = regexp.MustCompile(`\{([^}]*)\}`)
)

// SortKey is one of the sort orders the listing cache accepts.
type SortKey int

// Sort keys, numbered exactly as spec.md §6 specifies.
const (
	SortNone SortKey = iota
	SortName
	SortSize
	SortAtime
	SortBtime
	SortCtime
	SortMtime
	SortVersion
	SortExtension
	SortInode
	SortOwner
	SortGroup
)

// String returns the YAML/CLI spelling of a sort key.
func (s SortKey) String() string {
	switch s {
	case SortNone:
		return "none"
	case SortName:
		return "name"
	case SortSize:
		return "size"
	case SortAtime:
		return "atime"
	case SortBtime:
		return "btime"
	case SortCtime:
		return "ctime"
	case SortMtime:
		return "mtime"
	case SortVersion:
		return "version"
	case SortExtension:
		return "extension"
	case SortInode:
		return "inode"
	case SortOwner:
		return "owner"
	case SortGroup:
		return "group"
	default:
		return "name"
	}
}

// ParseSortKey parses the YAML/CLI spelling of a sort key.
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "none":
		return SortNone, true
	case "name":
		return SortName, true
	case "size":
		return SortSize, true
	case "atime":
		return SortAtime, true
	case "btime":
		return SortBtime, true
	case "ctime":
		return SortCtime, true
	case "mtime":
		return SortMtime, true
	case "version":
		return SortVersion, true
	case "extension":
		return SortExtension, true
	case "inode":
		return SortInode, true
	case "owner":
		return SortOwner, true
	case "group":
		return SortGroup, true
	default:
		return SortName, false
	}
}

// UnmarshalYAML accepts a sort key's name or its numeric code.
func (s *SortKey) UnmarshalYAML(value *yaml.Node) error {
	if k, ok := ParseSortKey(value.Value); ok {
		*s = k
		return nil
	}
	n, err := strconv.Atoi(value.Value)
	if err != nil || n < int(SortNone) || n > int(SortGroup) {
		return fmt.Errorf("invalid sort key %q", value.Value)
	}
	*s = SortKey(n)
	return nil
}

// Shell is the login shell detected by readlink("/bin/sh").
type Shell string

// Supported shells (spec.md §6).
const (
	ShellNone Shell = "none"
	ShellBash Shell = "bash"
	ShellDash Shell = "dash"
	ShellFish Shell = "fish"
	ShellKsh  Shell = "ksh"
	ShellTcsh Shell = "tcsh"
	ShellZsh  Shell = "zsh"
)

// CaseSensitivity groups the four independent case-sensitivity flags
// spec.md §6 lists (list, search, dirjump, path completion each vary
// independently).
type CaseSensitivity struct {
	List      bool `yaml:"list"`
	Search    bool `yaml:"search"`
	DirJump   bool `yaml:"dirjump"`
	PathComp  bool `yaml:"path_comp"`
}

// Limits groups the unsigned-integer bounds from spec.md §6.
type Limits struct {
	MaxHist          uint `yaml:"max_hist"`
	MaxLog           uint `yaml:"max_log"`
	MaxDirhist       uint `yaml:"max_dirhist"`
	MaxPath          uint `yaml:"max_path"`
	MaxFiles         uint `yaml:"max_files"`
	MinNameTrim      uint `yaml:"min_name_trim"`
	MinJumpRank      uint `yaml:"min_jump_rank"`
	MaxJumpTotalRank uint `yaml:"max_jump_total_rank"`
}

// Config is tern's complete startup configuration record: the fields
// spec.md §6 says the external parser produces, plus the interactive
// line-editor preferences (profile, keybinding overrides) this core
// owns end to end.
type Config struct {
	Meta struct {
		Version       string `yaml:"version"`
		ConfigVersion string `yaml:"config-version"`
	} `yaml:"meta"`

	// SuggestionStrategy is the ordered string of single-character source
	// codes (spec.md §4.4), length <= 7 (e.g. "ahjfbec").
	SuggestionStrategy string `yaml:"suggestion_strategy"`

	CaseSensitive CaseSensitivity `yaml:"case_sensitive"`
	FuzzyMatch    bool            `yaml:"fuzzy_match"`

	AutoCD   bool `yaml:"autocd"`
	AutoOpen bool `yaml:"auto_open"`
	AutoJump bool `yaml:"autojump"`

	ShowHidden   bool `yaml:"show_hidden"`
	FoldersFirst bool `yaml:"folders_first"`
	LongView     bool `yaml:"long_view"`
	Pager        bool `yaml:"pager"`
	Columns      bool `yaml:"columns"`

	Highlight     bool `yaml:"highlight"`
	Suggestions   bool `yaml:"suggestions"`
	WarningPrompt bool `yaml:"warning_prompt"`
	Icons         bool `yaml:"icons"`
	Tips          bool `yaml:"tips"`
	Classify      bool `yaml:"classify"`
	FilesCounter  bool `yaml:"files_counter"`

	Limits Limits `yaml:"limits"`

	Sort        SortKey `yaml:"sort"`
	SortReverse bool    `yaml:"sort_reverse"`

	Shell  Shell  `yaml:"shell"`
	Opener string `yaml:"opener"`

	PromptStr        string `yaml:"prompt_str"`
	WarningPromptStr string `yaml:"warning_prompt_str"`
	DividerChar      string `yaml:"divider_char"`

	Interactive struct {
		Profile     string                 `yaml:"profile,omitempty"`
		Keybindings map[string]interface{} `yaml:"keybindings,omitempty"`
	} `yaml:"interactive"`

	Aliases map[string]interface{} `yaml:"aliases"`
}

// Manager handles configuration loading, saving, and operations.
type Manager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a configuration manager seeded with defaults.
func NewConfigManager() *Manager {
	return &Manager{config: getDefaultConfig()}
}

// GetConfig returns the current configuration.
func (cm *Manager) GetConfig() *Config {
	return cm.config
}

// getDefaultConfig returns the default configuration values, matching
// clifm's stock defaults (original_source/src/init.c) where spec.md §6
// is silent on a concrete default.
func getDefaultConfig() *Config {
	cfg := &Config{
		Aliases:            make(map[string]interface{}),
		SuggestionStrategy: "ajbcefh",
		FuzzyMatch:         true,
		AutoCD:             true,
		ShowHidden:         false,
		FoldersFirst:       true,
		LongView:           false,
		Pager:              false,
		Columns:            true,
		Highlight:          true,
		Suggestions:        true,
		WarningPrompt:      true,
		Icons:              false,
		Tips:               true,
		Classify:           true,
		FilesCounter:       true,
		Sort:               SortName,
		Shell:              ShellBash,
		PromptStr:          "\\u@\\h \\W ",
		WarningPromptStr:   "! ",
		DividerChar:        "-",
		Limits: Limits{
			MaxHist:          5000,
			MaxLog:           1000,
			MaxDirhist:       100,
			MaxPath:          40,
			MaxFiles:         0,
			MinNameTrim:      20,
			MinJumpRank:      1,
			MaxJumpTotalRank: 0,
		},
	}
	cfg.CaseSensitive.List = false
	cfg.CaseSensitive.Search = false
	cfg.CaseSensitive.DirJump = false
	cfg.CaseSensitive.PathComp = false
	cfg.Interactive.Profile = "default"
	cfg.Meta.Version = "dev"
	cfg.Meta.ConfigVersion = "1.0"
	return cfg
}
