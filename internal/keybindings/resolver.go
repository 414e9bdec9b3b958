// Package keybindings provides a configurable keybinding system for the
// line editor: a mapping from escape-sequence prefix to a named action,
// populated at startup and not mutated during the event loop (spec §3's
// "key-binding table").
package keybindings

import (
	"fmt"

	"github.com/tern-fm/tern/internal/config"
)

// Resolver performs layered keybinding resolution: built-in defaults, then
// the selected profile, then platform-specific overrides, then the user's
// own configuration. Each layer only overrides actions it actually sets.
type Resolver struct {
	platform   string
	userConfig *config.Config
	cache      map[Profile]*KeyBindingMap
}

// NewResolver creates a resolver for the detected platform.
func NewResolver(userConfig *config.Config) *Resolver {
	return &Resolver{
		platform:   DetectPlatform(),
		userConfig: userConfig,
		cache:      make(map[Profile]*KeyBindingMap),
	}
}

// ForceEnvironment overrides the detected platform (primarily for tests).
func (r *Resolver) ForceEnvironment(platform string) {
	if platform != "" {
		r.platform = platform
	}
	r.ClearCache()
}

// ClearCache discards resolved bindings, forcing a fresh resolution on the
// next call to Resolve. Used by ForceEnvironment.
func (r *Resolver) ClearCache() {
	r.cache = make(map[Profile]*KeyBindingMap)
}

// Resolve computes the effective KeyBindingMap for a profile.
func (r *Resolver) Resolve(profile Profile) (*KeyBindingMap, error) {
	if cached, ok := r.cache[profile]; ok {
		return cached, nil
	}
	if !profile.IsValid() {
		return nil, fmt.Errorf("unknown keybinding profile: %s", profile)
	}

	result := DefaultKeyBindingMap()
	r.applyProfile(result, builtinProfile(profile))
	r.applyPlatform(result)
	if r.userConfig != nil {
		r.applyUserConfig(result)
	}

	r.cache[profile] = result
	return result, nil
}

func (r *Resolver) applyProfile(result *KeyBindingMap, prof *KeyBindingProfile) {
	if prof == nil {
		return
	}
	for _, a := range AllActions() {
		if keys, ok := prof.Get(a); ok {
			result.Set(a, keys)
		}
	}
}

func (r *Resolver) applyPlatform(result *KeyBindingMap) {
	for action, keys := range GetPlatformSpecificKeyBindings(r.platform) {
		result.Set(action, keys)
	}
}

func (r *Resolver) applyUserConfig(result *KeyBindingMap) {
	for action, raw := range r.userConfig.Interactive.Keybindings {
		a := Action(action)
		keys, err := ParseKeyStrokes(raw)
		if err != nil {
			continue // best-effort: a malformed override is dropped, not fatal (spec §7)
		}
		result.Set(a, keys)
	}
}
