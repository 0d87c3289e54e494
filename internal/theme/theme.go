// Package theme owns the light/dark preference of the dashboard.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

// Name selects a color palette.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Preference is the user's theme choice.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"
)

// ParsePreference converts s into a Preference. An empty string means system.
func ParsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case "", PreferenceSystem:
		return PreferenceSystem, nil
	case PreferenceLight:
		return PreferenceLight, nil
	case PreferenceDark:
		return PreferenceDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Detector reports whether the host prefers a dark palette.
type Detector func() bool

// DetectTerminal asks the terminal for its background color. Terminals that
// do not answer are treated as dark.
func DetectTerminal() bool {
	return lipgloss.HasDarkBackground()
}

// State holds the active theme and persists changes under globalSettings.
type State struct {
	store  *viewstate.Store
	detect Detector
	pref   Preference
	dark   bool
}

// New restores the theme from store. When the saved preference is system (or
// missing) the detector decides; otherwise the saved dark flag wins, falling
// back to the detector.
func New(store *viewstate.Store, detect Detector) *State {
	if detect == nil {
		detect = DetectTerminal
	}
	s := &State{store: store, detect: detect, pref: PreferenceSystem}

	if saved, ok := store.GetString(viewstate.GlobalSettingsKey, "currentTheme"); ok {
		if pref, err := ParsePreference(saved); err == nil {
			s.pref = pref
		}
	}

	if s.pref == PreferenceSystem {
		s.dark = detect()
		return s
	}

	if saved, ok := store.Get(viewstate.GlobalSettingsKey, "isDarkMode").(bool); ok {
		s.dark = saved
	} else {
		s.dark = detect()
	}
	return s
}

// IsDark reports whether the dark palette is active.
func (s *State) IsDark() bool { return s.dark }

// Preference returns the saved preference.
func (s *State) Preference() Preference { return s.pref }

// Name returns the active palette.
func (s *State) Name() Name {
	if s.dark {
		return Dark
	}
	return Light
}

// ToggleDarkMode flips the palette and persists the flag.
func (s *State) ToggleDarkMode() {
	s.SetDarkMode(!s.dark)
}

// SetDarkMode sets and persists the dark flag.
func (s *State) SetDarkMode(dark bool) {
	_ = s.store.Set(viewstate.GlobalSettingsKey, []string{"isDarkMode"}, dark)
	s.dark = dark
}

// SetCurrentTheme persists pref without changing the palette.
func (s *State) SetCurrentTheme(pref Preference) {
	_ = s.store.Set(viewstate.GlobalSettingsKey, []string{"currentTheme"}, string(pref))
	s.pref = pref
}

// SystemChanged follows the host preference while the user preference is system.
func (s *State) SystemChanged(dark bool) {
	if s.pref == PreferenceSystem {
		s.SetDarkMode(dark)
	}
}

// ShortcutToggle pins the opposite explicit theme and switches to it.
func (s *State) ShortcutToggle() {
	if s.dark {
		s.SetCurrentTheme(PreferenceLight)
	} else {
		s.SetCurrentTheme(PreferenceDark)
	}
	s.ToggleDarkMode()
}

// FollowSystem resets the preference to system and applies the detected palette.
func (s *State) FollowSystem() {
	s.SetCurrentTheme(PreferenceSystem)
	s.SystemChanged(s.detect())
}
