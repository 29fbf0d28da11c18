package dither

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DisplayPrefs are per-user window preferences. Effect state is never stored.
type DisplayPrefs struct {
	WindowWidth  int  `yaml:"windowWidth"`
	WindowHeight int  `yaml:"windowHeight"`
	Fullscreen   bool `yaml:"fullscreen"`
}

const (
	prefsObject   = "prefs"
	prefsProperty = "display"
)

// PrefsStore loads and saves DisplayPrefs through gdata. A store opened
// without a gdata manager keeps preferences in memory only.
type PrefsStore struct {
	manager *gdata.Manager
	prefs   DisplayPrefs
	def     DisplayPrefs
}

// OpenPrefsStore opens the gdata storage for appName. When storage is
// unavailable the returned store works in memory and the error explains why.
func OpenPrefsStore(appName string, def DisplayPrefs) (*PrefsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewPrefsStore(nil, def), fmt.Errorf("open prefs storage: %w", err)
	}
	return NewPrefsStore(m, def), nil
}

// NewPrefsStore creates a store over m, which may be nil, and loads any saved
// preferences. Load failures fall back to def.
func NewPrefsStore(m *gdata.Manager, def DisplayPrefs) *PrefsStore {
	ps := &PrefsStore{manager: m, prefs: def, def: def}
	if err := ps.Load(); err != nil {
		Logger().Warn("dither: prefs load failed, using defaults", "err", err)
	}
	return ps
}

// Load replaces the in-memory preferences with the saved ones. Missing data
// resets to the defaults without error.
func (ps *PrefsStore) Load() error {
	if ps.manager == nil || !ps.manager.ObjectPropExists(prefsObject, prefsProperty) {
		ps.prefs = ps.def
		return nil
	}
	data, err := ps.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		ps.prefs = ps.def
		return fmt.Errorf("load prefs: %w", err)
	}
	loaded := ps.def
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		ps.prefs = ps.def
		return fmt.Errorf("unmarshal prefs: %w", err)
	}
	ps.prefs = loaded
	return nil
}

// Save writes the current preferences. A memory-only store returns nil.
func (ps *PrefsStore) Save() error {
	if ps.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(ps.prefs)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := ps.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// Prefs returns the current preferences.
func (ps *PrefsStore) Prefs() DisplayPrefs {
	return ps.prefs
}

// SetWindowSize records a window size. Non-positive sizes are ignored.
func (ps *PrefsStore) SetWindowSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	ps.prefs.WindowWidth, ps.prefs.WindowHeight = w, h
}

// SetFullscreen records the fullscreen flag.
func (ps *PrefsStore) SetFullscreen(on bool) {
	ps.prefs.Fullscreen = on
}

// Persistent reports whether preferences survive a restart.
func (ps *PrefsStore) Persistent() bool {
	return ps.manager != nil
}
