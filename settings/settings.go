// Package settings holds the few user preferences that outlive a run: the
// debug overlay toggle, mute, music volume and the high score table.
//
// Settings are a plain value passed to the states that need them. They are
// read once at startup with Load and written back with Save, through any
// Store; a *gdata.Manager is the usual one.
package settings

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MaxHighScores is the length of the high score table.
const MaxHighScores = 10

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Score is one entry of the high score table.
type Score struct {
	Name   string    `yaml:"name"`
	Points int       `yaml:"points"`
	At     time.Time `yaml:"at"`
}

type Settings struct {
	Debug       bool    `yaml:"debug"`
	Mute        bool    `yaml:"mute"`
	MusicVolume float64 `yaml:"musicVolume"`
	HighScores  []Score `yaml:"highScores"`
}

func Default() *Settings {
	return &Settings{MusicVolume: 0.7}
}

// ToggleDebug flips the debug overlay and returns the new value.
func (s *Settings) ToggleDebug() bool {
	s.Debug = !s.Debug
	return s.Debug
}

// ToggleMute flips mute and returns the new value.
func (s *Settings) ToggleMute() bool {
	s.Mute = !s.Mute
	return s.Mute
}

// Volume is the effective music volume.
func (s *Settings) Volume() float64 {
	if s.Mute {
		return 0
	}
	return min(max(s.MusicVolume, 0), 1)
}

// AddScore records a score and returns its rank, starting at 0, or -1 if it
// did not make the table. Equal scores rank after the older ones.
func (s *Settings) AddScore(name string, points int, at time.Time) int {
	rank := len(s.HighScores)
	for i, hs := range s.HighScores {
		if points > hs.Points {
			rank = i
			break
		}
	}
	if rank >= MaxHighScores {
		return -1
	}

	s.HighScores = slices.Insert(s.HighScores, rank, Score{Name: name, Points: points, At: at})
	if len(s.HighScores) > MaxHighScores {
		s.HighScores = s.HighScores[:MaxHighScores]
	}
	return rank
}

// Best is the top score, or 0 with an empty table.
func (s *Settings) Best() int {
	if len(s.HighScores) == 0 {
		return 0
	}
	return s.HighScores[0].Points
}

// Store persists raw settings data. *gdata.Manager implements it.
type Store interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

var _ Store = (*gdata.Manager)(nil)

// ErrNoStore is returned by Save without a store.
var ErrNoStore = errors.New("no settings store")

// Open opens the per-user data directory of appName.
func Open(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open data dir for %s: %w", appName, err)
	}
	return m, nil
}

// Load reads the settings from store. A nil store, missing data or
// unreadable data all give the defaults; the failures are logged.
func Load(store Store) *Settings {
	s, err := load(store)
	if err != nil {
		log.Printf("[Settings] Warning: %v (using defaults)", err)
		return Default()
	}
	return s
}

func load(store Store) (*Settings, error) {
	if store == nil || !store.ObjectPropExists(settingsObject, settingsProperty) {
		return Default(), nil
	}

	data, err := store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if len(s.HighScores) > MaxHighScores {
		s.HighScores = s.HighScores[:MaxHighScores]
	}

	log.Printf("[Settings] Loaded (%d high scores)", len(s.HighScores))
	return s, nil
}

// Save writes s to store.
func Save(store Store, s *Settings) error {
	if store == nil {
		return ErrNoStore
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[Settings] Saved")
	return nil
}
