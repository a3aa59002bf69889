package settings_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/flyre/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data    map[string][]byte
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) ObjectPropExists(obj, prop string) bool {
	_, ok := m.data[obj+"/"+prop]
	return ok
}

func (m *memStore) LoadObjectProp(obj, prop string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data[obj+"/"+prop], nil
}

func (m *memStore) SaveObjectProp(obj, prop string, data []byte) error {
	m.data[obj+"/"+prop] = data
	return nil
}

func TestLoadDefaults(t *testing.T) {
	assert.Equal(t, settings.Default(), settings.Load(nil))
	assert.Equal(t, settings.Default(), settings.Load(newMemStore()))
}

func TestSaveAndLoad(t *testing.T) {
	store := newMemStore()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s := settings.Default()
	s.Mute = true
	s.AddScore("ada", 1200, at)
	require.NoError(t, settings.Save(store, s))

	loaded := settings.Load(store)
	assert.True(t, loaded.Mute)
	assert.False(t, loaded.Debug)
	assert.Equal(t, 0.7, loaded.MusicVolume)
	require.Len(t, loaded.HighScores, 1)
	assert.Equal(t, "ada", loaded.HighScores[0].Name)
	assert.True(t, at.Equal(loaded.HighScores[0].At))
}

func TestLoadFallsBackOnBadData(t *testing.T) {
	store := newMemStore()
	store.data["settings/global"] = []byte("debug: [not a bool")
	assert.Equal(t, settings.Default(), settings.Load(store))

	store = newMemStore()
	store.data["settings/global"] = []byte("debug: true")
	store.loadErr = errors.New("disk on fire")
	assert.Equal(t, settings.Default(), settings.Load(store))
}

func TestSaveWithoutStore(t *testing.T) {
	assert.ErrorIs(t, settings.Save(nil, settings.Default()), settings.ErrNoStore)
}

func TestToggles(t *testing.T) {
	s := settings.Default()
	assert.True(t, s.ToggleMute())
	assert.Equal(t, 0.0, s.Volume())
	assert.False(t, s.ToggleMute())
	assert.Equal(t, 0.7, s.Volume())
	assert.True(t, s.ToggleDebug())
}

func TestHighScores(t *testing.T) {
	s := settings.Default()
	now := time.Now()

	assert.Equal(t, 0, s.AddScore("a", 100, now))
	assert.Equal(t, 0, s.AddScore("b", 300, now))
	assert.Equal(t, 2, s.AddScore("c", 100, now), "ties rank after older scores")
	assert.Equal(t, 300, s.Best())

	for i := range settings.MaxHighScores {
		s.AddScore("filler", 1000+i, now)
	}
	assert.Len(t, s.HighScores, settings.MaxHighScores)
	assert.Equal(t, -1, s.AddScore("late", 1, now))
	assert.Equal(t, 1009, s.Best())
}
