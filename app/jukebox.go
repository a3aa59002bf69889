package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/plus3/flyre/world"
)

// Track is a playable piece of music. *audio.Player is one.
type Track interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

var (
	_ Track       = (*audio.Player)(nil)
	_ world.Music = (*Jukebox)(nil)
)

// LoadLoop decodes a WAV stream into a track that loops forever.
func LoadLoop(ctx *audio.Context, r io.Reader) (*audio.Player, error) {
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	return player, nil
}

// Jukebox plays one registered track at a time.
type Jukebox struct {
	tracks  map[string]Track
	current string
	volume  float64
	muted   bool
}

func NewJukebox(volume float64) *Jukebox {
	return &Jukebox{
		tracks: make(map[string]Track),
		volume: min(max(volume, 0), 1),
	}
}

// Register makes t playable under name.
func (j *Jukebox) Register(name string, t Track) {
	j.tracks[name] = t
}

// Play switches to the named track. Playing the current track again keeps
// it going from where it is.
func (j *Jukebox) Play(name string) {
	t, ok := j.tracks[name]
	if !ok {
		log.Printf("[Jukebox] Warning: Track not found: %s", name)
		return
	}
	if name == j.current && t.IsPlaying() {
		return
	}

	j.Stop()
	t.SetVolume(j.effectiveVolume())
	if err := t.Rewind(); err != nil {
		log.Printf("[Jukebox] Warning: Failed to rewind track %s: %v", name, err)
	}
	t.Play()
	j.current = name
	log.Printf("[Jukebox] Playing %s (volume: %.2f)", name, j.effectiveVolume())
}

// Stop pauses the current track.
func (j *Jukebox) Stop() {
	if t, ok := j.tracks[j.current]; ok {
		t.Pause()
	}
	j.current = ""
}

// Current returns the name of the track last played.
func (j *Jukebox) Current() string {
	return j.current
}

func (j *Jukebox) SetMuted(muted bool) {
	j.muted = muted
	j.apply()
}

func (j *Jukebox) Muted() bool {
	return j.muted
}

func (j *Jukebox) SetVolume(volume float64) {
	j.volume = min(max(volume, 0), 1)
	j.apply()
}

func (j *Jukebox) effectiveVolume() float64 {
	if j.muted {
		return 0
	}
	return j.volume
}

func (j *Jukebox) apply() {
	if t, ok := j.tracks[j.current]; ok {
		t.SetVolume(j.effectiveVolume())
	}
}
