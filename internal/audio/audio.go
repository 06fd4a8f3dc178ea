// Package audio plays a beep each time the VM's sound timer becomes active,
// using faiface/beep for decoding and output.
package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Beeper decodes and plays a single mp3 asset on demand.
type Beeper struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// Load opens path, decodes it as mp3, and initializes the speaker at the
// decoded sample rate. The returned Beeper's Play method re-triggers the
// same streamer from its start each time.
func Load(path string) (*Beeper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	return &Beeper{streamer: streamer, format: format}, nil
}

// Play rewinds and plays the beep once, fire-and-forget.
func (b *Beeper) Play() {
	if err := b.streamer.Seek(0); err != nil {
		return
	}
	speaker.Play(b.streamer)
}

// Close releases the underlying audio stream.
func (b *Beeper) Close() error {
	return b.streamer.Close()
}

// player is the seam Watcher needs from a Beeper; satisfied by *Beeper and
// by test doubles.
type player interface {
	Play()
}

// Watcher plays a player exactly once per rising edge of VM.SoundActive(),
// rather than once per tick while it stays active.
type Watcher struct {
	beeper    player
	wasActive bool
}

// NewWatcher wraps b for edge-triggered playback.
func NewWatcher(b *Beeper) *Watcher {
	return &Watcher{beeper: b}
}

// Poll should be called once per timer tick with the VM's current
// SoundActive() value.
func (w *Watcher) Poll(active bool) {
	if active && !w.wasActive {
		w.beeper.Play()
	}
	w.wasActive = active
}
