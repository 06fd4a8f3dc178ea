package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePlayer struct {
	plays int
}

func (f *fakePlayer) Play() { f.plays++ }

func TestWatcherPlaysOnlyOnRisingEdge(t *testing.T) {
	fake := &fakePlayer{}
	w := &Watcher{beeper: fake}

	w.Poll(false)
	assert.Equal(t, 0, fake.plays)

	w.Poll(true)
	assert.Equal(t, 1, fake.plays, "rising edge should trigger exactly one play")

	w.Poll(true)
	assert.Equal(t, 1, fake.plays, "sustained active should not replay")

	w.Poll(false)
	w.Poll(true)
	assert.Equal(t, 2, fake.plays, "a second rising edge plays again")
}
