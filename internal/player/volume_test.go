package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGain(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{1.5, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-0.3, -10},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, gain(tt.level), 1e-9, "level %v", tt.level)
	}
}

func TestSetVolume_ClampsWithoutStream(t *testing.T) {
	p := &Player{}

	p.SetVolume(1.7)
	assert.InDelta(t, 1.0, p.Volume(), 1e-9)

	p.SetVolume(-1)
	assert.InDelta(t, 0.0, p.Volume(), 1e-9)

	p.SetVolume(0.4)
	assert.InDelta(t, 0.4, p.Volume(), 1e-9)
}

func TestNewVolume_CarriesLevelAndMute(t *testing.T) {
	p := &Player{volumeLevel: 0.5, muted: true}

	v := p.newVolumeLocked(nil)

	assert.InDelta(t, -1, v.Volume, 1e-9)
	assert.InDelta(t, 2, v.Base, 1e-9)
	assert.True(t, v.Silent)
}

func TestSetMuted_WithoutStream(t *testing.T) {
	p := &Player{}

	p.SetMuted(true)
	assert.True(t, p.Muted())

	p.SetMuted(false)
	assert.False(t, p.Muted())
}
