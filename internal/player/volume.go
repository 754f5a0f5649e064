package player

import (
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// silentGain is the gain used for level 0. Base-2 gain of -10 is about -60 dB.
const silentGain = -10

// gain maps a linear level in [0,1] to a base-2 gain for effects.Volume:
// 1 -> 0, 0.5 -> -1, 0.25 -> -2.
func gain(level float64) float64 {
	switch {
	case level <= 0:
		return silentGain
	case level >= 1:
		return 0
	}
	return math.Log2(level)
}

// newVolumeLocked wraps s in a volume stage carrying the current level and
// mute state. Caller holds p.mu.
func (p *Player) newVolumeLocked(s beep.Streamer) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   gain(p.volumeLevel),
		Silent:   p.muted,
	}
}

// applyVolumeLocked pushes the stored level and mute state to the live
// stream, if any. Caller holds p.mu.
func (p *Player) applyVolumeLocked() {
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Volume = gain(p.volumeLevel)
	p.volume.Silent = p.muted
	speaker.Unlock()
}

// SetVolume stores level, clamped to [0,1], and applies it to the stream.
// A muted stream keeps the level for when it is unmuted.
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = min(max(level, 0), 1)
	p.applyVolumeLocked()
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

// SetMuted silences output without touching the stored level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyVolumeLocked()
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
