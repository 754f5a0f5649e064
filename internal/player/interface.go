// internal/player/interface.go
package player

import "time"

// Listener receives engine events. Implementations must not block for long:
// events are delivered one at a time, in the order the engine produced them.
type Listener interface {
	// OnReady reports that the track is decoded and its duration is known.
	OnReady(duration time.Duration)
	// OnRateChanged reports that playback started (rate 1) or stopped (rate 0).
	OnRateChanged(rate float64)
	// OnFailure reports a load or decode failure.
	OnFailure(err error)
}

// Interface defines the media engine contract for dependency injection and testing.
type Interface interface {
	// SetListener replaces the event listener. A nil listener stops observation.
	SetListener(l Listener)
	// Load starts fetching url. Readiness or failure is reported to the listener.
	Load(url string)
	Play()
	Pause()
	Position() time.Duration
	// Seek moves playback to an absolute position. onComplete runs once the
	// seek has been applied, on the engine's event goroutine.
	Seek(to time.Duration, onComplete func(ok bool))
	// SetVolume sets the volume level (0.0 to 1.0).
	SetVolume(level float64)
	Close() error
}

// Muter is implemented by engines that can silence output without losing
// the volume level.
type Muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// Verify Player implements Interface at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Muter     = (*Player)(nil)
)
