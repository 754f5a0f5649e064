package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

type seekRequest struct {
	to         time.Duration
	onComplete func(ok bool)
}

// Play starts or resumes playback. Before the stream is ready the request is
// remembered and applied once decoding finishes.
func (p *Player) Play() {
	p.mu.Lock()
	if p.status == Loading {
		p.wantPlay = true
		p.mu.Unlock()
		return
	}
	if !p.status.CanPlay() || p.ctrl == nil {
		p.mu.Unlock()
		return
	}

	if p.ended {
		// The stream left the mixer when it ran out.
		speaker.Lock()
		atEnd := p.streamer.Position() >= p.streamer.Len()
		speaker.Unlock()
		if atEnd {
			// Nothing left to play: wait for a seek to move off the end.
			p.wantPlay = true
			p.mu.Unlock()
			p.log.Debug("play deferred at end of stream")
			return
		}
		p.ctrl.Paused = false
		p.startLocked(p.gen)
		p.mu.Unlock()
		p.emitRate(1)
		return
	}

	if !p.ctrl.Paused {
		p.mu.Unlock()
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.mu.Unlock()

	p.emitRate(1)
}

// Pause stops playback, keeping the current position.
func (p *Player) Pause() {
	p.mu.Lock()
	p.wantPlay = false
	if p.ctrl == nil || p.ctrl.Paused || p.ended {
		p.mu.Unlock()
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.mu.Unlock()

	p.emitRate(0)
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Seek moves the playback position to an absolute offset.
// Non-blocking: sends to a channel, dropping an older request if one is
// still pending. A dropped request never completes.
func (p *Player) Seek(to time.Duration, onComplete func(ok bool)) {
	req := seekRequest{to: to, onComplete: onComplete}
	select {
	case p.seekChan <- req:
	default:
		// Channel full, drain and send new value
		select {
		case <-p.seekChan:
		default:
		}
		select {
		case p.seekChan <- req:
		default:
		}
	}
}

// seekLoop processes seek requests sequentially.
func (p *Player) seekLoop() {
	for {
		select {
		case req := <-p.seekChan:
			ok := p.doSeek(req.to)
			if req.onComplete != nil {
				done := req.onComplete
				p.emit(func() { done(ok) })
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// doSeek performs the actual seek operation.
func (p *Player) doSeek(to time.Duration) bool {
	p.mu.Lock()
	if p.streamer == nil || p.volume == nil || !p.status.CanPlay() {
		p.mu.Unlock()
		return false
	}

	target := max(p.format.SampleRate.N(to), 0)
	target = min(target, p.streamer.Len())

	// Mute, seek, then unmute to avoid audio artifacts
	speaker.Lock()
	p.volume.Silent = true
	err := p.streamer.Seek(target)
	speaker.Unlock()
	gen := p.gen
	p.mu.Unlock()

	if err != nil {
		p.log.Warn("seek failed", zap.Duration("to", to), zap.Error(err))
	}

	// Brief pause to let buffer clear before unmuting
	time.Sleep(100 * time.Millisecond)

	p.mu.Lock()
	restarted := false
	if gen == p.gen && p.volume != nil {
		speaker.Lock()
		p.volume.Silent = p.muted
		speaker.Unlock()
		restarted = err == nil && p.restartAfterSeekLocked(target)
	}
	p.mu.Unlock()

	if restarted {
		p.emitRate(1)
	}
	return err == nil
}

// restartAfterSeekLocked re-attaches an ended stream when a Play was deferred
// at its end and the seek moved it back into the track. Caller holds p.mu.
func (p *Player) restartAfterSeekLocked(target int) bool {
	if !p.ended || !p.wantPlay || target >= p.streamer.Len() {
		return false
	}
	p.wantPlay = false
	p.ctrl.Paused = false
	p.startLocked(p.gen)
	return true
}
