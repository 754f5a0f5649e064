package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// ErrClosed is reported when Load is called on a closed player.
var ErrClosed = errors.New("player closed")

// Load fetches and decodes url in the background. Any previous track is
// released first. Readiness or failure is reported to the listener.
func (p *Player) Load(url string) {
	p.mu.Lock()
	if !p.status.CanLoad() {
		p.mu.Unlock()
		p.emitFailure(ErrClosed)
		return
	}
	if p.loadCancel != nil {
		p.loadCancel()
	}
	if err := p.releaseLocked(); err != nil {
		p.log.Warn("release previous stream", zap.Error(err))
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(p.ctx)
	p.loadCancel = cancel
	p.status = Loading
	p.wantPlay = false
	p.mu.Unlock()

	go p.load(ctx, gen, url)
}

func (p *Player) load(ctx context.Context, gen uint64, url string) {
	start := time.Now()
	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		p.failLoad(gen, fmt.Errorf("fetch %s: %w", url, err))
		return
	}

	streamer, format, err := decodeGoMP3(nopCloser{bytes.NewReader(data)})
	if err != nil {
		p.failLoad(gen, fmt.Errorf("decode %s: %w", url, err))
		return
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		p.failLoad(gen, fmt.Errorf("init speaker: %w", err))
		return
	}

	p.mu.Lock()
	if gen != p.gen || p.status != Loading {
		p.mu.Unlock()
		streamer.Close()
		return
	}

	p.streamer = streamer
	p.format = format

	// Resample if the track's sample rate differs from the speaker's
	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	playing := p.wantPlay
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: !playing}
	p.volume = p.newVolumeLocked(p.ctrl)
	p.status = Ready
	p.wantPlay = false
	p.startLocked(gen)
	duration := format.SampleRate.D(streamer.Len())
	p.mu.Unlock()

	p.log.Info("stream ready",
		zap.String("url", url),
		zap.Duration("duration", duration),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Duration("elapsed", time.Since(start)))

	p.emitReady(duration)
	if playing {
		p.emitRate(1)
	}
}

func (p *Player) failLoad(gen uint64, err error) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.status = Failed
	p.wantPlay = false
	p.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		return
	}
	p.log.Error("load failed", zap.Error(err))
	p.emitFailure(err)
}

// startLocked hands the volume chain to the speaker. The callback fires when
// the stream runs out.
func (p *Player) startLocked(gen uint64) {
	p.ended = false
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go p.handleStreamEnd(gen)
	})))
}

func (p *Player) handleStreamEnd(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.streamer == nil {
		p.mu.Unlock()
		return
	}
	p.ended = true
	p.mu.Unlock()

	p.log.Debug("stream ended")
	p.emitRate(0)
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
