package player

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

const eventBufferSize = 64

// Player streams a remote MP3 through the beep speaker.
type Player struct {
	mu sync.Mutex

	log     *zap.Logger
	fetcher *Fetcher

	status   Status
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	format   beep.Format
	ended    bool

	// wantPlay holds a Play issued before the stream was ready or while it
	// sat at its end.
	wantPlay bool
	// gen identifies the current Load; results of older loads are discarded.
	gen        uint64
	loadCancel context.CancelFunc

	volumeLevel float64
	muted       bool

	listenerMu sync.RWMutex
	listener   Listener

	events   chan func()
	seekChan chan seekRequest

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// New creates a player that fetches tracks with f.
func New(f *Fetcher, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		log:         log,
		fetcher:     f,
		status:      Empty,
		volumeLevel: 1,
		events:      make(chan func(), eventBufferSize),
		seekChan:    make(chan seekRequest, 1),
		ctx:         ctx,
		cancel:      cancel,
	}
	go p.eventLoop()
	go p.seekLoop()
	return p
}

// Status returns the current load status.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// SetListener replaces the event listener.
func (p *Player) SetListener(l Listener) {
	p.listenerMu.Lock()
	p.listener = l
	p.listenerMu.Unlock()
}

func (p *Player) currentListener() Listener {
	p.listenerMu.RLock()
	defer p.listenerMu.RUnlock()
	return p.listener
}

// emit queues fn for the event goroutine. Callers must not hold p.mu or the
// speaker lock: the queue may be full and fn may call back into the player.
func (p *Player) emit(fn func()) {
	select {
	case p.events <- fn:
	case <-p.ctx.Done():
	}
}

func (p *Player) emitReady(d time.Duration) {
	p.emit(func() {
		if l := p.currentListener(); l != nil {
			l.OnReady(d)
		}
	})
}

func (p *Player) emitRate(rate float64) {
	p.emit(func() {
		if l := p.currentListener(); l != nil {
			l.OnRateChanged(rate)
		}
	})
}

func (p *Player) emitFailure(err error) {
	p.emit(func() {
		if l := p.currentListener(); l != nil {
			l.OnFailure(err)
		}
	})
}

// eventLoop delivers listener events and seek completions in order.
func (p *Player) eventLoop() {
	for {
		select {
		case fn := <-p.events:
			fn()
		case <-p.ctx.Done():
			return
		}
	}
}

// Close stops playback and releases the stream. Safe to call more than once.
func (p *Player) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		if p.loadCancel != nil {
			p.loadCancel()
		}
		err = p.releaseLocked()
		p.status = Closed
		p.mu.Unlock()
		p.cancel()
	})
	return err
}

// releaseLocked detaches the current stream from the speaker and closes it.
func (p *Player) releaseLocked() error {
	if p.streamer == nil {
		return nil
	}
	speaker.Clear()
	err := p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.ended = false
	return err
}
