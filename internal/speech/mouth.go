package speech

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// MouthOption configures the Mouth.
type MouthOption func(*Mouth)

// WithCacheSize sets how many synthesized clips are kept in memory.
func WithCacheSize(n int) MouthOption {
	return func(m *Mouth) { m.cacheSize = n }
}

// WithVoiceName keys the audio cache by voice so a voice change never plays
// stale clips.
func WithVoiceName(voice string) MouthOption {
	return func(m *Mouth) { m.voice = voice }
}

// Mouth serializes speech output: queue -> synthesize -> play. Only one
// thing speaks at a time and higher priority items go first.
type Mouth struct {
	tts    Synthesizer
	player AudioPlayer
	cache  *AudioCache
	log    *logger.Logger

	voice     string
	cacheSize int

	mu       sync.Mutex
	queue    []Request
	notify   chan struct{}
	speaking bool
	idle     chan struct{} // closed and replaced whenever the queue drains
}

// NewMouth creates a speech dispatcher.
func NewMouth(tts Synthesizer, player AudioPlayer, log *logger.Logger, opts ...MouthOption) *Mouth {
	m := &Mouth{
		tts:       tts,
		player:    player,
		log:       log,
		voice:     DefaultVoice,
		cacheSize: 64,
		notify:    make(chan struct{}, 1),
		idle:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = NewAudioCache(m.voice, m.cacheSize, log)
	return m
}

// Say queues text at the given priority. Non-blocking. Anything at
// PriorityNormal or above drops queued PriorityLow items.
func (m *Mouth) Say(text string, priority Priority) {
	if text == "" {
		return
	}

	m.mu.Lock()
	if priority >= PriorityNormal {
		n := 0
		for _, r := range m.queue {
			if r.Priority > PriorityLow {
				m.queue[n] = r
				n++
			}
		}
		m.queue = m.queue[:n]
	}
	m.queue = append(m.queue, Request{Text: text, Priority: priority, QueuedAt: time.Now()})
	qLen := len(m.queue)
	m.mu.Unlock()

	m.log.Debug("mouth: queued (priority=%d, queue_len=%d): %s", priority, qLen, truncate(text, 60))

	select {
	case m.notify <- struct{}{}:
	default: // already signaled
	}
}

// Interrupt stops playback and clears the queue.
func (m *Mouth) Interrupt() {
	m.mu.Lock()
	m.queue = m.queue[:0]
	m.mu.Unlock()
	m.player.Stop()
	m.log.Debug("mouth: interrupted")
}

// IsSpeaking reports whether something is being synthesized or played.
func (m *Mouth) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking
}

// QueueLen returns the number of pending requests.
func (m *Mouth) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Idle returns a channel closed the next time the queue is empty and
// nothing is playing.
func (m *Mouth) Idle() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.speaking && len(m.queue) == 0 {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return m.idle
}

// Cache exposes the audio cache for stats.
func (m *Mouth) Cache() *AudioCache { return m.cache }

// Start runs the speech worker until ctx is cancelled. Non-blocking.
func (m *Mouth) Start(ctx context.Context) {
	go m.loop(ctx)
	m.log.Info("mouth started")
}

func (m *Mouth) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.log.Info("mouth stopped")
			return
		case <-m.notify:
			m.drain(ctx)
		}
	}
}

func (m *Mouth) drain(ctx context.Context) {
	for ctx.Err() == nil {
		req, ok := m.dequeue()
		if !ok {
			return
		}
		m.speak(ctx, req)
	}
}

// dequeue pops the highest priority request, oldest first among equals.
// When the queue is empty it marks the mouth idle.
func (m *Mouth) dequeue() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		m.speaking = false
		close(m.idle)
		m.idle = make(chan struct{})
		return Request{}, false
	}

	best := 0
	for i, r := range m.queue {
		if r.Priority > m.queue[best].Priority {
			best = i
		}
	}
	req := m.queue[best]
	m.queue = append(m.queue[:best], m.queue[best+1:]...)
	m.speaking = true
	return req, true
}

func (m *Mouth) speak(ctx context.Context, req Request) {
	m.log.Debug("mouth: speaking (priority=%d, waited=%s): %s",
		req.Priority, time.Since(req.QueuedAt).Round(time.Millisecond), truncate(req.Text, 60))

	audio, ok := m.cache.Get(req.Text)
	if !ok {
		var err error
		audio, err = m.tts.Synthesize(ctx, req.Text)
		if err != nil {
			m.log.Error("mouth: synthesis failed: %v", err)
			return
		}
		m.cache.Put(req.Text, audio)
	}
	if err := m.player.Play(audio); err != nil {
		m.log.Error("mouth: playback failed: %v", err)
	}
}

// truncate shortens a string for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
