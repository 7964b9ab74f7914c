package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/forkify/internal/logger"
)

type fakeTTS struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (f *fakeTTS) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if f.fail {
		return nil, errors.New("synth down")
	}
	return []byte("audio:" + text), nil
}

func (f *fakeTTS) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePlayer struct {
	mu     sync.Mutex
	played []string
	stops  int
}

func (p *fakePlayer) Play(audio []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, string(audio))
	return nil
}

func (p *fakePlayer) Stop() {
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()
}

func (p *fakePlayer) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.played...)
}

func waitIdle(t *testing.T, m *Mouth) {
	t.Helper()
	select {
	case <-m.Idle():
	case <-time.After(2 * time.Second):
		t.Fatal("mouth never went idle")
	}
}

func TestMouthPriorityOrder(t *testing.T) {
	tts, player := &fakeTTS{}, &fakePlayer{}
	m := NewMouth(tts, player, logger.Discard())

	m.Say("low", PriorityLow)
	m.Say("normal", PriorityNormal) // drops "low"
	m.Say("high", PriorityHigh)
	assert.Equal(t, 2, m.QueueLen())

	idle := m.Idle()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	select {
	case <-idle:
	case <-time.After(2 * time.Second):
		t.Fatal("mouth never went idle")
	}
	assert.Equal(t, []string{"audio:high", "audio:normal"}, player.snapshot())
	assert.False(t, m.IsSpeaking())
}

func TestMouthLowPriorityKeptBehindLow(t *testing.T) {
	m := NewMouth(&fakeTTS{}, &fakePlayer{}, logger.Discard())
	m.Say("one", PriorityLow)
	m.Say("two", PriorityLow)
	assert.Equal(t, 2, m.QueueLen())
}

func TestMouthIgnoresEmptyText(t *testing.T) {
	m := NewMouth(&fakeTTS{}, &fakePlayer{}, logger.Discard())
	m.Say("", PriorityHigh)
	assert.Equal(t, 0, m.QueueLen())
}

func TestMouthCachesAudio(t *testing.T) {
	tts, player := &fakeTTS{}, &fakePlayer{}
	m := NewMouth(tts, player, logger.Discard(), WithCacheSize(4))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	m.Say("Serves 5.", PriorityNormal)
	waitIdle(t, m)
	m.Say("Serves 5.", PriorityNormal)
	waitIdle(t, m)

	assert.Equal(t, 1, tts.count())
	assert.Equal(t, []string{"audio:Serves 5.", "audio:Serves 5."}, player.snapshot())
	hits, misses := m.Cache().Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestMouthSynthesisFailureSkipsPlayback(t *testing.T) {
	tts, player := &fakeTTS{fail: true}, &fakePlayer{}
	m := NewMouth(tts, player, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	m.Say("hello", PriorityNormal)
	waitIdle(t, m)

	assert.Empty(t, player.snapshot())
	assert.Equal(t, 0, m.Cache().Len())
}

func TestMouthInterrupt(t *testing.T) {
	player := &fakePlayer{}
	m := NewMouth(&fakeTTS{}, player, logger.Discard())
	m.Say("a", PriorityNormal)
	m.Say("b", PriorityNormal)

	m.Interrupt()
	assert.Equal(t, 0, m.QueueLen())
	require.Equal(t, 1, player.stops)
}

func TestAudioCacheEvictsLeastRecent(t *testing.T) {
	c := NewAudioCache(DefaultVoice, 2, logger.Discard())
	c.Put("a", []byte("A"))
	c.Put("b", []byte("B"))
	_, _ = c.Get("a") // a is now most recent
	c.Put("c", []byte("C"))

	_, ok := c.Get("b")
	assert.False(t, ok)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("A"), got)
	assert.Equal(t, 2, c.Len())
}

func TestAudioCacheKeyedByVoice(t *testing.T) {
	ava := NewAudioCache("en-US-AvaNeural", 4, logger.Discard())
	guy := NewAudioCache("en-US-GuyNeural", 4, logger.Discard())
	assert.NotEqual(t, ava.key("hello"), guy.key("hello"))
}
