package speech

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// AudioCache keeps the most recently synthesized clips in memory so repeated
// phrases ("Serves 5.", "Added to favorites.") are not synthesized twice.
// Keys are sha256(voice + ":" + text). Safe for concurrent use.
type AudioCache struct {
	mu      sync.Mutex
	voice   string
	limit   int
	order   *list.List // front = most recent; values are keys
	entries map[string]*list.Element
	data    map[string][]byte
	hits    int64
	misses  int64
	log     *logger.Logger
}

// NewAudioCache creates a cache holding at most limit clips.
func NewAudioCache(voice string, limit int, log *logger.Logger) *AudioCache {
	if limit < 1 {
		limit = 1
	}
	return &AudioCache{
		voice:   voice,
		limit:   limit,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		data:    make(map[string][]byte),
		log:     log,
	}
}

// Get returns the clip for text, if cached.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.key(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return c.data[key], true
}

// Put stores a clip, evicting the least recently used one when full.
func (c *AudioCache) Put(text string, audio []byte) {
	key := c.key(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		c.data[key] = audio
		return
	}
	c.entries[key] = c.order.PushFront(key)
	c.data[key] = audio

	for c.order.Len() > c.limit {
		oldest := c.order.Back()
		k := oldest.Value.(string)
		c.order.Remove(oldest)
		delete(c.entries, k)
		delete(c.data, k)
		c.log.Debug("audio cache: evicted %s", k[:8])
	}
}

// Len returns the number of cached clips.
func (c *AudioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *AudioCache) key(text string) string {
	sum := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(sum[:])
}
