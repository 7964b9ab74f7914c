package speech

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// Default wake phrases. When wake words are set, only transcripts starting
// with one of them (case-insensitive) are delivered, minus the phrase.
var defaultWakeWords = []string{
	"hey forkify",
	"forkify",
	"hey fork",
	"ok chef",
}

// envAnnotation matches whisper annotations like "(keyboard clicking)" or
// "[BLANK_AUDIO]".
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z_][a-zA-Z_\s]*[\)\]]`)

// timestampPrefix matches "[00:00:00.000 --> 00:00:05.000]".
var timestampPrefix = regexp.MustCompile(`^\[[0-9:.]+\s*-->\s*[0-9:.]+\]\s*`)

// hallucinations are what whisper tends to produce from silence.
var hallucinations = map[string]bool{
	"...":                     true,
	"you":                     true,
	"thank you.":              true,
	"thanks for watching!":    true,
	"thank you for watching.": true,
	"bye.":                    true,
}

// transcribeTimeout bounds the wait for whisper after a chunk is recorded.
const transcribeTimeout = 30 * time.Second

// EarOption configures the Ear.
type EarOption func(*Ear)

// WithRecordDuration sets the length of each recorded chunk.
func WithRecordDuration(d time.Duration) EarOption {
	return func(e *Ear) {
		if d > 0 {
			e.recordDuration = d
		}
	}
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) EarOption {
	return func(e *Ear) { e.tempDir = dir }
}

// WithWakeWords overrides the wake phrases. No words means every
// transcript is delivered.
func WithWakeWords(words ...string) EarOption {
	return func(e *Ear) { e.wakeWords = words }
}

// Ear turns microphone input into text with a local whisper model. It
// records fixed-length chunks, transcribes each, and delivers non-empty
// commands on C. While the Mouth is talking the Ear waits, so it never
// transcribes its own voice.
type Ear struct {
	whisperBin string
	modelPath  string
	tempDir    string
	log        *logger.Logger
	mouth      *Mouth // optional

	wakeWords      []string
	recordDuration time.Duration
	record         func(ctx context.Context, d time.Duration) string

	mu     sync.Mutex
	muted  bool
	textCh chan string
}

// NewEar creates a voice input listener.
//
//   - whisperBin: path to the whisper-cli executable
//   - modelPath:  path to the GGML model file
//   - mouth:      optional; listening pauses while it speaks
func NewEar(whisperBin, modelPath string, mouth *Mouth, log *logger.Logger, opts ...EarOption) *Ear {
	e := &Ear{
		whisperBin:     whisperBin,
		modelPath:      modelPath,
		tempDir:        ".forkify-stt",
		log:            log,
		mouth:          mouth,
		wakeWords:      defaultWakeWords,
		recordDuration: 4 * time.Second,
		textCh:         make(chan string, 8),
	}
	e.record = e.recordChunk
	for _, opt := range opts {
		opt(e)
	}

	if _, err := exec.LookPath(e.whisperBin); err != nil {
		log.Error("ear: whisper binary %q not found in PATH: %v", e.whisperBin, err)
	}
	return e
}

// C delivers cleaned transcripts.
func (e *Ear) C() <-chan string { return e.textCh }

// Mute stops delivering transcripts until Unmute.
func (e *Ear) Mute() {
	e.mu.Lock()
	e.muted = true
	e.mu.Unlock()
}

// Unmute resumes delivery.
func (e *Ear) Unmute() {
	e.mu.Lock()
	e.muted = false
	e.mu.Unlock()
}

func (e *Ear) isMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// Run records and transcribes until ctx is cancelled. Call it in a
// goroutine.
func (e *Ear) Run(ctx context.Context) {
	e.log.Info("ear: started (chunk=%s, wake=%v)", e.recordDuration, e.wakeWords)
	defer close(e.textCh)

	for ctx.Err() == nil {
		if e.isMuted() {
			select {
			case <-ctx.Done():
			case <-time.After(200 * time.Millisecond):
			}
			continue
		}
		if e.mouth != nil {
			select {
			case <-ctx.Done():
				continue
			case <-e.mouth.Idle():
			}
		}

		raw := e.record(ctx, e.recordDuration)
		text, ok := e.accept(raw)
		if !ok {
			continue
		}
		e.log.Debug("ear: heard %q", text)

		select {
		case e.textCh <- text:
		case <-ctx.Done():
		}
	}
	e.log.Info("ear: stopped")
}

// accept cleans a transcript and applies the wake-word filter.
func (e *Ear) accept(raw string) (string, bool) {
	text := cleanTranscription(raw)
	if text == "" {
		return "", false
	}
	if len(e.wakeWords) == 0 {
		return text, true
	}

	lower := strings.ToLower(text)
	for _, w := range e.wakeWords {
		w = strings.ToLower(w)
		if !strings.HasPrefix(lower, w) {
			continue
		}
		rest := strings.TrimLeft(text[len(w):], " ,.!?")
		if rest == "" {
			return "", false
		}
		return rest, true
	}
	return "", false
}

// recordChunk records for d and returns whisper's transcript.
func (e *Ear) recordChunk(ctx context.Context, d time.Duration) string {
	resultCh := make(chan string, 1)
	callback := func(text string) {
		select {
		case resultCh <- text:
		default:
		}
	}

	verbose := e.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(e.whisperBin, e.modelPath, e.tempDir, "wav", callback, verbose)
	if err != nil {
		e.log.Error("ear: transcriber init failed: %v", err)
		sleepCtx(ctx, 2*time.Second)
		return ""
	}
	if err := t.Start(); err != nil {
		e.log.Error("ear: recording start failed: %v", err)
		sleepCtx(ctx, 2*time.Second)
		return ""
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	t.Stop()

	select {
	case text := <-resultCh:
		return text
	case <-time.After(transcribeTimeout):
		e.log.Warn("ear: no transcript after %s", transcribeTimeout)
		return ""
	}
}

// cleanTranscription flattens whitespace and strips whisper artifacts.
// Pure noise or a known silence hallucination comes back empty.
func cleanTranscription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = timestampPrefix.ReplaceAllString(s, "")
	s = envAnnotation.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	if hallucinations[strings.ToLower(s)] {
		return ""
	}
	return strings.TrimRight(s, ".!?,")
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
