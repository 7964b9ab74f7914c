package speech

import "time"

// DefaultVoice is the Azure neural voice used for reading recipes.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AvaNeural"

// DefaultAudioFormat is what Azure returns and the player expects.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching the default format.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Priority orders queued speech. Higher value speaks first.
type Priority int

const (
	PriorityLow    Priority = iota // confirmations, chatter
	PriorityNormal                 // recipe reading, results
	PriorityHigh                   // errors
)

// Request is a queued item waiting to be spoken.
type Request struct {
	Text     string
	Priority Priority
	QueuedAt time.Time
}
