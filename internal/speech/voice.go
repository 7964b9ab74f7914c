package speech

import (
	"context"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

var _ domain.SpeechProvider = (*Voice)(nil)

// Voice pairs a Mouth with an optional Ear as a domain.SpeechProvider.
type Voice struct {
	mouth *Mouth
	ear   *Ear
	log   *logger.Logger
}

// NewVoice creates a speech provider. ear may be nil when voice input is
// off, in which case Listen fails with domain.ErrNotImplemented.
func NewVoice(mouth *Mouth, ear *Ear, log *logger.Logger) *Voice {
	return &Voice{mouth: mouth, ear: ear, log: log}
}

// Speak interrupts whatever is playing and reads text.
func (v *Voice) Speak(ctx context.Context, text string) error {
	v.mouth.Interrupt()
	v.mouth.Say(cleanForSpeech(text), PriorityNormal)
	return nil
}

// Listen waits for the next transcript from the Ear.
func (v *Voice) Listen(ctx context.Context) (string, error) {
	if v.ear == nil {
		return "", domain.ErrNotImplemented
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case text, ok := <-v.ear.C():
		if !ok {
			return "", context.Canceled
		}
		return text, nil
	}
}
