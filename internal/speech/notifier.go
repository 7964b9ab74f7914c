package speech

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// SpeakingNotifier prints through an inner notifier and queues the same
// message on the Mouth.
type SpeakingNotifier struct {
	text  domain.Notifier
	mouth *Mouth
	log   *logger.Logger
}

// NewSpeakingNotifier creates a notifier that both prints and speaks.
func NewSpeakingNotifier(text domain.Notifier, mouth *Mouth, log *logger.Logger) *SpeakingNotifier {
	return &SpeakingNotifier{text: text, mouth: mouth, log: log}
}

// Notify prints the message and speaks it at normal priority.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.mouth.Say(cleanForSpeech(message), PriorityNormal)
	return nil
}

// NotifyUrgent prints the message and speaks it ahead of everything else.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.mouth.Say(cleanForSpeech(message), PriorityHigh)
	return nil
}

var (
	ansiCodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	glyphs    = regexp.MustCompile(`[•♥♡│]`)
)

func cleanForSpeech(msg string) string {
	cleaned := ansiCodes.ReplaceAllString(msg, "")
	cleaned = glyphs.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
