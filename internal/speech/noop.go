// Package speech reads recipes aloud through Azure text-to-speech and turns
// spoken commands into text with whisper.
package speech

import (
	"context"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.SpeechProvider = (*NoOp)(nil)

// NoOp is the speech provider used when speech is disabled.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op speech provider.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Listen always fails with domain.ErrNotImplemented.
func (n *NoOp) Listen(ctx context.Context) (string, error) {
	return "", domain.ErrNotImplemented
}

// Speak only logs.
func (n *NoOp) Speak(ctx context.Context, text string) error {
	n.log.Debug("speech off, would say %q", text)
	return nil
}
