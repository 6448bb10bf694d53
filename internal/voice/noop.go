package voice

import "context"

// Noop is the speaker used when no TTS key is configured. It produces
// no audio and never fails.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Speak(ctx context.Context, text string) ([]byte, error) {
	return nil, nil
}
