// Package voice is the best-effort audio readout side channel. It runs
// only after a primary result is committed and its failures never
// surface past the log.
package voice

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// Speaker synthesizes speech for a line of text.
type Speaker interface {
	// Speak returns encoded audio for text.
	Speak(ctx context.Context, text string) ([]byte, error)
	// Name identifies the provider in logs.
	Name() string
}

// Announce synthesizes text and writes the audio to outPath. Every
// failure is logged at warn and absorbed; callers never branch on it.
func Announce(ctx context.Context, sp Speaker, log zerolog.Logger, text, outPath string) {
	if sp == nil || text == "" {
		return
	}
	audio, err := sp.Speak(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("provider", sp.Name()).Msg("voice readout failed")
		return
	}
	if outPath == "" {
		return
	}
	if err := os.WriteFile(outPath, audio, 0o644); err != nil {
		log.Warn().Err(err).Str("path", outPath).Msg("voice audio write failed")
	}
}
