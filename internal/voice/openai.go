package voice

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI synthesizes speech through the OpenAI TTS API.
type OpenAI struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

// NewOpenAI builds a speaker using the nova voice, which reads medical
// summaries in a warm, natural register.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(apiKey),
		voice:  openai.VoiceNova,
	}
}

func (o *OpenAI) Name() string { return "openai-tts" }

func (o *OpenAI) Speak(ctx context.Context, text string) ([]byte, error) {
	res, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return io.ReadAll(res)
}
