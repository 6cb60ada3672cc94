package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var ErrEmptyCompletion = errors.New("model returned empty response or choices")

// Request is one chat completion: a system message followed by a user message.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	TopP        float32 // zero leaves the provider default
}

type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Client talks to any OpenAI-compatible endpoint (Groq by default).
type Client struct {
	api                *openai.Client
	model              string
	transcriptionModel string
}

func NewClient(apiKey, baseURL, model, transcriptionModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		api:                openai.NewClientWithConfig(cfg),
		model:              model,
		transcriptionModel: transcriptionModel,
	}
}

func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.api.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: req.System,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.User,
				},
			},
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			TopP:        req.TopP,
			N:           1,
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Transcribe writes the audio to a temporary .wav file, sends it to the
// transcription endpoint and removes the file afterwards.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("no audio provided")
	}

	f, err := os.CreateTemp("", "antna-voice-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating temp audio file: %w", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			zap.S().Warnw("could not remove temp audio file", "path", path, "err", err)
		}
	}()

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return "", fmt.Errorf("writing temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp audio file: %w", err)
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcriptionModel,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("transcription error: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errors.New("transcription returned no text")
	}
	return text, nil
}
