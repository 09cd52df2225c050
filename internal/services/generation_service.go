package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bunq-wrapped/internal/config"

	"google.golang.org/genai"
)

// ErrGeneration marks any failure of the external text-generation
// backend: unreachable endpoint, stream error, timeout, or an empty
// response. Callers decide whether to degrade or propagate; this layer
// never retries.
var ErrGeneration = errors.New("text generation failed")

type generationService struct {
	client *genai.Client
	model  string
	// Per-request deadline; expiry surfaces as ErrGeneration.
	timeout time.Duration
}

// NewGenerationService creates the text-generation client from an
// explicit immutable configuration. Sampling parameters are fixed by the
// report contract and are not configurable.
func NewGenerationService(ctx context.Context, cfg config.GenerationConfig) (GeneratorInterface, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &generationService{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// unavailableGenerator stands in when no API key is configured. Every
// call fails with ErrGeneration, so generative report entries degrade
// instead of the service refusing to start.
type unavailableGenerator struct{}

// NewUnavailableGenerator returns a generator that always fails.
func NewUnavailableGenerator() GeneratorInterface {
	return unavailableGenerator{}
}

func (unavailableGenerator) Generate(ctx context.Context, prompt, systemMessage string) (string, error) {
	return "", fmt.Errorf("%w: no generation API key configured", ErrGeneration)
}

// Generate issues one chat-style request (system + user turn) and folds
// the streamed fragments, in arrival order, into a single string. No
// partial result is ever returned: any mid-stream error fails the whole
// call.
func (s *generationService) Generate(ctx context.Context, prompt, systemMessage string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.6),
		TopP:             genai.Ptr[float32](0.95),
		MaxOutputTokens:  4096,
		FrequencyPenalty: genai.Ptr[float32](0),
		PresencePenalty:  genai.Ptr[float32](0),
	}
	if systemMessage != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemMessage}},
		}
	}

	started := time.Now()
	var b strings.Builder
	for resp, err := range s.client.Models.GenerateContentStream(ctx, s.model, genai.Text(prompt), genConfig) {
		if err != nil {
			return "", fmt.Errorf("%w: streaming response: %v", ErrGeneration, err)
		}
		b.WriteString(resp.Text())
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty response from model", ErrGeneration)
	}

	slog.Debug("generation call completed",
		"model", s.model,
		"prompt_bytes", len(prompt),
		"response_bytes", b.Len(),
		"duration_ms", time.Since(started).Milliseconds())

	return b.String(), nil
}
