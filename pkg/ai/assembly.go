package ai

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"

	"github.com/liveminutes-team/liveminutes/pkg/config"
)

// AssemblyAIEngine transcribes audio segments through the official
// AssemblyAI SDK. Upload and submission are retried with exponential
// backoff; polling for the result is not.
type AssemblyAIEngine struct {
	client *aai.Client
}

// NewAssemblyAIEngine creates an engine using the provided config. Pass a
// nil config to fall back to environment variables.
func NewAssemblyAIEngine(cfg *config.AssemblyAIConfig) *AssemblyAIEngine {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIEngine{
		client: aai.NewClient(apiKey),
	}
}

// Transcribe uploads the audio segment, submits a transcription job, and
// waits for the terminal status.
func (e *AssemblyAIEngine) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	var transcript aai.Transcript

	submitFn := func() error {
		uploadURL, err := e.client.Upload(ctx, bytes.NewReader(audio))
		if err != nil {
			return fmt.Errorf("failed to upload to AssemblyAI: %w", err)
		}

		params := &aai.TranscriptOptionalParams{}
		if language != "" {
			params.LanguageCode = aai.TranscriptLanguageCode(language)
		}

		transcript, err = e.client.Transcripts.SubmitFromURL(ctx, uploadURL, params)
		if err != nil {
			return fmt.Errorf("failed to submit to AssemblyAI: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	if transcript.ID == nil {
		return "", fmt.Errorf("assemblyai returned no transcript id")
	}

	completed, err := e.client.Transcripts.Wait(ctx, *transcript.ID)
	if err != nil {
		return "", fmt.Errorf("failed to wait for transcript: %w", err)
	}

	if completed.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if completed.Error != nil {
			msg = *completed.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	if completed.Text == nil {
		return "", nil
	}
	return *completed.Text, nil
}
