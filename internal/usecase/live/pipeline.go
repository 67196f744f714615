package live

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Pipeline turns an assembled audio segment into clean transcript text:
// transcode to the engine's encoding, transcribe, trim, and drop denylisted
// boilerplate the speech model hallucinates on silence.
type Pipeline struct {
	transcoder Transcoder
	engine     TranscriptionEngine
	language   string
	denylist   []string
	logger     *zap.Logger
}

// NewPipeline creates a transcription pipeline.
func NewPipeline(transcoder Transcoder, engine TranscriptionEngine, language string, denylist []string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		transcoder: transcoder,
		engine:     engine,
		language:   language,
		denylist:   denylist,
		logger:     logger,
	}
}

// Transcribe processes one segment. It returns the recognized text and true,
// or "" and false when the segment yielded nothing usable. Failures are
// logged here and never propagate; a bad segment must not take down the
// session.
func (p *Pipeline) Transcribe(ctx context.Context, segment []byte) (string, bool) {
	converted, err := p.transcoder.Convert(ctx, segment)
	if err != nil {
		p.logger.Warn("⚠️ Audio conversion failed, dropping segment",
			zap.Int("segment_bytes", len(segment)),
			zap.Error(err))
		return "", false
	}

	text, err := p.engine.Transcribe(ctx, converted, p.language)
	if err != nil {
		p.logger.Warn("⚠️ Transcription failed, dropping segment",
			zap.Int("segment_bytes", len(segment)),
			zap.Error(err))
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	for _, phrase := range p.denylist {
		if strings.Contains(text, phrase) {
			p.logger.Debug("🔇 Dropped hallucinated boilerplate", zap.String("text", text))
			return "", false
		}
	}

	return text, true
}
