package live

import "context"

// TranscriptionEngine converts an audio segment to text in the requested
// language. Calls are long-latency and must run outside the session's
// mutation critical section.
type TranscriptionEngine interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// GenerationEngine produces text from a system + user prompt pair. The same
// engine serves summaries, facilitation messages, and AI responses with
// distinct prompts.
type GenerationEngine interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Transcoder converts container audio bytes to the canonical encoding the
// transcription engine expects.
type Transcoder interface {
	Convert(ctx context.Context, src []byte) ([]byte, error)
}

// SegmentArchiver stores processed audio segments. Optional; failures are
// logged and never affect the session.
type SegmentArchiver interface {
	Archive(ctx context.Context, meetingID string, seq int, data []byte) error
}
