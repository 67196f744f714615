package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// FFmpeg converts browser-recorded audio (webm/ogg containers) to the mp3
// encoding the transcription engines expect. The binary is resolved once at
// construction so a missing converter surfaces at call time as an error, not
// a crash.
type FFmpeg struct {
	path string
	err  error
}

// NewFFmpeg locates the ffmpeg binary on PATH.
func NewFFmpeg() *FFmpeg {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return &FFmpeg{err: fmt.Errorf("ffmpeg not found on PATH: %w", err)}
	}
	return &FFmpeg{path: path}
}

// Available reports whether the converter can run.
func (f *FFmpeg) Available() error {
	return f.err
}

// Convert transcodes the source container bytes to mono 16kHz mp3 via
// stdin/stdout pipes.
func (f *FFmpeg) Convert(ctx context.Context, src []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}

	cmd := exec.CommandContext(ctx, f.path,
		"-i", "pipe:0",
		"-ac", "1",
		"-ar", "16000",
		"-f", "mp3",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("converting audio: %w\n%s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}
