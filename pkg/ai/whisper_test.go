package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liveminutes-team/liveminutes/pkg/config"
)

func TestWhisperTranscribe_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("language"); got != "ja" {
			t.Errorf("language = %q, want ja", got)
		}
		if got := r.FormValue("response_format"); got != "text" {
			t.Errorf("response_format = %q", got)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		file.Close()

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("今日の議題は予算です\n"))
	}))
	defer ts.Close()

	client := NewWhisperClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	text, err := client.Transcribe(context.Background(), []byte("fake-audio"), "ja")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if text != "今日の議題は予算です" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestWhisperTranscribe_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer ts.Close()

	client := NewWhisperClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Transcribe(context.Background(), []byte("fake-audio"), "ja"); err == nil {
		t.Fatal("expected error on 429 response")
	}
}
