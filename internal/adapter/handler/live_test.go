package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
	"github.com/liveminutes-team/liveminutes/internal/usecase/live"
	"github.com/liveminutes-team/liveminutes/pkg/config"
	pkgvalidator "github.com/liveminutes-team/liveminutes/pkg/validator"
)

type noopTranscoder struct{}

func (noopTranscoder) Convert(_ context.Context, src []byte) ([]byte, error) { return src, nil }

type cannedSTT struct{ text string }

func (s cannedSTT) Transcribe(context.Context, []byte, string) (string, error) {
	return s.text, nil
}

type cannedGenerator struct{ output string }

func (g cannedGenerator) Complete(context.Context, string, string) (string, error) {
	return g.output, nil
}

func newLiveTestServer(t *testing.T) (*httptest.Server, *stubMeetingRepo, *live.Manager) {
	t.Helper()

	meetings := newStubMeetingRepo()
	logger := zap.NewNop()
	hub := live.NewHub(nil, logger)
	cfg := config.LiveConfig{
		DefaultLanguage:      "ja",
		AudioBatchSize:       10,
		MinSegmentBytes:      1024,
		SummaryInterval:      time.Hour,
		ResponderMinInterval: 15 * time.Second,
		PhaseIntroPercent:    10,
		PhaseSharingPercent:  25,
		PhaseWrapUpPercent:   85,
	}

	sessions := live.NewManager(live.CoordinatorDeps{
		Meetings:    meetings,
		Transcripts: &stubTranscriptRepo{},
		Summaries:   newStubSummaryRepo(),
		AI:          &stubAIRepo{},
		Pipeline:    live.NewPipeline(noopTranscoder{}, cannedSTT{text: "音声からの発言"}, "ja", nil, logger),
		Generator:   cannedGenerator{output: `{"summary": "要約", "key_points": [], "action_items": [], "decisions": []}`},
		Hub:         hub,
		Config:      cfg,
		Logger:      logger,
	})
	t.Cleanup(sessions.Close)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.GET("/v1/meetings/:id/live", NewLiveHandler(sessions, hub, logger).Serve)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, meetings, sessions
}

func dialLive(t *testing.T, server *httptest.Server, meetingID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/meetings/" + meetingID + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn, want live.EventType) live.Event {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		var ev live.Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("waiting for %s event: %v", want, err)
		}
		if ev.Type == want {
			return ev
		}
	}
}

func TestLiveSocketAudioToTranscript(t *testing.T) {
	server, meetings, _ := newLiveTestServer(t)

	m := entities.NewMeeting("ライブテスト", "ja", 0)
	meetings.Create(context.Background(), m)

	conn := dialLive(t, server, m.ID.String())
	for i := 0; i < 10; i++ {
		if err := conn.WriteMessage(websocket.BinaryMessage, bytes.Repeat([]byte{1}, 200)); err != nil {
			t.Fatalf("write audio: %v", err)
		}
	}

	ev := readEvent(t, conn, live.EventTranscript)
	if ev.Text != "音声からの発言" {
		t.Errorf("transcript text = %q", ev.Text)
	}
}

func TestLiveSocketStopRecording(t *testing.T) {
	server, meetings, _ := newLiveTestServer(t)

	m := entities.NewMeeting("停止テスト", "ja", 0)
	meetings.Create(context.Background(), m)

	conn := dialLive(t, server, m.ID.String())
	for i := 0; i < 3; i++ {
		if err := conn.WriteMessage(websocket.BinaryMessage, bytes.Repeat([]byte{1}, 600)); err != nil {
			t.Fatalf("write audio: %v", err)
		}
	}

	stop, _ := json.Marshal(map[string]string{"type": "stop_recording"})
	if err := conn.WriteMessage(websocket.TextMessage, stop); err != nil {
		t.Fatalf("write control: %v", err)
	}

	ev := readEvent(t, conn, live.EventSummaryComplete)
	if ev.Summary == nil || ev.Summary.Summary != "要約" {
		t.Errorf("summary = %+v", ev.Summary)
	}

	// Session survives stop_recording.
	stored, _ := meetings.FindByID(context.Background(), m.ID)
	if stored.Status != entities.MeetingStatusActive {
		t.Errorf("status = %s, want active", stored.Status)
	}
}

func TestLiveSocketPlainGETReleasesSession(t *testing.T) {
	server, meetings, sessions := newLiveTestServer(t)

	m := entities.NewMeeting("アップグレード失敗", "ja", 0)
	meetings.Create(context.Background(), m)

	// A plain GET passes the meeting lookup but fails the websocket
	// handshake; the session started for it must be wound down again.
	resp, err := http.Get(server.URL + "/v1/meetings/" + m.ID.String() + "/live")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	if _, ok := sessions.Get(m.ID); ok {
		t.Error("coordinator still registered after failed upgrade")
	}
}

func TestLiveSocketRejectsUnknownMeeting(t *testing.T) {
	server, _, _ := newLiveTestServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/meetings/00000000-0000-0000-0000-000000000000/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial to unknown meeting succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("handshake response = %+v", resp)
	}
}
