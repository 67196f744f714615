package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/liveminutes-team/liveminutes/internal/usecase/live"
)

// controlMessage is a JSON text frame sent by the client on the live socket.
// Audio arrives either as binary frames or as base64 inside an audio_chunk
// message.
type controlMessage struct {
	Type            string `json:"type"`
	Audio           string `json:"audio,omitempty"`
	Text            string `json:"text,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// Live handles the websocket endpoint for live sessions.
type Live struct {
	sessions *live.Manager
	hub      *live.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandler creates the live websocket handler.
func NewLiveHandler(sessions *live.Manager, hub *live.Hub, logger *zap.Logger) *Live {
	return &Live{
		sessions: sessions,
		hub:      hub,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /meetings/:id/live. It attaches the observer to the
// meeting's session, streams events out, and feeds audio and control
// messages in until the socket closes.
func (h *Live) Serve(c echo.Context) error {
	meetingID, err := parseMeetingID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()

	coord, obs, err := h.sessions.Join(ctx, meetingID)
	if err != nil {
		return respondError(c, err)
	}
	defer h.sessions.Leave(meetingID, obs)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("⚠️ Websocket upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	h.logger.Info("🔌 Observer connected", zap.String("meeting_id", meetingID.String()))

	// Writer: one goroutine owns all writes to the socket.
	go func() {
		for ev := range obs.Events() {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}

		switch msgType {
		case websocket.BinaryMessage:
			coord.HandleAudioChunk(ctx, payload)
		case websocket.TextMessage:
			h.handleControl(ctx, coord, payload)
		}
	}

	h.logger.Info("🔌 Observer disconnected", zap.String("meeting_id", meetingID.String()))
	return nil
}

func (h *Live) handleControl(ctx context.Context, coord *live.Coordinator, payload []byte) {
	var msg controlMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.hub.Publish(ctx, coord.MeetingID(), live.Event{Type: live.EventError, Message: "不正なメッセージ形式です"})
		return
	}

	switch msg.Type {
	case "audio_chunk":
		data, err := base64.StdEncoding.DecodeString(msg.Audio)
		if err != nil {
			h.hub.Publish(ctx, coord.MeetingID(), live.Event{Type: live.EventError, Message: "音声データのデコードに失敗しました"})
			return
		}
		coord.HandleAudioChunk(ctx, data)
	case "manual_transcript":
		coord.HandleManualTranscript(ctx, msg.Text)
	case "stop_recording":
		coord.StopRecording(ctx)
	case "enable_facilitator":
		coord.EnableFacilitation(ctx, msg.DurationSeconds)
	case "disable_facilitator":
		coord.DisableFacilitation(ctx)
	case "end_meeting":
		coord.End(ctx)
	default:
		h.logger.Debug("Unknown control message", zap.String("type", msg.Type))
	}
}
