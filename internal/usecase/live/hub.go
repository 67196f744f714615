package live

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const observerBuffer = 64

// Observer is one attached event consumer (typically a websocket writer).
type Observer struct {
	ch chan Event
}

// Events is the channel the observer reads delivered events from.
func (o *Observer) Events() <-chan Event {
	return o.ch
}

// Hub fans session events out to attached observers. Delivery is
// best-effort: a slow observer loses events rather than stalling the
// session. When a redis client is configured, every event is also mirrored
// to a per-meeting channel so observers on other instances can follow along.
type Hub struct {
	mu        sync.RWMutex
	observers map[uuid.UUID]map[*Observer]struct{}
	redis     *redis.Client
	logger    *zap.Logger
}

// NewHub creates an event hub. redisClient may be nil.
func NewHub(redisClient *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		observers: make(map[uuid.UUID]map[*Observer]struct{}),
		redis:     redisClient,
		logger:    logger,
	}
}

// Subscribe attaches a new observer to a meeting's event stream.
func (h *Hub) Subscribe(meetingID uuid.UUID) *Observer {
	obs := &Observer{ch: make(chan Event, observerBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.observers[meetingID]
	if !ok {
		set = make(map[*Observer]struct{})
		h.observers[meetingID] = set
	}
	set[obs] = struct{}{}
	return obs
}

// Unsubscribe detaches an observer and returns the number of observers that
// remain on the meeting. The caller uses a zero return to wind the session
// down.
func (h *Hub) Unsubscribe(meetingID uuid.UUID, obs *Observer) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.observers[meetingID]
	if !ok {
		return 0
	}
	if _, present := set[obs]; present {
		delete(set, obs)
		close(obs.ch)
	}
	if len(set) == 0 {
		delete(h.observers, meetingID)
		return 0
	}
	return len(set)
}

// ObserverCount reports the number of observers attached to a meeting.
func (h *Hub) ObserverCount(meetingID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers[meetingID])
}

// Publish delivers an event to every observer of the meeting and mirrors it
// to redis when configured. Never blocks.
func (h *Hub) Publish(ctx context.Context, meetingID uuid.UUID, ev Event) {
	h.mu.RLock()
	for obs := range h.observers[meetingID] {
		select {
		case obs.ch <- ev:
		default:
			h.logger.Warn("⚠️ Observer buffer full, dropping event",
				zap.String("meeting_id", meetingID.String()),
				zap.String("event_type", string(ev.Type)))
		}
	}
	h.mu.RUnlock()

	if h.redis == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := h.redis.Publish(ctx, eventChannel(meetingID), payload).Err(); err != nil {
		h.logger.Warn("⚠️ Failed to mirror event to redis", zap.Error(err))
	}
}

func eventChannel(meetingID uuid.UUID) string {
	return "live:events:" + meetingID.String()
}
