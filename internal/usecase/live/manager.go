package live

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/liveminutes-team/liveminutes/errors"
	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// Manager is the process-wide registry of running session coordinators.
// At most one coordinator exists per meeting; observers attaching to the
// same meeting share it.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Coordinator
	deps     CoordinatorDeps
	logger   *zap.Logger
}

// NewManager creates a session manager.
func NewManager(deps CoordinatorDeps) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Coordinator),
		deps:     deps,
		logger:   deps.Logger,
	}
}

// Attach returns the running coordinator for a meeting, starting one if
// needed. Attaching to an ended meeting fails.
func (m *Manager) Attach(ctx context.Context, meetingID uuid.UUID) (*Coordinator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attachLocked(ctx, meetingID)
}

// Join attaches an observer to a meeting's session in one step. The
// subscription happens under the registry lock, so a concurrent last-observer
// detach can never stop the coordinator between the lookup and the
// subscription.
func (m *Manager) Join(ctx context.Context, meetingID uuid.UUID) (*Coordinator, *Observer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.attachLocked(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}
	return c, m.deps.Hub.Subscribe(meetingID), nil
}

func (m *Manager) attachLocked(ctx context.Context, meetingID uuid.UUID) (*Coordinator, error) {
	if c, ok := m.sessions[meetingID]; ok {
		if c.Ended() {
			return nil, apperrors.ErrMeetingEnded(meetingID.String())
		}
		return c, nil
	}

	meeting, err := m.deps.Meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("loading meeting for live session: %w", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(meetingID.String())
	}
	if meeting.IsEnded() {
		return nil, apperrors.ErrMeetingEnded(meetingID.String())
	}

	roster, err := m.deps.AI.FindActiveMembers(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("loading AI members for live session: %w", err)
	}
	members := make([]*entities.AIMember, len(roster))
	for i := range roster {
		members[i] = &roster[i]
	}

	c := NewCoordinator(meeting, members, m.deps)
	c.Run()
	m.sessions[meetingID] = c
	m.logger.Info("📡 Live session attached", zap.String("meeting_id", meetingID.String()))
	return c, nil
}

// Get returns a running coordinator without creating one.
func (m *Manager) Get(meetingID uuid.UUID) (*Coordinator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[meetingID]
	return c, ok
}

// Leave unsubscribes one observer and, when it was the last one, winds the
// session down.
func (m *Manager) Leave(meetingID uuid.UUID, obs *Observer) {
	m.deps.Hub.Unsubscribe(meetingID, obs)
	m.Detach(meetingID)
}

// Detach is called when an observer disconnects. When no observers remain
// the coordinator's loops are stopped and the session is dropped from the
// registry; meeting data stays in the store untouched. The observer count is
// checked under the registry lock so Detach cannot race a Join that is
// subscribing its observer.
func (m *Manager) Detach(meetingID uuid.UUID) {
	m.mu.Lock()
	if m.deps.Hub.ObserverCount(meetingID) > 0 {
		m.mu.Unlock()
		return
	}
	c, ok := m.sessions[meetingID]
	if ok {
		delete(m.sessions, meetingID)
	}
	m.mu.Unlock()

	if ok {
		c.Shutdown()
		m.logger.Info("📴 Live session released, no observers remain",
			zap.String("meeting_id", meetingID.String()))
	}
}

// End permanently ends a meeting's session. Works whether or not a live
// coordinator is currently running.
func (m *Manager) End(ctx context.Context, meetingID uuid.UUID) error {
	m.mu.Lock()
	c, ok := m.sessions[meetingID]
	if ok {
		delete(m.sessions, meetingID)
	}
	m.mu.Unlock()

	if ok {
		c.End(ctx)
		return nil
	}

	// No live session: flip the stored record directly.
	meeting, err := m.deps.Meetings.FindByID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("loading meeting to end: %w", err)
	}
	if meeting == nil {
		return apperrors.ErrMeetingNotFound(meetingID.String())
	}
	if meeting.IsEnded() {
		return nil
	}
	meeting.End()
	if err := m.deps.Meetings.Update(ctx, meeting); err != nil {
		return fmt.Errorf("persisting ended meeting: %w", err)
	}
	return nil
}

// Close shuts down every running session, for server shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Coordinator, 0, len(m.sessions))
	for id, c := range m.sessions {
		sessions = append(sessions, c)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, c := range sessions {
		c.Shutdown()
	}
}
