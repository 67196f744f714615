package live

import (
	"sort"
	"sync"
	"time"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// SessionState holds the in-memory view of one live session. All mutation
// goes through its mutex so concurrent transcription completions, scheduler
// ticks, and control messages never interleave partial updates. Long engine
// calls must never run while the lock is held: callers take a snapshot,
// release, call out, then re-enter to record the result. A result arriving
// after the session ended is discarded at that re-entry point.
type SessionState struct {
	mu sync.Mutex

	meeting     *entities.Meeting
	transcripts []*entities.Transcript
	responses   []*entities.AIResponse
	members     []*entities.AIMember
	summary     *SummaryPayload

	lastResponseAt float64
	hasResponded   bool

	now func() time.Time
}

// NewSessionState wraps a meeting in live session state. The members slice
// is the roster loaded at attach time.
func NewSessionState(meeting *entities.Meeting, members []*entities.AIMember) *SessionState {
	return &SessionState{
		meeting: meeting,
		members: members,
		now:     time.Now,
	}
}

// StartIfNeeded records the session start instant on the first audio
// fragment. Returns true only for the call that actually started the clock.
func (s *SessionState) StartIfNeeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.IsEnded() {
		return false
	}
	return s.meeting.Start(s.now())
}

// Started reports whether the session clock is running.
func (s *SessionState) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meeting.StartedAt != nil
}

// Elapsed returns seconds since the session started, 0 before the first
// fragment.
func (s *SessionState) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meeting.Elapsed(s.now())
}

// Progress returns the percentage of the planned duration consumed, capped
// at 100. The second return is false when the meeting has no planned
// duration or has not started.
func (s *SessionState) Progress() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.DurationSeconds <= 0 || s.meeting.StartedAt == nil {
		return 0, false
	}
	p := s.meeting.Elapsed(s.now()) / float64(s.meeting.DurationSeconds) * 100
	if p > 100 {
		p = 100
	}
	return p, true
}

// AppendTranscript records a completed transcription unit. Returns false
// when the session has ended in the meantime; the caller discards the unit.
func (s *SessionState) AppendTranscript(t *entities.Transcript) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.IsEnded() {
		return false
	}
	s.transcripts = append(s.transcripts, t)
	return true
}

// Transcripts returns a chronological snapshot of all units.
func (s *SessionState) Transcripts() []*entities.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopy(s.transcripts)
}

// TranscriptsSince returns a chronological snapshot of units whose offset is
// at or after minOffset seconds.
func (s *SessionState) TranscriptsSince(minOffset float64) []*entities.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entities.Transcript, 0, len(s.transcripts))
	for _, t := range s.transcripts {
		if t.Timestamp >= minOffset {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func sortedCopy(in []*entities.Transcript) []*entities.Transcript {
	out := make([]*entities.Transcript, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// ActiveMembers returns the AI members eligible to respond.
func (s *SessionState) ActiveMembers() []*entities.AIMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entities.AIMember, 0, len(s.members))
	for _, m := range s.members {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out
}

// AddMember registers an AI member on the running session.
func (s *SessionState) AddMember(m *entities.AIMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, m)
}

// TryClaimResponderSlot enforces the minimum gap between AI response
// triggers. It returns true and advances the gate when enough session time
// has passed since the previous claim.
func (s *SessionState) TryClaimResponderSlot(elapsed, minGap float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.IsEnded() {
		return false
	}
	if s.hasResponded && elapsed-s.lastResponseAt < minGap {
		return false
	}
	s.lastResponseAt = elapsed
	s.hasResponded = true
	return true
}

// AppendResponse records a generated AI response. Returns false when the
// session ended while the engine call was in flight.
func (s *SessionState) AppendResponse(r *entities.AIResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.IsEnded() {
		return false
	}
	s.responses = append(s.responses, r)
	return true
}

// AdvancePhase moves the meeting phase forward. The move is rejected when
// the candidate is not strictly later than the current phase, which keeps
// the timeline monotonic even if ticks observe a stale clock.
func (s *SessionState) AdvancePhase(phase entities.Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.IsEnded() {
		return false
	}
	if !phase.After(s.meeting.Phase) {
		return false
	}
	s.meeting.Phase = phase
	return true
}

// Phase returns the current meeting phase.
func (s *SessionState) Phase() entities.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meeting.Phase
}

// SetFacilitation toggles the facilitator and optionally replaces the
// planned duration when a positive value is supplied.
func (s *SessionState) SetFacilitation(enabled bool, durationSeconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meeting.UseFacilitator = enabled
	if durationSeconds > 0 {
		s.meeting.DurationSeconds = durationSeconds
	}
}

// FacilitationEnabled reports whether the phase scheduler should act, and
// the planned duration it should use.
func (s *SessionState) FacilitationEnabled() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meeting.UseFacilitator, s.meeting.DurationSeconds
}

// SetSummary stores the latest summary payload.
func (s *SessionState) SetSummary(p *SummaryPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = p
}

// Summary returns the latest summary payload, nil if none yet.
func (s *SessionState) Summary() *SummaryPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// MarkEnded flips the meeting to ended. Idempotent; returns true only for
// the call that performed the flip.
func (s *SessionState) MarkEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meeting.IsEnded() {
		return false
	}
	s.meeting.End()
	return true
}

// Ended reports whether the session has ended.
func (s *SessionState) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meeting.IsEnded()
}

// MeetingSnapshot returns a copy of the meeting record for persistence.
func (s *SessionState) MeetingSnapshot() entities.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.meeting
}
