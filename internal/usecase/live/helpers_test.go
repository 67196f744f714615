package live

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

func uuid4(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

// passthroughTranscoder returns the input unchanged.
type passthroughTranscoder struct {
	err error
}

func (p *passthroughTranscoder) Convert(_ context.Context, src []byte) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return src, nil
}

// scriptedSTT returns canned texts in order, then repeats the last one.
type scriptedSTT struct {
	mu    sync.Mutex
	texts []string
	err   error
	calls int
}

func (s *scriptedSTT) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.texts) == 0 {
		return "", nil
	}
	text := s.texts[0]
	if len(s.texts) > 1 {
		s.texts = s.texts[1:]
	}
	return text, nil
}

func (s *scriptedSTT) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// scriptedGenerator returns one canned completion for every call.
type scriptedGenerator struct {
	mu     sync.Mutex
	output string
	err    error
	calls  []string // user prompts, in order
}

func (g *scriptedGenerator) Complete(_ context.Context, _, user string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, user)
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// In-memory repositories.

type memMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
}

func newMemMeetingRepo() *memMeetingRepo {
	return &memMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (r *memMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.meetings[m.ID] = &cp
	return nil
}

func (r *memMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	return r.Create(context.Background(), m)
}

func (r *memMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meetings, id)
	return nil
}

type memTranscriptRepo struct {
	mu    sync.Mutex
	units []entities.Transcript
	err   error
}

func (r *memTranscriptRepo) Create(_ context.Context, t *entities.Transcript) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.units = append(r.units, *t)
	return nil
}

func (r *memTranscriptRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]entities.Transcript, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Transcript, 0)
	for _, u := range r.units {
		if u.MeetingID == meetingID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memTranscriptRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.units)
}

type memSummaryRepo struct {
	mu        sync.Mutex
	summaries map[uuid.UUID]*entities.MinuteSummary
	upserts   int
}

func newMemSummaryRepo() *memSummaryRepo {
	return &memSummaryRepo{summaries: make(map[uuid.UUID]*entities.MinuteSummary)}
}

func (r *memSummaryRepo) Upsert(_ context.Context, s *entities.MinuteSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.summaries[s.MeetingID] = &cp
	r.upserts++
	return nil
}

func (r *memSummaryRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.MinuteSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.summaries[meetingID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

type memAIRepo struct {
	mu        sync.Mutex
	members   []entities.AIMember
	responses []entities.AIResponse
}

func (r *memAIRepo) CreateMember(_ context.Context, m *entities.AIMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, *m)
	return nil
}

func (r *memAIRepo) FindActiveMembers(_ context.Context, meetingID uuid.UUID) ([]entities.AIMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.AIMember, 0)
	for _, m := range r.members {
		if m.MeetingID == meetingID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memAIRepo) CreateResponse(_ context.Context, resp *entities.AIResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, *resp)
	return nil
}

func (r *memAIRepo) FindResponsesByMeetingID(_ context.Context, meetingID uuid.UUID) ([]entities.AIResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.AIResponse, 0)
	for _, resp := range r.responses {
		if resp.MeetingID == meetingID {
			out = append(out, resp)
		}
	}
	return out, nil
}

var errEngineDown = errors.New("engine unavailable")

func testLogger() *zap.Logger {
	return zap.NewNop()
}
