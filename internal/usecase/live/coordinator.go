package live

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
	"github.com/liveminutes-team/liveminutes/internal/domain/repositories"
	"github.com/liveminutes-team/liveminutes/pkg/config"
)

const (
	facilitatorWindowSeconds = 300
	responderWindowSeconds   = 120
	idlePhasePoll            = 5 * time.Second
)

// CoordinatorDeps bundles everything a session coordinator needs.
type CoordinatorDeps struct {
	Meetings    repositories.MeetingRepository
	Transcripts repositories.TranscriptRepository
	Summaries   repositories.SummaryRepository
	AI          repositories.AIRepository
	Pipeline    *Pipeline
	Generator   GenerationEngine
	Archiver    SegmentArchiver // optional
	Hub         *Hub
	Config      config.LiveConfig
	Logger      *zap.Logger
}

// Coordinator runs one live session: it owns the audio accumulator, feeds
// the transcription pipeline, drives the background summary and phase loops,
// and mediates every state change through the session state.
type Coordinator struct {
	meetingID uuid.UUID
	state     *SessionState
	acc       *Accumulator
	deps      CoordinatorDeps
	logger    *zap.Logger

	segMu  sync.Mutex
	segSeq int

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup

	// injectable for deterministic tests
	pickMember func(n int) int
}

// NewCoordinator wires a coordinator around an existing meeting and its AI
// member roster.
func NewCoordinator(meeting *entities.Meeting, members []*entities.AIMember, deps CoordinatorDeps) *Coordinator {
	return &Coordinator{
		meetingID:  meeting.ID,
		state:      NewSessionState(meeting, members),
		acc:        NewAccumulator(deps.Config.AudioBatchSize, deps.Config.MinSegmentBytes),
		deps:       deps,
		logger:     deps.Logger.With(zap.String("meeting_id", meeting.ID.String())),
		stopChan:   make(chan struct{}),
		pickMember: rand.Intn,
	}
}

// Run starts the background loops. Call once.
func (c *Coordinator) Run() {
	c.wg.Add(2)
	go c.summaryLoop()
	go c.phaseLoop()
	c.logger.Info("🎬 Live session coordinator started")
}

// MeetingID returns the meeting this coordinator serves.
func (c *Coordinator) MeetingID() uuid.UUID {
	return c.meetingID
}

// Ended reports whether the session has been permanently ended.
func (c *Coordinator) Ended() bool {
	return c.state.Ended()
}

// HandleAudioChunk ingests one raw audio fragment from an observer. The
// first fragment starts the session clock. A completed batch is transcribed
// on its own goroutine so intake never blocks on the engine.
func (c *Coordinator) HandleAudioChunk(ctx context.Context, data []byte) {
	if len(data) == 0 {
		c.deps.Hub.Publish(ctx, c.meetingID, newErrorEvent("音声データが空です"))
		return
	}
	if c.state.Ended() {
		c.deps.Hub.Publish(ctx, c.meetingID, newErrorEvent("セッションは終了しています"))
		return
	}

	if c.state.StartIfNeeded() {
		c.persistMeeting(ctx)
		c.logger.Info("⏱️ Session clock started")
	}

	c.segMu.Lock()
	segment := c.acc.Submit(data)
	c.segMu.Unlock()

	if segment == nil {
		return
	}
	go c.processSegment(context.WithoutCancel(ctx), segment)
}

// HandleManualTranscript records a typed transcript unit at the current
// session offset.
func (c *Coordinator) HandleManualTranscript(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	unit := entities.NewManualTranscript(c.meetingID, c.state.Elapsed(), text)
	if !c.state.AppendTranscript(unit) {
		return
	}
	if err := c.deps.Transcripts.Create(ctx, unit); err != nil {
		c.logger.Error("❌ Failed to store manual transcript", zap.Error(err))
	}
	c.deps.Hub.Publish(ctx, c.meetingID, newTranscriptEvent(unit))
}

// StopRecording flushes pending audio and produces a full summary. The
// session stays active: recording can resume and the loops keep running.
func (c *Coordinator) StopRecording(ctx context.Context) {
	c.flushPending(ctx)
	c.summarize(ctx, true)
	c.logger.Info("⏸️ Recording stopped, summary generated")
}

// End permanently ends the session: flush, final summary, stop the loops,
// and flip the meeting status. Idempotent; data is never deleted here.
func (c *Coordinator) End(ctx context.Context) {
	if c.state.Ended() {
		return
	}

	c.flushPending(ctx)
	c.summarize(ctx, true)

	if c.state.MarkEnded() {
		c.persistMeeting(ctx)
	}
	c.Shutdown()
	c.logger.Info("🏁 Session ended")
}

// Shutdown stops the background loops without changing session status. The
// manager calls this when the last observer detaches; the meeting and its
// data remain queryable.
func (c *Coordinator) Shutdown() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
}

// EnableFacilitation turns the phase scheduler on, optionally updating the
// planned duration.
func (c *Coordinator) EnableFacilitation(ctx context.Context, durationSeconds int) {
	c.state.SetFacilitation(true, durationSeconds)
	c.persistMeeting(ctx)
	c.logger.Info("🧭 Facilitator enabled", zap.Int("duration_seconds", durationSeconds))
}

// DisableFacilitation turns the phase scheduler off.
func (c *Coordinator) DisableFacilitation(ctx context.Context) {
	c.state.SetFacilitation(false, 0)
	c.persistMeeting(ctx)
	c.logger.Info("🧭 Facilitator disabled")
}

// AddMember registers a new AI member on the running session.
func (c *Coordinator) AddMember(member *entities.AIMember) {
	c.state.AddMember(member)
}

// flushPending assembles and transcribes whatever fragments are buffered.
// Runs synchronously so stop/end see the flushed units.
func (c *Coordinator) flushPending(ctx context.Context) {
	c.segMu.Lock()
	segment := c.acc.Flush()
	c.segMu.Unlock()

	if segment == nil {
		return
	}
	c.processSegment(ctx, segment)
}

// processSegment runs one segment through the transcription pipeline and
// records the result. The session may end while the engine call is in
// flight; the result is then discarded at the append gate.
func (c *Coordinator) processSegment(ctx context.Context, segment []byte) {
	c.segMu.Lock()
	c.segSeq++
	seq := c.segSeq
	c.segMu.Unlock()

	if c.deps.Archiver != nil {
		go func() {
			if err := c.deps.Archiver.Archive(context.WithoutCancel(ctx), c.meetingID.String(), seq, segment); err != nil {
				c.logger.Warn("⚠️ Failed to archive segment", zap.Int("seq", seq), zap.Error(err))
			}
		}()
	}

	text, ok := c.deps.Pipeline.Transcribe(ctx, segment)
	if !ok {
		return
	}

	unit := entities.NewTranscript(c.meetingID, c.state.Elapsed(), text)
	if !c.state.AppendTranscript(unit) {
		c.logger.Debug("Discarding transcription that finished after session end")
		return
	}

	if err := c.deps.Transcripts.Create(ctx, unit); err != nil {
		c.logger.Error("❌ Failed to store transcript", zap.Error(err))
	}
	c.deps.Hub.Publish(ctx, c.meetingID, newTranscriptEvent(unit))

	c.maybeRespond(ctx)
}

// persistMeeting writes the current meeting snapshot. Store failures are
// logged; the in-memory state stays authoritative for the live session.
func (c *Coordinator) persistMeeting(ctx context.Context) {
	snapshot := c.state.MeetingSnapshot()
	if err := c.deps.Meetings.Update(ctx, &snapshot); err != nil {
		c.logger.Error("❌ Failed to persist meeting", zap.Error(err))
	}
}
