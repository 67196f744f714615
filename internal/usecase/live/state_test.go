package live

import (
	"testing"
	"time"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
}

func newTestState(durationSeconds int, members ...*entities.AIMember) (*SessionState, *fakeClock) {
	meeting := entities.NewMeeting("テスト会議", "ja", durationSeconds)
	clock := newFakeClock()
	state := NewSessionState(meeting, members)
	state.now = clock.Now
	return state, clock
}

func TestSessionStartIsIdempotent(t *testing.T) {
	state, clock := newTestState(0)

	if !state.StartIfNeeded() {
		t.Fatal("first start did not win")
	}
	clock.Advance(10 * time.Second)
	if state.StartIfNeeded() {
		t.Error("second start claimed to win")
	}
	if got := state.Elapsed(); got != 10 {
		t.Errorf("elapsed = %.1f, want 10 (clock anchored to first start)", got)
	}
}

func TestProgressCappedAt100(t *testing.T) {
	state, clock := newTestState(60)
	state.StartIfNeeded()

	clock.Advance(30 * time.Second)
	p, ok := state.Progress()
	if !ok || p != 50 {
		t.Errorf("progress = %.1f/%v, want 50/true", p, ok)
	}

	clock.Advance(60 * time.Second)
	p, _ = state.Progress()
	if p != 100 {
		t.Errorf("progress past the planned end = %.1f, want 100", p)
	}
}

func TestProgressUnavailableWithoutDuration(t *testing.T) {
	state, _ := newTestState(0)
	state.StartIfNeeded()
	if _, ok := state.Progress(); ok {
		t.Error("progress available for an unbounded meeting")
	}
}

func TestTranscriptsSortedByOffsetNotArrival(t *testing.T) {
	state, _ := newTestState(0)
	state.StartIfNeeded()

	// A slow transcription lands after a later one.
	state.AppendTranscript(entities.NewTranscript(uuid4(t), 42.0, "後の発言"))
	state.AppendTranscript(entities.NewTranscript(uuid4(t), 7.5, "先の発言"))

	units := state.Transcripts()
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}
	if units[0].Text != "先の発言" || units[1].Text != "後の発言" {
		t.Errorf("snapshot not ordered by offset: %q, %q", units[0].Text, units[1].Text)
	}
}

func TestTranscriptsSinceFiltersWindow(t *testing.T) {
	state, _ := newTestState(0)
	state.StartIfNeeded()
	for _, offset := range []float64{10, 50, 130, 200} {
		state.AppendTranscript(entities.NewTranscript(uuid4(t), offset, "x"))
	}

	got := state.TranscriptsSince(120)
	if len(got) != 2 {
		t.Fatalf("window units = %d, want 2", len(got))
	}
	if got[0].Timestamp != 130 || got[1].Timestamp != 200 {
		t.Errorf("window = [%.0f, %.0f]", got[0].Timestamp, got[1].Timestamp)
	}
}

func TestAppendRejectedAfterEnd(t *testing.T) {
	state, _ := newTestState(0)
	state.StartIfNeeded()
	state.MarkEnded()

	if state.AppendTranscript(entities.NewTranscript(uuid4(t), 1, "遅れて完了")) {
		t.Error("transcript accepted after end")
	}
	if state.AppendResponse(entities.NewAIResponse(uuid4(t), uuid4(t), 1, "遅れて完了")) {
		t.Error("AI response accepted after end")
	}
	if state.StartIfNeeded() {
		t.Error("session restarted after end")
	}
}

func TestMarkEndedIdempotent(t *testing.T) {
	state, _ := newTestState(0)
	if !state.MarkEnded() {
		t.Fatal("first end did not flip status")
	}
	if state.MarkEnded() {
		t.Error("second end claimed to flip status")
	}
	if !state.Ended() {
		t.Error("state not ended")
	}
}

func TestPhaseAdvanceIsMonotonic(t *testing.T) {
	state, _ := newTestState(600)

	if !state.AdvancePhase(entities.PhaseSharing) {
		t.Fatal("advance from none to sharing rejected")
	}
	if state.AdvancePhase(entities.PhaseIntroduction) {
		t.Error("phase moved backwards")
	}
	if state.AdvancePhase(entities.PhaseSharing) {
		t.Error("advance to the same phase accepted")
	}
	if !state.AdvancePhase(entities.PhaseWrapUp) {
		t.Error("skip-ahead advance rejected")
	}
	if state.Phase() != entities.PhaseWrapUp {
		t.Errorf("phase = %s, want wrap-up", state.Phase())
	}
}

func TestResponderSlotThrottle(t *testing.T) {
	state, _ := newTestState(0)
	state.StartIfNeeded()

	if !state.TryClaimResponderSlot(20, 15) {
		t.Fatal("first claim rejected")
	}
	if state.TryClaimResponderSlot(30, 15) {
		t.Error("claim 10s after the previous trigger was allowed")
	}
	if !state.TryClaimResponderSlot(36, 15) {
		t.Error("claim 16s after the previous trigger was rejected")
	}
}

func TestActiveMembersFiltersInactive(t *testing.T) {
	active := entities.NewAIMember(uuid4(t), "アクティブ", entities.PersonalityLogical)
	inactive := entities.NewAIMember(uuid4(t), "停止中", entities.PersonalityCreative)
	inactive.IsActive = false

	state, _ := newTestState(0, active, inactive)
	members := state.ActiveMembers()
	if len(members) != 1 || members[0].Name != "アクティブ" {
		t.Errorf("active members = %v", members)
	}
}

func TestSetFacilitationKeepsDurationWhenZero(t *testing.T) {
	state, _ := newTestState(1800)

	state.SetFacilitation(true, 0)
	enabled, duration := state.FacilitationEnabled()
	if !enabled || duration != 1800 {
		t.Errorf("after enable(0): enabled=%v duration=%d, want true/1800", enabled, duration)
	}

	state.SetFacilitation(true, 900)
	_, duration = state.FacilitationEnabled()
	if duration != 900 {
		t.Errorf("duration = %d, want 900", duration)
	}
}
