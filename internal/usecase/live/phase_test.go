package live

import (
	"testing"
	"time"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

var defaultThresholds = PhaseThresholds{IntroPercent: 10, SharingPercent: 25, WrapUpPercent: 85}

func TestPhaseForProgress(t *testing.T) {
	cases := []struct {
		progress float64
		want     entities.Phase
	}{
		{0, entities.PhaseIntroduction},
		{9.9, entities.PhaseIntroduction},
		{10, entities.PhaseSharing},
		{24.9, entities.PhaseSharing},
		{25, entities.PhaseDiscussion},
		{50, entities.PhaseDiscussion},
		{84.9, entities.PhaseDiscussion},
		{85, entities.PhaseWrapUp},
		{100, entities.PhaseWrapUp},
	}

	for _, tc := range cases {
		if got := PhaseForProgress(tc.progress, defaultThresholds); got != tc.want {
			t.Errorf("PhaseForProgress(%.1f) = %s, want %s", tc.progress, got, tc.want)
		}
	}
}

func TestPhaseForProgressThirtyMinuteMeeting(t *testing.T) {
	// 30-minute meeting, 20 minutes in: 66.7% progress lands in discussion.
	progress := (20.0 * 60) / (30.0 * 60) * 100
	if got := PhaseForProgress(progress, defaultThresholds); got != entities.PhaseDiscussion {
		t.Errorf("20min into 30min meeting: phase = %s, want discussion", got)
	}
}

func TestPhaseTickInterval(t *testing.T) {
	cases := []struct {
		duration time.Duration
		want     time.Duration
	}{
		{30 * time.Minute, 30 * time.Second},  // 90s clamps down to 30s
		{5 * time.Minute, 15 * time.Second},   // inside the band
		{1 * time.Minute, 5 * time.Second},    // 3s clamps up to 5s
		{20 * time.Minute, 30 * time.Second},  // exactly 60s clamps to 30s
		{100 * time.Second, 5 * time.Second},  // 5s boundary
		{200 * time.Second, 10 * time.Second}, // duration/20
	}

	for _, tc := range cases {
		if got := phaseTickInterval(tc.duration); got != tc.want {
			t.Errorf("phaseTickInterval(%s) = %s, want %s", tc.duration, got, tc.want)
		}
	}
}
