package live

import (
	"time"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// PhaseThresholds are the progress percentages at which a meeting moves out
// of each phase.
type PhaseThresholds struct {
	IntroPercent   float64
	SharingPercent float64
	WrapUpPercent  float64
}

// PhaseForProgress maps a progress percentage onto the meeting phase. The
// mapping is pure; monotonicity across ticks is enforced by the session
// state, not here.
func PhaseForProgress(progress float64, t PhaseThresholds) entities.Phase {
	switch {
	case progress < t.IntroPercent:
		return entities.PhaseIntroduction
	case progress < t.SharingPercent:
		return entities.PhaseSharing
	case progress < t.WrapUpPercent:
		return entities.PhaseDiscussion
	default:
		return entities.PhaseWrapUp
	}
}

// phaseTickInterval derives the scheduler check interval from the planned
// meeting duration: a twentieth of the duration, clamped to [5s, 30s].
func phaseTickInterval(duration time.Duration) time.Duration {
	interval := duration / 20
	if interval < 5*time.Second {
		return 5 * time.Second
	}
	if interval > 30*time.Second {
		return 30 * time.Second
	}
	return interval
}
