package live

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// phaseLoop drives the facilitation scheduler. The check interval follows
// the planned duration while facilitation is on; otherwise the loop idles on
// a slow poll waiting for it to be enabled.
func (c *Coordinator) phaseLoop() {
	defer c.wg.Done()

	for {
		enabled, duration := c.state.FacilitationEnabled()
		wait := idlePhasePoll
		if enabled && duration > 0 {
			wait = phaseTickInterval(time.Duration(duration) * time.Second)
		}

		select {
		case <-c.stopChan:
			return
		case <-time.After(wait):
			c.phaseTick(context.Background())
		}
	}
}

// phaseTick maps progress onto a phase and, on a transition, asks the
// generation engine for a facilitation message over the recent window. A
// failed generation skips the event; the phase advance itself stands.
func (c *Coordinator) phaseTick(ctx context.Context) {
	enabled, duration := c.state.FacilitationEnabled()
	if !enabled || duration <= 0 || !c.state.Started() || c.state.Ended() {
		return
	}

	progress, ok := c.state.Progress()
	if !ok {
		return
	}

	phase := PhaseForProgress(progress, PhaseThresholds{
		IntroPercent:   c.deps.Config.PhaseIntroPercent,
		SharingPercent: c.deps.Config.PhaseSharingPercent,
		WrapUpPercent:  c.deps.Config.PhaseWrapUpPercent,
	})
	if !c.state.AdvancePhase(phase) {
		return
	}
	c.persistMeeting(ctx)
	c.logger.Info("🧭 Phase transition", zap.String("phase", string(phase)), zap.Float64("progress", progress))

	recent := c.state.TranscriptsSince(c.state.Elapsed() - facilitatorWindowSeconds)
	message, err := c.deps.Generator.Complete(ctx, facilitatorSystemPrompt, facilitatorUserPrompt(phase, progress, recent))
	if err != nil {
		c.logger.Warn("⚠️ Facilitator message generation failed", zap.Error(err))
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	c.deps.Hub.Publish(ctx, c.meetingID, newFacilitatorEvent(message, phase, progress))
}
