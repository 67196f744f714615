package live

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// maybeRespond lets a random active AI member comment on the recent
// conversation. Invoked after every recorded transcript unit; the session
// clock throttles how often a response actually fires. A failed or empty
// generation is a silent miss.
func (c *Coordinator) maybeRespond(ctx context.Context) {
	members := c.state.ActiveMembers()
	if len(members) == 0 {
		return
	}

	elapsed := c.state.Elapsed()
	if !c.state.TryClaimResponderSlot(elapsed, c.deps.Config.ResponderMinInterval.Seconds()) {
		return
	}

	member := members[c.pickMember(len(members))]
	recent := c.state.TranscriptsSince(elapsed - responderWindowSeconds)

	text, err := c.deps.Generator.Complete(ctx,
		personalitySystemPrompt(member.Personality),
		responderUserPrompt(member.Name, recent))
	if err != nil {
		c.logger.Warn("⚠️ AI response generation failed", zap.String("member", member.Name), zap.Error(err))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	resp := entities.NewAIResponse(c.meetingID, member.ID, elapsed, text)
	if !c.state.AppendResponse(resp) {
		return
	}
	if err := c.deps.AI.CreateResponse(ctx, resp); err != nil {
		c.logger.Error("❌ Failed to store AI response", zap.Error(err))
	}
	c.deps.Hub.Publish(ctx, c.meetingID, newAIResponseEvent(resp, member))
}
