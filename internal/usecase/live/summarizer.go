package live

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// summaryLoop re-summarizes the whole transcript on a fixed cadence while
// the session is running.
func (c *Coordinator) summaryLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.deps.Config.SummaryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			if !c.state.Started() || c.state.Ended() {
				continue
			}
			c.summarize(context.Background(), false)
		}
	}
}

// summarize runs one summary pass over the full transcript snapshot. A
// periodic pass with fewer than two units is skipped; a failed periodic pass
// is logged and dropped. The final pass always produces an outcome: a
// summary_complete event, a parse fallback, or an error event when there is
// nothing to summarize.
func (c *Coordinator) summarize(ctx context.Context, final bool) {
	units := c.state.Transcripts()

	if !final && len(units) < 2 {
		return
	}
	if final && len(units) == 0 {
		c.deps.Hub.Publish(ctx, c.meetingID, newErrorEvent("文字起こしデータがありません"))
		return
	}

	fullText := joinWithOffsets(units)

	out, err := c.deps.Generator.Complete(ctx, summarySystemPrompt, summaryUserPrompt(fullText))
	if err != nil {
		if final {
			c.deps.Hub.Publish(ctx, c.meetingID, newErrorEvent("要約生成エラー: "+err.Error()))
		} else {
			c.logger.Warn("⚠️ Periodic summary generation failed", zap.Error(err))
		}
		return
	}

	payload, err := parseSummaryResponse(out)
	if err != nil {
		if !final {
			c.logger.Warn("⚠️ Periodic summary parse failed", zap.Error(err))
			return
		}
		c.logger.Error("❌ Final summary parse failed, using fallback", zap.Error(err))
		payload = fallbackSummary(fullText)
	}

	c.state.SetSummary(payload)
	c.persistSummary(ctx, fullText, payload)

	if final {
		c.deps.Hub.Publish(ctx, c.meetingID, newSummaryCompleteEvent(payload))
	} else {
		c.deps.Hub.Publish(ctx, c.meetingID, newPartialSummaryEvent(payload, len(units), c.state.Elapsed()))
	}
}

func (c *Coordinator) persistSummary(ctx context.Context, fullText string, payload *SummaryPayload) {
	record := entities.NewMinuteSummary(c.meetingID)
	record.FullTranscript = fullText
	record.Summary = payload.Summary
	record.KeyPoints = datatypes.NewJSONSlice(payload.KeyPoints)
	record.ActionItems = datatypes.NewJSONSlice(payload.ActionItems)
	record.Decisions = datatypes.NewJSONSlice(payload.Decisions)

	if err := c.deps.Summaries.Upsert(ctx, record); err != nil {
		c.logger.Error("❌ Failed to store summary", zap.Error(err))
	}
}

func joinWithOffsets(units []*entities.Transcript) string {
	var b strings.Builder
	for i, t := range units {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatOffset(t.Timestamp))
		b.WriteString(" ")
		b.WriteString(t.Text)
	}
	return b.String()
}
