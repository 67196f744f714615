package live

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// parseSummaryResponse parses the generation engine's JSON output into a
// summary payload.
func parseSummaryResponse(content string) (*SummaryPayload, error) {
	content = extractJSON(content)

	var payload SummaryPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse summary response: %w", err)
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("missing summary in response")
	}

	if payload.KeyPoints == nil {
		payload.KeyPoints = []string{}
	}
	if payload.ActionItems == nil {
		payload.ActionItems = []entities.ActionItem{}
	}
	if payload.Decisions == nil {
		payload.Decisions = []string{}
	}
	return &payload, nil
}

// fallbackSummary builds a minimal payload when the engine's output could
// not be parsed, so the final summary is never lost entirely.
func fallbackSummary(fullText string) *SummaryPayload {
	excerpt := fullText
	if len([]rune(excerpt)) > 200 {
		excerpt = string([]rune(excerpt)[:200]) + "..."
	}
	return &SummaryPayload{
		Summary:     "議事録の自動生成に失敗しました。",
		KeyPoints:   []string{excerpt},
		ActionItems: []entities.ActionItem{},
		Decisions:   []string{},
	}
}

// extractJSON strips markdown code fences the model sometimes wraps JSON in.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
