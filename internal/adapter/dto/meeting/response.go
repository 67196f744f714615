package meeting

import "github.com/liveminutes-team/liveminutes/internal/domain/entities"

// MeetingDetailResponse is the full view returned by GET /meetings/:id.
type MeetingDetailResponse struct {
	Meeting     *entities.Meeting       `json:"meeting"`
	Transcripts []entities.Transcript   `json:"transcripts"`
	Summary     *entities.MinuteSummary `json:"summary,omitempty"`
	Members     []entities.AIMember     `json:"ai_members"`
	Responses   []entities.AIResponse   `json:"ai_responses"`
}
