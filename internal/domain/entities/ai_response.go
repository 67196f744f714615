package entities

import (
	"time"

	"github.com/google/uuid"
)

// AIResponse is one generated commentary turn from an AI member. Immutable;
// ordered by the elapsed-time offset, not by creation order.
type AIResponse struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MemberID  uuid.UUID `json:"member_id" gorm:"type:uuid;not null;index"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Timestamp float64   `json:"timestamp" gorm:"not null"` // seconds from session start
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AIResponse) TableName() string {
	return "ai_responses"
}

// NewAIResponse creates a response unit for a member.
func NewAIResponse(meetingID, memberID uuid.UUID, timestamp float64, text string) *AIResponse {
	return &AIResponse{
		ID:        uuid.New(),
		MemberID:  memberID,
		MeetingID: meetingID,
		Timestamp: timestamp,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
