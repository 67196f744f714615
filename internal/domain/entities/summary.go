package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActionItem is a task extracted from the conversation, optionally assigned.
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
}

// MinuteSummary is the running summary of a meeting. At most one row exists
// per meeting; every summarization pass overwrites it wholesale, never merges.
type MinuteSummary struct {
	ID             uuid.UUID                       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID      uuid.UUID                       `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`
	FullTranscript string                          `json:"full_transcript" gorm:"type:text"`
	Summary        string                          `json:"summary" gorm:"type:text"`
	KeyPoints      datatypes.JSONSlice[string]     `json:"key_points" gorm:"type:jsonb"`
	ActionItems    datatypes.JSONSlice[ActionItem] `json:"action_items" gorm:"type:jsonb"`
	Decisions      datatypes.JSONSlice[string]     `json:"decisions" gorm:"type:jsonb"`
	CreatedAt      time.Time                       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MinuteSummary) TableName() string {
	return "minute_summaries"
}

// NewMinuteSummary creates a summary record for a meeting.
func NewMinuteSummary(meetingID uuid.UUID) *MinuteSummary {
	return &MinuteSummary{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		KeyPoints:   datatypes.NewJSONSlice([]string{}),
		ActionItems: datatypes.NewJSONSlice([]ActionItem{}),
		Decisions:   datatypes.NewJSONSlice([]string{}),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
