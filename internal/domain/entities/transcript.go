package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptSource tags where a transcript unit came from.
type TranscriptSource string

const (
	TranscriptSourceEngine TranscriptSource = "engine"
	TranscriptSourceManual TranscriptSource = "manual"
)

// Transcript is one timestamped unit of recognized speech. Units are
// immutable after creation; Timestamp is the elapsed-time offset from the
// session start and is the sort key for all chronological reads. Arrival
// order is not meaningful: a slow transcription can land after a later one.
type Transcript struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID        `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Timestamp float64          `json:"timestamp" gorm:"not null;index"` // seconds from session start
	Text      string           `json:"text" gorm:"type:text;not null"`
	Source    TranscriptSource `json:"source" gorm:"type:varchar(20);not null;default:'engine'"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new engine-produced transcript unit.
func NewTranscript(meetingID uuid.UUID, timestamp float64, text string) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Timestamp: timestamp,
		Text:      text,
		Source:    TranscriptSourceEngine,
		CreatedAt: time.Now(),
	}
}

// NewManualTranscript creates a manually entered transcript unit.
func NewManualTranscript(meetingID uuid.UUID, timestamp float64, text string) *Transcript {
	t := NewTranscript(meetingID, timestamp, text)
	t.Source = TranscriptSourceManual
	return t
}
