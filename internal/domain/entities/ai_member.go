package entities

import (
	"time"

	"github.com/google/uuid"
)

// Personality is the fixed vocabulary of AI participant styles.
type Personality string

const (
	PersonalityLogical    Personality = "logical"
	PersonalityCreative   Personality = "creative"
	PersonalityDiplomatic Personality = "diplomatic"
	PersonalityAggressive Personality = "aggressive"
)

// IsValid reports whether p is one of the known personality tags.
func (p Personality) IsValid() bool {
	switch p {
	case PersonalityLogical, PersonalityCreative, PersonalityDiplomatic, PersonalityAggressive:
		return true
	}
	return false
}

// AIMember is a configured synthetic participant that can generate reactive
// commentary during a session.
type AIMember struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID   `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Name        string      `json:"name" gorm:"type:varchar(100);not null"`
	Personality Personality `json:"personality" gorm:"type:varchar(20);not null;default:'logical'"`
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AIMember) TableName() string {
	return "ai_members"
}

// NewAIMember creates an active AI member for a meeting.
func NewAIMember(meetingID uuid.UUID, name string, personality Personality) *AIMember {
	return &AIMember{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Name:        name,
		Personality: personality,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}
