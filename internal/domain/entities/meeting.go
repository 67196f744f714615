package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the lifecycle status of a meeting.
type MeetingStatus string

const (
	MeetingStatusActive MeetingStatus = "active"
	MeetingStatusEnded  MeetingStatus = "ended"
)

// Phase is the coarse stage of a facilitated session timeline.
type Phase string

const (
	PhaseNone         Phase = "none"
	PhaseIntroduction Phase = "introduction"
	PhaseSharing      Phase = "sharing"
	PhaseDiscussion   Phase = "discussion"
	PhaseWrapUp       Phase = "wrap-up"
)

// rank orders phases for the monotonicity guard. PhaseNone ranks lowest so
// any real phase may follow it.
func (p Phase) rank() int {
	switch p {
	case PhaseIntroduction:
		return 1
	case PhaseSharing:
		return 2
	case PhaseDiscussion:
		return 3
	case PhaseWrapUp:
		return 4
	default:
		return 0
	}
}

// After reports whether p is a later phase than other.
func (p Phase) After(other Phase) bool {
	return p.rank() > other.rank()
}

// Meeting represents one continuous recording-and-analysis session.
type Meeting struct {
	ID              uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title           string        `json:"title" gorm:"type:varchar(255);not null"`
	Language        string        `json:"language" gorm:"type:varchar(20);default:'ja'"`
	DurationSeconds int           `json:"duration_seconds" gorm:"default:0"` // 0 = unbounded
	Status          MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	Phase           Phase         `json:"phase" gorm:"type:varchar(20);not null;default:'none'"`
	UseFacilitator  bool          `json:"use_facilitator" gorm:"default:false"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting in the active state.
func NewMeeting(title, language string, durationSeconds int) *Meeting {
	return &Meeting{
		ID:              uuid.New(),
		Title:           title,
		Language:        language,
		DurationSeconds: durationSeconds,
		Status:          MeetingStatusActive,
		Phase:           PhaseNone,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// Start records the session start instant. Idempotent: the first call wins.
func (m *Meeting) Start(now time.Time) bool {
	if m.StartedAt != nil {
		return false
	}
	m.StartedAt = &now
	return true
}

// End marks the meeting ended. The status flip is permanent.
func (m *Meeting) End() {
	m.Status = MeetingStatusEnded
}

// IsEnded reports whether the meeting has been explicitly ended.
func (m *Meeting) IsEnded() bool {
	return m.Status == MeetingStatusEnded
}

// Elapsed returns seconds since the session start instant, or 0 when the
// session has not started.
func (m *Meeting) Elapsed(now time.Time) float64 {
	if m.StartedAt == nil {
		return 0
	}
	return now.Sub(*m.StartedAt).Seconds()
}
