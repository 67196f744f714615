package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// MeetingRepository is the record-store boundary for meetings.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranscriptRepository stores transcript units.
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entities.Transcript) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.Transcript, error)
}

// SummaryRepository stores the single running summary per meeting.
type SummaryRepository interface {
	Upsert(ctx context.Context, summary *entities.MinuteSummary) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MinuteSummary, error)
}

// AIRepository stores AI members and their response units.
type AIRepository interface {
	CreateMember(ctx context.Context, member *entities.AIMember) error
	FindActiveMembers(ctx context.Context, meetingID uuid.UUID) ([]entities.AIMember, error)
	CreateResponse(ctx context.Context, response *entities.AIResponse) error
	FindResponsesByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.AIResponse, error)
}
