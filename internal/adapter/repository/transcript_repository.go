package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Create creates a new transcript unit
func (r *TranscriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Create(transcript).Error
}

// FindByMeetingID retrieves all transcript units for a meeting ordered by the
// elapsed-time offset. Chronological consumers must rely on this ordering,
// never on insertion order.
func (r *TranscriptRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.Transcript, error) {
	var transcripts []entities.Transcript
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("timestamp ASC").
		Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}
