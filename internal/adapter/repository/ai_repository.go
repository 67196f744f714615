package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// AIRepository handles AI member and response data operations
type AIRepository struct {
	db *gorm.DB
}

// NewAIRepository creates a new AI repository
func NewAIRepository(db *gorm.DB) *AIRepository {
	return &AIRepository{db: db}
}

// CreateMember registers an AI member for a meeting
func (r *AIRepository) CreateMember(ctx context.Context, member *entities.AIMember) error {
	if member == nil {
		return errors.New("member cannot be nil")
	}
	return r.db.WithContext(ctx).Create(member).Error
}

// FindActiveMembers retrieves the active AI members of a meeting
func (r *AIRepository) FindActiveMembers(ctx context.Context, meetingID uuid.UUID) ([]entities.AIMember, error) {
	var members []entities.AIMember
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND is_active = ?", meetingID, true).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreateResponse stores a generated response unit
func (r *AIRepository) CreateResponse(ctx context.Context, response *entities.AIResponse) error {
	if response == nil {
		return errors.New("response cannot be nil")
	}
	return r.db.WithContext(ctx).Create(response).Error
}

// FindResponsesByMeetingID retrieves all response units ordered by the
// elapsed-time offset
func (r *AIRepository) FindResponsesByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.AIResponse, error) {
	var responses []entities.AIResponse
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("timestamp ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}
