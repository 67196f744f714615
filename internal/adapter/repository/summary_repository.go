package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

// SummaryRepository handles running-summary data operations
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Upsert overwrites the meeting's summary wholesale. Summaries are
// regenerated from scratch on every pass, so there is no merge path.
func (r *SummaryRepository) Upsert(ctx context.Context, summary *entities.MinuteSummary) error {
	if summary == nil {
		return errors.New("summary cannot be nil")
	}
	summary.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "meeting_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_transcript", "summary", "key_points", "action_items", "decisions", "updated_at",
		}),
	}).Create(summary).Error
}

// FindByMeetingID retrieves the summary for a meeting
func (r *SummaryRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MinuteSummary, error) {
	var summary entities.MinuteSummary
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}
