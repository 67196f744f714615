package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/liveminutes-team/liveminutes/errors"
	"github.com/liveminutes-team/liveminutes/internal/adapter/dto/common"
	"github.com/liveminutes-team/liveminutes/internal/adapter/dto/meeting"
	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
	"github.com/liveminutes-team/liveminutes/internal/domain/repositories"
	"github.com/liveminutes-team/liveminutes/internal/usecase/live"
)

// Meeting handles meeting lifecycle and record-store HTTP requests.
type Meeting struct {
	meetings    repositories.MeetingRepository
	transcripts repositories.TranscriptRepository
	summaries   repositories.SummaryRepository
	ai          repositories.AIRepository
	sessions    *live.Manager
	logger      *zap.Logger
}

// NewMeetingHandler creates a meeting handler.
func NewMeetingHandler(
	meetings repositories.MeetingRepository,
	transcripts repositories.TranscriptRepository,
	summaries repositories.SummaryRepository,
	ai repositories.AIRepository,
	sessions *live.Manager,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		meetings:    meetings,
		transcripts: transcripts,
		summaries:   summaries,
		ai:          ai,
		sessions:    sessions,
		logger:      logger,
	}
}

// CreateMeeting handles POST /meetings
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrInvalidArgument(err.Error()))
	}

	language := req.Language
	if language == "" {
		language = "ja"
	}

	m := entities.NewMeeting(req.Title, language, req.DurationMinutes*60)
	m.UseFacilitator = req.UseFacilitator

	if err := h.meetings.Create(c.Request().Context(), m); err != nil {
		h.logger.Error("❌ Failed to create meeting", zap.Error(err))
		return respondError(c, errors.ErrDBQueryFailed(err))
	}

	h.logger.Info("📝 Meeting created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("title", m.Title))
	return c.JSON(http.StatusCreated, m)
}

// GetMeeting handles GET /meetings/:id
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()

	m, err := h.meetings.FindByID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	if m == nil {
		return respondError(c, errors.ErrMeetingNotFound(id.String()))
	}

	transcripts, err := h.transcripts.FindByMeetingID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	summary, err := h.summaries.FindByMeetingID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	members, err := h.ai.FindActiveMembers(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	responses, err := h.ai.FindResponsesByMeetingID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}

	return c.JSON(http.StatusOK, meeting.MeetingDetailResponse{
		Meeting:     m,
		Transcripts: transcripts,
		Summary:     summary,
		Members:     members,
		Responses:   responses,
	})
}

// EndMeeting handles POST /meetings/:id/end
func (h *Meeting) EndMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.sessions.End(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	h.logger.Info("🏁 Meeting ended via API", zap.String("meeting_id", id.String()))
	return c.JSON(http.StatusOK, common.SuccessResponse{Message: "meeting ended"})
}

// DeleteMeeting handles DELETE /meetings/:id
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()

	m, err := h.meetings.FindByID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	if m == nil {
		return respondError(c, errors.ErrMeetingNotFound(id.String()))
	}

	// A running session must be wound down before its data goes away.
	if err := h.sessions.End(ctx, id); err != nil {
		return respondError(c, err)
	}
	if err := h.meetings.Delete(ctx, id); err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}

	h.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", id.String()))
	return c.NoContent(http.StatusNoContent)
}

// AddTranscript handles POST /meetings/:id/transcripts, the manual entry
// path for corrections or typed notes.
func (h *Meeting) AddTranscript(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req meeting.AddTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrInvalidArgument(err.Error()))
	}
	ctx := c.Request().Context()

	// A live session routes the unit through the coordinator so observers
	// see it; otherwise it goes straight to the store.
	if coord, ok := h.sessions.Get(id); ok && !coord.Ended() {
		coord.HandleManualTranscript(ctx, req.Text)
		return c.JSON(http.StatusCreated, common.SuccessResponse{Message: "transcript added"})
	}

	m, err := h.meetings.FindByID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	if m == nil {
		return respondError(c, errors.ErrMeetingNotFound(id.String()))
	}

	unit := entities.NewManualTranscript(id, 0, req.Text)
	if err := h.transcripts.Create(ctx, unit); err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	return c.JSON(http.StatusCreated, unit)
}

// AddMember handles POST /meetings/:id/members
func (h *Meeting) AddMember(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req meeting.AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrInvalidArgument(err.Error()))
	}
	ctx := c.Request().Context()

	m, err := h.meetings.FindByID(ctx, id)
	if err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}
	if m == nil {
		return respondError(c, errors.ErrMeetingNotFound(id.String()))
	}
	if m.IsEnded() {
		return respondError(c, errors.ErrMeetingEnded(id.String()))
	}

	member := entities.NewAIMember(id, req.Name, entities.Personality(req.Personality))
	if err := h.ai.CreateMember(ctx, member); err != nil {
		return respondError(c, errors.ErrDBQueryFailed(err))
	}

	// Make the member visible to a running session immediately.
	if coord, ok := h.sessions.Get(id); ok {
		coord.AddMember(member)
	}

	h.logger.Info("🤖 AI member added",
		zap.String("meeting_id", id.String()),
		zap.String("name", member.Name),
		zap.String("personality", string(member.Personality)))
	return c.JSON(http.StatusCreated, member)
}
