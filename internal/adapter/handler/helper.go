package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/liveminutes-team/liveminutes/errors"
	"github.com/liveminutes-team/liveminutes/internal/adapter/dto/common"
)

// respondError maps an application error onto the standard error response.
// Unknown errors become opaque 500s so internals never leak to clients.
func respondError(c echo.Context, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		details := make(map[string]interface{}, len(appErr.Details))
		for k, v := range appErr.Details {
			details[k] = v
		}
		return c.JSON(appErr.HTTPCode, common.ErrorResponse{
			Error:   appErr.Code.String(),
			Message: appErr.Message,
			Details: details,
			Code:    appErr.Code.String(),
		})
	}
	return c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Error:   errors.ErrorCode_INTERNAL.String(),
		Message: "Internal server error",
	})
}

// parseMeetingID extracts and validates the :id path parameter.
func parseMeetingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid meeting id")
	}
	return id, nil
}
