package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/liveminutes-team/liveminutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	liveHandler    *Live
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, liveHandler *Live) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		liveHandler:    liveHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	rt.setupMeetingRoutes(v1)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.POST("/:id/end", rt.meetingHandler.EndMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.POST("/:id/transcripts", rt.meetingHandler.AddTranscript)
	meetings.POST("/:id/members", rt.meetingHandler.AddMember)
	meetings.GET("/:id/live", rt.liveHandler.Serve)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
