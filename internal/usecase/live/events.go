package live

import "github.com/liveminutes-team/liveminutes/internal/domain/entities"

// EventType identifies the kind of message fanned out to session observers.
type EventType string

const (
	EventTranscript         EventType = "transcript"
	EventPartialSummary     EventType = "partial_summary"
	EventSummaryComplete    EventType = "summary_complete"
	EventFacilitatorMessage EventType = "facilitator_message"
	EventAIResponse         EventType = "ai_response"
	EventError              EventType = "error"
)

// SummaryPayload carries a structured summary inside summary events.
type SummaryPayload struct {
	Summary     string                `json:"summary"`
	KeyPoints   []string              `json:"key_points"`
	ActionItems []entities.ActionItem `json:"action_items"`
	Decisions   []string              `json:"decisions"`
}

// Event is a single message delivered to session observers. Fields are
// populated per type; unused fields stay empty and are omitted from the
// wire format.
type Event struct {
	Type EventType `json:"type"`

	// transcript
	ID        string  `json:"id,omitempty"`
	Text      string  `json:"text,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`

	// partial_summary / summary_complete
	Summary      *SummaryPayload `json:"summary,omitempty"`
	SegmentCount int             `json:"segment_count,omitempty"`

	// facilitator_message and error
	Message  string  `json:"message,omitempty"`
	Phase    string  `json:"phase,omitempty"`
	Progress float64 `json:"progress,omitempty"`

	// ai_response
	AIMemberID  string `json:"ai_member_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Personality string `json:"personality,omitempty"`
	Response    string `json:"response,omitempty"`
	ResponseID  string `json:"response_id,omitempty"`
}

func newTranscriptEvent(t *entities.Transcript) Event {
	return Event{
		Type:      EventTranscript,
		ID:        t.ID.String(),
		Text:      t.Text,
		Timestamp: t.Timestamp,
	}
}

func newPartialSummaryEvent(s *SummaryPayload, segments int, elapsed float64) Event {
	return Event{
		Type:         EventPartialSummary,
		Summary:      s,
		SegmentCount: segments,
		Timestamp:    elapsed,
	}
}

func newSummaryCompleteEvent(s *SummaryPayload) Event {
	return Event{Type: EventSummaryComplete, Summary: s}
}

func newFacilitatorEvent(message string, phase entities.Phase, progress float64) Event {
	return Event{
		Type:     EventFacilitatorMessage,
		Message:  message,
		Phase:    string(phase),
		Progress: progress,
	}
}

func newAIResponseEvent(r *entities.AIResponse, m *entities.AIMember) Event {
	return Event{
		Type:        EventAIResponse,
		AIMemberID:  m.ID.String(),
		Name:        m.Name,
		Personality: string(m.Personality),
		Response:    r.Text,
		Timestamp:   r.Timestamp,
		ResponseID:  r.ID.String(),
	}
}

func newErrorEvent(msg string) Event {
	return Event{Type: EventError, Message: msg}
}
