package meeting

// CreateMeetingRequest is the payload for POST /meetings.
type CreateMeetingRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	Language        string `json:"language" validate:"omitempty,max=20"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=0,max=1440"`
	UseFacilitator  bool   `json:"use_facilitator"`
}

// AddTranscriptRequest is the payload for POST /meetings/:id/transcripts.
type AddTranscriptRequest struct {
	Text string `json:"text" validate:"required"`
}

// AddMemberRequest is the payload for POST /meetings/:id/members.
type AddMemberRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Personality string `json:"personality" validate:"required,oneof=logical creative diplomatic aggressive"`
}
