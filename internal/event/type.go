package event

// AssessmentEventsQueue receives assessment lifecycle events consumed by
// the notification service.
const AssessmentEventsQueue = "assessment_events"

const EventTypeAssessmentCompleted = "assessment.completed"

// AssessmentCompletedEvent is the payload published after an assessment is
// persisted.
type AssessmentCompletedEvent struct {
	EventType      string  `json:"event_type"`
	AssessmentID   string  `json:"assessment_id"`
	UserID         string  `json:"user_id"`
	OverallScore   float64 `json:"overall_score"`
	Grade          string  `json:"grade"`
	Recommendation string  `json:"recommendation"`
	CompletedAt    int64   `json:"completed_at"`
}
