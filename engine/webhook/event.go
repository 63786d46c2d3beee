package webhook

// Event types carried on dispatched payloads.
const (
	EventQueryReceived    = "query_received"
	EventReminderReceived = "reminder_received"
)

// Event is the payload fanned out to every configured destination. Fields are
// typed rather than map-keyed so the orchestrator/dispatcher boundary is
// checked at compile time. Timestamp, OriginEndpoint and Environment are set
// on every event regardless of type.
type Event struct {
	Type           string `json:"event_type"`
	Timestamp      string `json:"timestamp"`
	OriginEndpoint string `json:"origin_endpoint"`
	Environment    string `json:"environment"`

	// Query events
	Question string `json:"pregunta,omitempty"`

	// Reminder events
	ReminderText string `json:"reminder_text,omitempty"`
	Priority     *int   `json:"priority,omitempty"`
	TaskID       string `json:"task_id,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	Category     string `json:"type,omitempty"`
	ResponseMode string `json:"response_mode,omitempty"`

	// Generated content, present on both event types
	Answer       string `json:"respuesta_groq,omitempty"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

// Target is a single configured webhook destination.
type Target struct {
	URL   string
	Label string
}

// Targets builds the destination list from the configured URLs. Every
// configured destination receives every event, independent of the
// environment tag.
func Targets(prodURL, testURL string) []Target {
	targets := make([]Target, 0, 2)
	if prodURL != "" {
		targets = append(targets, Target{URL: prodURL, Label: "prod"})
	}
	if testURL != "" {
		targets = append(targets, Target{URL: testURL, Label: "test"})
	}
	return targets
}
