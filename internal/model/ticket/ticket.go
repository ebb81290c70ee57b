package ticket

import "time"

// StatusOpen is the only status this service ever assigns. Transitions
// happen outside the chat backend, by whoever works the queue.
const StatusOpen = "open"

// Ticket records an escalation to a human agent. SessionID is empty for
// tickets raised without a conversation attached.
type Ticket struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Status    string    `json:"status"`
	Summary   string    `json:"summary"`
	Assignee  string    `json:"assignee,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
