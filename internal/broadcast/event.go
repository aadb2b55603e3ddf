package broadcast

import "github.com/mrsanskar19/self-transfer/internal/store"

// Event actions
const (
	ActionAdd    = "add"
	ActionDelete = "delete"
	ActionSeen   = "seen"
)

// Event is a domain event pushed to subscribers. Exactly one payload shape
// per action:
//   - add:    Message set (URL stripped, matching list-view policy)
//   - delete: ID set
//   - seen:   ID and ViewerID set
type Event struct {
	Action   string         `json:"action"`
	Message  *store.Message `json:"message,omitempty"`
	ID       string         `json:"id,omitempty"`
	ViewerID string         `json:"viewerId,omitempty"`
}

// AddEvent builds an add event, stripping the payload URL.
func AddEvent(m store.Message) Event {
	stripped := m.WithoutURL()
	return Event{Action: ActionAdd, Message: &stripped}
}

// DeleteEvent builds a delete event.
func DeleteEvent(msgID string) Event {
	return Event{Action: ActionDelete, ID: msgID}
}

// SeenEvent builds a seen event.
func SeenEvent(msgID, viewerID string) Event {
	return Event{Action: ActionSeen, ID: msgID, ViewerID: viewerID}
}

// messageType returns the message type for filter evaluation, empty when the
// event carries no message.
func (e Event) messageType() string {
	if e.Message != nil {
		return e.Message.Type
	}
	return ""
}

// userID returns the author or viewer identity for filter evaluation.
func (e Event) userID() string {
	if e.Message != nil {
		return e.Message.UserID
	}
	return e.ViewerID
}

// eventID returns the subject message id for filter evaluation.
func (e Event) eventID() string {
	if e.Message != nil {
		return e.Message.ID
	}
	return e.ID
}
