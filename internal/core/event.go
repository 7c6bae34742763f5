package core

// EventKind is a notification the core emits to members.
type EventKind int

const (
	// EventMe tells a member its own display name, once after registration.
	EventMe EventKind = iota
	// EventBroadcast carries chat text or a join/leave system notice.
	EventBroadcast
	// EventList delivers a membership snapshot in reply to a list command.
	EventList
	// EventDM carries a direct message to a single member.
	EventDM
	// EventDMSent confirms a direct message back to its sender.
	EventDMSent
	// EventError reports a rejected command back to its sender.
	EventError
)

// Event is sent to members to describe what happened in the room.
// Member is the sender or subject; it is empty for system notices.
type Event struct {
	Kind    EventKind
	Member  string
	Text    string
	Members []string // EventList only
}
