package proto

import "encoding/json"

// Inbound command names.
const (
	CommandBroadcast = "broadcast"
	CommandList      = "list"
	CommandMe        = "me"
	CommandDM        = "dm"
)

// Outbound event names.
const (
	EventMe        = "me"
	EventBroadcast = "broadcast"
	EventList      = "list"
	EventDM        = "dm"
	EventDMSent    = "dm_sent"
	EventError     = "error"
)

// Command is the envelope for one message coming from the client.
type Command struct {
	Command string `json:"command"`
	Message string `json:"message,omitempty"`
	To      string `json:"to,omitempty"`
}

// Event is the envelope for one message sent to the client.
// Member is empty for join/leave system notices.
type Event struct {
	Event   string   `json:"event"`
	Member  string   `json:"member,omitempty"`
	Message string   `json:"message,omitempty"`
	Members []string `json:"members,omitempty"`
}

// ParseCommand decodes a raw frame into a Command envelope.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, err
	}
	return cmd, nil
}
