package core

// CommandKind describes what a member wants to do.
type CommandKind int

const (
	// CommandBroadcast delivers chat text to everyone in the room.
	CommandBroadcast CommandKind = iota
	// CommandList requests a snapshot of the current member names.
	CommandList
	// CommandMe requests the member's own identity again.
	CommandMe
	// CommandDM delivers text to a single named member.
	CommandDM
)

// Command represents an action requested by a member.
type Command struct {
	Kind CommandKind
	Text string
	To   string // CommandDM only
}
