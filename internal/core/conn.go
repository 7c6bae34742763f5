package core

// Conn is one member's outbound connection as seen by the core.
// The transport layer implements it on top of the actual socket.
type Conn interface {
	// Send enqueues an event for delivery without blocking. It returns
	// false when the connection can no longer accept events (closed or
	// backed up); the caller must treat that as a disconnection.
	Send(*Event) bool

	// Close terminates the connection. Safe to call more than once.
	Close()
}
