package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// fakeConn records delivered events and can be told to refuse sends,
// standing in for a connection whose peer stopped draining.
type fakeConn struct {
	mu     sync.Mutex
	events []*Event
	refuse bool
	closed bool
}

func (c *fakeConn) Send(ev *Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refuse || c.closed {
		return false
	}
	c.events = append(c.events, ev)
	return true
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) setRefuse(refuse bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refuse = refuse
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// received returns a copy of all events delivered so far.
func (c *fakeConn) received() []*Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Event, len(c.events))
	copy(out, c.events)
	return out
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
