package http

import (
	"sync"

	"github.com/mkravtsov/chatroom/internal/core"
)

// wsClient adapts one websocket connection to the core's Conn contract.
// Events are queued on a bounded channel drained by the write pump; when
// the queue is full or the client is closed, Send refuses and the room
// treats the member as disconnected.
type wsClient struct {
	events chan *core.Event
	closed chan struct{}
	once   sync.Once
}

func newWSClient(buffer int) *wsClient {
	if buffer <= 0 {
		buffer = 1
	}
	return &wsClient{
		events: make(chan *core.Event, buffer),
		closed: make(chan struct{}),
	}
}

func (c *wsClient) Send(ev *core.Event) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.events <- ev:
		return true
	case <-c.closed:
		return false
	default:
		// Queue full: the peer is not draining fast enough.
		return false
	}
}

func (c *wsClient) Close() {
	c.once.Do(func() {
		close(c.closed)
	})
}

// Events is drained by the write pump.
func (c *wsClient) Events() <-chan *core.Event {
	return c.events
}

// Closed fires once when the client is closed from either side.
func (c *wsClient) Closed() <-chan struct{} {
	return c.closed
}
