package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// member is a registered connection. Owned exclusively by the Room.
type member struct {
	id   MemberID
	name string
	conn Conn
}

// Room is the concurrent registry of connected members. All operations are
// atomic with respect to each other; fan-out delivery happens on a snapshot
// taken under the lock so per-member sends never block the critical section.
type Room struct {
	log *zerolog.Logger
	ids Allocator

	mu      sync.Mutex
	members map[MemberID]*member
	order   []MemberID // insertion order, drives List
}

// NewRoom constructs an empty room.
func NewRoom(logger *zerolog.Logger) *Room {
	return &Room{
		log:     logger,
		members: make(map[MemberID]*member),
	}
}

// Register allocates an identity and inserts the connection into the room.
// Returns the identity and its display name.
func (r *Room) Register(conn Conn) (MemberID, string) {
	id := r.ids.Next()
	m := &member{id: id, name: id.Name(), conn: conn}

	r.mu.Lock()
	r.members[id] = m
	r.order = append(r.order, id)
	n := len(r.members)
	r.mu.Unlock()

	r.log.Info().Str("member", m.name).Int("room_size", n).Msg("member registered")
	return id, m.name
}

// Deregister removes the member if present and reports whether removal
// actually happened. Deregistering an absent member is a no-op, so racing
// disconnect paths stay idempotent.
func (r *Room) Deregister(id MemberID) bool {
	r.mu.Lock()
	m, ok := r.members[id]
	if ok {
		delete(r.members, id)
		for i, mid := range r.order {
			if mid == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	n := len(r.members)
	r.mu.Unlock()

	if ok {
		r.log.Info().Str("member", m.name).Int("room_size", n).Msg("member deregistered")
	}
	return ok
}

// List returns the display names of all current members, oldest joined first.
func (r *Room) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		names = append(names, r.members[id].name)
	}
	return names
}

// Broadcast delivers text from the given sender to every current member,
// including the sender itself.
func (r *Room) Broadcast(sender MemberID, text string) {
	r.deliver(&Event{Kind: EventBroadcast, Member: sender.Name(), Text: text})
}

// NotifyJoined announces a new member to everyone currently registered.
// The joiner is already registered at this point, so it hears its own notice.
func (r *Room) NotifyJoined(name string) {
	r.deliver(&Event{Kind: EventBroadcast, Text: name + " has joined!"})
}

// NotifyLeft announces a departure to the remaining members. The departed
// member must already be deregistered, so it never hears its own notice.
func (r *Room) NotifyLeft(name string) {
	r.deliver(&Event{Kind: EventBroadcast, Text: name + " has left!"})
}

// SendTo delivers an event to the member with the given display name.
// Reports whether such a member was registered.
func (r *Room) SendTo(name string, ev *Event) bool {
	r.mu.Lock()
	var target *member
	for _, id := range r.order {
		if m := r.members[id]; m.name == name {
			target = m
			break
		}
	}
	r.mu.Unlock()

	if target == nil {
		return false
	}
	if !target.conn.Send(ev) {
		r.evict(target)
	}
	return true
}

// deliver fans an event out to a consistent snapshot of the membership.
// Sends run outside the lock; a refused send evicts that member without
// affecting delivery to the rest.
func (r *Room) deliver(ev *Event) {
	r.mu.Lock()
	targets := make([]*member, 0, len(r.order))
	for _, id := range r.order {
		targets = append(targets, r.members[id])
	}
	r.mu.Unlock()

	for _, m := range targets {
		if !m.conn.Send(ev) {
			r.evict(m)
		}
	}
}

// evict drops a member whose connection can no longer accept events:
// deregister, close the connection, announce the departure. The session's
// own close path later finds the member gone and stays silent, so the
// departure notice goes out exactly once.
func (r *Room) evict(m *member) {
	if !r.Deregister(m.id) {
		return
	}
	m.conn.Close()
	r.log.Warn().Str("member", m.name).Msg("send failed, member evicted")
	r.NotifyLeft(m.name)
}
