package core

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Session drives one connection through its lifetime in the room:
// register and welcome on start, dispatch commands while active,
// deregister and announce the departure on close.
type Session struct {
	room *Room
	conn Conn
	id   MemberID
	name string
	log  *zerolog.Logger

	closeOnce sync.Once
}

// StartSession registers the connection and emits the welcome sequence:
// the me event directly to the new member, then the join notice to the
// whole room (which by then includes the new member).
func StartSession(room *Room, conn Conn, logger *zerolog.Logger) *Session {
	id, name := room.Register(conn)
	s := &Session{
		room: room,
		conn: conn,
		id:   id,
		name: name,
		log:  logger,
	}

	if !conn.Send(&Event{Kind: EventMe, Member: name}) {
		// The connection died before the member was ever announced;
		// retract the registration without a departure notice.
		s.closeOnce.Do(func() {
			room.Deregister(id)
			conn.Close()
		})
		return s
	}
	room.NotifyJoined(name)
	return s
}

// Name returns the member's display name.
func (s *Session) Name() string {
	return s.name
}

// Handle dispatches one command. Commands run synchronously on the
// caller's goroutine; the room lock is never held across them.
func (s *Session) Handle(cmd Command) {
	switch cmd.Kind {
	case CommandBroadcast:
		s.room.Broadcast(s.id, cmd.Text)
	case CommandList:
		s.reply(&Event{Kind: EventList, Members: s.room.List()})
	case CommandMe:
		s.reply(&Event{Kind: EventMe, Member: s.name})
	case CommandDM:
		s.directMessage(cmd)
	}
}

func (s *Session) directMessage(cmd Command) {
	if cmd.To == "" {
		s.reply(&Event{Kind: EventError, Text: "recipient is required"})
		return
	}
	sent := s.room.SendTo(cmd.To, &Event{Kind: EventDM, Member: s.name, Text: cmd.Text})
	if !sent {
		s.reply(&Event{Kind: EventError, Text: fmt.Sprintf("member %q not found", cmd.To)})
		return
	}
	s.reply(&Event{Kind: EventDMSent, Member: cmd.To, Text: cmd.Text})
}

// reply sends directly to this member only. A refused send means the
// connection is gone and the session closes.
func (s *Session) reply(ev *Event) {
	if !s.conn.Send(ev) {
		s.Close()
	}
}

// Close transitions the session to its terminal state: deregister, close
// the connection, and announce the departure to the remaining members.
// Idempotent; concurrent triggers (peer close racing a fan-out eviction)
// deregister at most once and notify at most once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		removed := s.room.Deregister(s.id)
		s.conn.Close()
		if removed {
			s.room.NotifyLeft(s.name)
		}
		s.log.Info().Str("member", s.name).Msg("session closed")
	})
}
