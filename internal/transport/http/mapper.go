package http

import (
	"github.com/mkravtsov/chatroom/internal/core"
	"github.com/mkravtsov/chatroom/internal/proto"
)

// commandFromWire maps an inbound envelope to a core command.
// Unknown command names report ok=false and are dropped by the read pump;
// a bad frame never terminates the session.
func commandFromWire(in proto.Command) (core.Command, bool) {
	switch in.Command {
	case proto.CommandBroadcast:
		return core.Command{Kind: core.CommandBroadcast, Text: in.Message}, true
	case proto.CommandList:
		return core.Command{Kind: core.CommandList}, true
	case proto.CommandMe:
		return core.Command{Kind: core.CommandMe}, true
	case proto.CommandDM:
		return core.Command{Kind: core.CommandDM, Text: in.Message, To: in.To}, true
	default:
		return core.Command{}, false
	}
}

func eventToWire(ev *core.Event) proto.Event {
	switch ev.Kind {
	case core.EventMe:
		return proto.Event{Event: proto.EventMe, Member: ev.Member}
	case core.EventBroadcast:
		return proto.Event{Event: proto.EventBroadcast, Member: ev.Member, Message: ev.Text}
	case core.EventList:
		return proto.Event{Event: proto.EventList, Members: ev.Members}
	case core.EventDM:
		return proto.Event{Event: proto.EventDM, Member: ev.Member, Message: ev.Text}
	case core.EventDMSent:
		return proto.Event{Event: proto.EventDMSent, Member: ev.Member, Message: ev.Text}
	case core.EventError:
		return proto.Event{Event: proto.EventError, Message: ev.Text}
	default:
		return proto.Event{Event: proto.EventError, Message: "unknown event"}
	}
}
