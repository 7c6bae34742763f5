package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mkravtsov/chatroom/internal/core"
	"github.com/mkravtsov/chatroom/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to room sessions.
type WSHandler struct {
	room       *core.Room
	sendBuffer int
	log        *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler serving the given room.
func NewWSHandler(room *core.Room, sendBuffer int, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{room: room, sendBuffer: sendBuffer, log: logger}
}

// Serve handles one WebSocket connection for its entire lifetime.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	connLog := h.log.With().Str("conn_id", uuid.NewString()).Logger()

	client := newWSClient(h.sendBuffer)
	sess := core.StartSession(h.room, client, &connLog)
	defer sess.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readPump(ctx, conn, sess, &connLog)
	}()
	go func() {
		errCh <- h.writePump(ctx, conn, client, &connLog)
	}()

	err = <-errCh
	cancel() // stop the other pump
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			connLog.Warn().Err(err).Str("member", sess.Name()).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readPump consumes frames until the connection fails or the session is
// closed. Frames that do not decode into a known command are logged and
// skipped, never fatal.
func (h *WSHandler) readPump(ctx context.Context, conn *websocket.Conn, sess *core.Session, logger *zerolog.Logger) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		wireCmd, err := proto.ParseCommand(data)
		if err != nil {
			logger.Debug().Err(err).Str("member", sess.Name()).Msg("discarding malformed frame")
			continue
		}
		cmd, ok := commandFromWire(wireCmd)
		if !ok {
			logger.Debug().Str("member", sess.Name()).Str("command", wireCmd.Command).Msg("discarding unknown command")
			continue
		}
		sess.Handle(cmd)
	}
}

// writePump drains the client's event queue onto the wire. It also exits
// when the room evicts the client (Closed fires), letting the handler tear
// the connection down.
func (h *WSHandler) writePump(ctx context.Context, conn *websocket.Conn, client *wsClient, logger *zerolog.Logger) error {
	for {
		select {
		case ev := <-client.Events():
			if err := wsjson.Write(ctx, conn, eventToWire(ev)); err != nil {
				logger.Warn().Err(err).Msg("write ws event")
				return err
			}
		case <-client.Closed():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
