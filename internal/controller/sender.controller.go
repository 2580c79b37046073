package controller

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/service/room"
	"github.com/watchparty/server/internal/service/search"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (c controller) writeToConn(ctx context.Context, conn *websocket.Conn, output *Output) {
	if conn == nil {
		return
	}

	if err := conn.WriteJSON(output); err != nil {
		c.logger.DebugContext(ctx, "failed to write to conn", "error", err, "type", output.Type)
	}
}

func (c controller) broadcast(ctx context.Context, conns []*websocket.Conn, output *Output) {
	for _, conn := range conns {
		c.writeToConn(ctx, conn, output)
	}
}

// writeError converts a request-scoped failure into a single error event
// for the requesting connection; it never reaches other room members.
func (c controller) writeError(ctx context.Context, conn *websocket.Conn, err error) {
	c.writeErrorMessage(ctx, conn, errorMessage(err))
}

func (c controller) writeErrorMessage(ctx context.Context, conn *websocket.Conn, message string) {
	c.writeToConn(ctx, conn, &Output{
		Type:    outError,
		Payload: map[string]string{"message": message},
	})
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, room.ErrRoomLocked):
		return "Room is locked. No new members allowed."
	case errors.Is(err, room.ErrRoomFull):
		return "Room is full"
	case errors.Is(err, room.ErrAlreadyInRoom):
		return "Already in a room"
	case errors.Is(err, room.ErrPermissionDenied):
		return "Only admin can perform this action"
	case errors.Is(err, room.ErrMemberNotFound):
		return "User not found"
	case errors.Is(err, room.ErrMuted):
		return "You have been muted by the admin"
	case errors.Is(err, room.ErrQueueLimitReached):
		return "Queue is full"
	case errors.Is(err, search.ErrUpstreamFailure):
		return "Failed to search YouTube. Check your RapidAPI key."
	case errors.Is(err, errUnknownEvent):
		return "Unknown event type"
	default:
		return "Internal error"
	}
}
