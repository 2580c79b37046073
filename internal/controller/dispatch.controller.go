package controller

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/pkg/wsrouter"
)

var errUnknownEvent = errors.New("unknown event type")

// dispatch resolves an inbound message against the closed event set.
// Handler errors are request-scoped: they are reported to the requester
// only and never terminate the connection.
func (c controller) dispatch(ctx context.Context, conn *websocket.Conn, msg wsrouter.Message) error {
	switch EventType(msg.Type) {
	case EventCreateRoom:
		handle(c, ctx, conn, msg, c.handleCreateRoom)
	case EventJoinRoom:
		handle(c, ctx, conn, msg, c.handleJoinRoom)
	case EventKickUser:
		handle(c, ctx, conn, msg, c.handleKickUser)
	case EventToggleMuteUser:
		handle(c, ctx, conn, msg, c.handleToggleMuteUser)
	case EventToggleLockRoom:
		handle(c, ctx, conn, msg, c.handleToggleLockRoom)
	case EventTransferAdmin:
		handle(c, ctx, conn, msg, c.handleTransferAdmin)
	case EventTogglePlaybackControl:
		handle(c, ctx, conn, msg, c.handleTogglePlaybackControl)
	case EventToggleVideoControl:
		handle(c, ctx, conn, msg, c.handleToggleVideoControl)
	case EventVideoUrlChange:
		handle(c, ctx, conn, msg, c.handleVideoUrlChange)
	case EventPlayVideo:
		handle(c, ctx, conn, msg, c.handlePlayVideo)
	case EventPauseVideo:
		handle(c, ctx, conn, msg, c.handlePauseVideo)
	case EventSeekVideo:
		handle(c, ctx, conn, msg, c.handleSeekVideo)
	case EventAddToQueue:
		handle(c, ctx, conn, msg, c.handleAddToQueue)
	case EventRemoveFromQueue:
		handle(c, ctx, conn, msg, c.handleRemoveFromQueue)
	case EventPlayNext:
		handle(c, ctx, conn, msg, c.handlePlayNext)
	case EventVideoEnded:
		handle(c, ctx, conn, msg, c.handleVideoEnded)
	case EventChangePlaybackSpeed:
		handle(c, ctx, conn, msg, c.handleChangePlaybackSpeed)
	case EventChangeVolume:
		handle(c, ctx, conn, msg, c.handleChangeVolume)
	case EventAddBookmark:
		handle(c, ctx, conn, msg, c.handleAddBookmark)
	case EventRemoveBookmark:
		handle(c, ctx, conn, msg, c.handleRemoveBookmark)
	case EventJumpToBookmark:
		handle(c, ctx, conn, msg, c.handleJumpToBookmark)
	case EventSendMessage:
		handle(c, ctx, conn, msg, c.handleSendMessage)
	case EventTypingStart:
		handle(c, ctx, conn, msg, c.handleTypingStart)
	case EventTypingStop:
		handle(c, ctx, conn, msg, c.handleTypingStop)
	case EventSendReaction:
		handle(c, ctx, conn, msg, c.handleSendReaction)
	case EventSearchYouTube:
		handle(c, ctx, conn, msg, c.handleSearchYouTube)
	case EventGetVideoDetails:
		handle(c, ctx, conn, msg, c.handleGetVideoDetails)
	default:
		c.logger.WarnContext(ctx, "unknown event type", "type", msg.Type)
		c.writeError(ctx, conn, errUnknownEvent)
	}

	return nil
}

// handle decodes and validates the payload for one event kind, runs the
// handler and converts its error into an error event for the requester.
func handle[T any](c controller, ctx context.Context, conn *websocket.Conn, msg wsrouter.Message, handler func(context.Context, *websocket.Conn, T) error) {
	input, err := wsrouter.DecodePayload[T](msg)
	if err != nil {
		c.logger.DebugContext(ctx, "failed to decode payload", "error", err)
		c.writeErrorMessage(ctx, conn, "Invalid payload")
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.DebugContext(ctx, "payload validation failed", "errors", validationErrors)
		c.writeErrorMessage(ctx, conn, validationErrors[0].Message)
		return
	}

	if err := handler(ctx, conn, input); err != nil {
		c.writeError(ctx, conn, err)
	}
}
