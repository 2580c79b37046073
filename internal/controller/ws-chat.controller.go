package controller

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/service/room"
)

type SendMessageInput struct {
	RoomId   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required,max=32"`
	Message  string `json:"message" validate:"required,max=500"`
}

func (c controller) handleSendMessage(ctx context.Context, _ *websocket.Conn, input SendMessageInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	sendMessageResp, err := c.roomService.SendMessage(ctx, &room.SendMessageParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Username: input.Username,
		Message:  input.Message,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, sendMessageResp.Conns, &Output{
		Type:    outNewMessage,
		Payload: sendMessageResp.Message,
	})

	return nil
}

type TypingInput struct {
	RoomId   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required,max=32"`
}

func (c controller) handleTypingStart(ctx context.Context, _ *websocket.Conn, input TypingInput) error {
	return c.typing(ctx, input, outUserTyping)
}

func (c controller) handleTypingStop(ctx context.Context, _ *websocket.Conn, input TypingInput) error {
	return c.typing(ctx, input, outUserStoppedTyping)
}

func (c controller) typing(ctx context.Context, input TypingInput, eventType string) error {
	clientId := c.getClientIdFromCtx(ctx)

	typingResp, err := c.roomService.Typing(ctx, &room.TypingParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Username: input.Username,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, typingResp.Conns, &Output{
		Type:    eventType,
		Payload: map[string]string{"username": typingResp.Username},
	})

	return nil
}

type SendReactionInput struct {
	RoomId   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required,max=32"`
	Reaction string `json:"reaction" validate:"required,max=8"`
}

func (c controller) handleSendReaction(ctx context.Context, _ *websocket.Conn, input SendReactionInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	sendReactionResp, err := c.roomService.SendReaction(ctx, &room.SendReactionParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Username: input.Username,
		Reaction: input.Reaction,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, sendReactionResp.Conns, &Output{
		Type:    outNewReaction,
		Payload: sendReactionResp.Reaction,
	})

	return nil
}
