package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/service/room"
)

type CreateRoomInput struct {
	Username string `json:"username" validate:"required,max=32"`
}

func (c controller) handleCreateRoom(ctx context.Context, conn *websocket.Conn, input CreateRoomInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	createRoomResp, err := c.roomService.CreateRoom(ctx, &room.CreateRoomParams{
		ClientId: clientId,
		Username: input.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	c.writeToConn(ctx, conn, &Output{
		Type:    outRoomCreated,
		Payload: createRoomResp.Room,
	})

	return nil
}

type JoinRoomInput struct {
	RoomId   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required,max=32"`
}

func (c controller) handleJoinRoom(ctx context.Context, conn *websocket.Conn, input JoinRoomInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	joinRoomResp, err := c.roomService.JoinRoom(ctx, &room.JoinRoomParams{
		ClientId: clientId,
		Username: input.Username,
		RoomId:   input.RoomId,
	})
	if err != nil {
		return err
	}

	c.writeToConn(ctx, conn, &Output{
		Type:    outRoomJoined,
		Payload: joinRoomResp.Room,
	})

	c.broadcast(ctx, joinRoomResp.Conns, &Output{
		Type:    outUserJoined,
		Payload: joinRoomResp.JoinedUser,
	})

	// catch the late joiner up on the currently loaded video
	if joinRoomResp.Room.VideoUrl != "" {
		c.writeToConn(ctx, conn, &Output{
			Type:    outVideoUrlChanged,
			Payload: joinRoomResp.Room.VideoUrl,
		})
	}

	return nil
}
