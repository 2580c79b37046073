package controller

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/service/room"
)

type KickUserInput struct {
	RoomId string `json:"roomId" validate:"required"`
	UserId string `json:"userId" validate:"required"`
}

func (c controller) handleKickUser(ctx context.Context, conn *websocket.Conn, input KickUserInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	kickUserResp, err := c.roomService.KickUser(ctx, &room.KickUserParams{
		RoomId:       input.RoomId,
		SenderId:     clientId,
		KickedUserId: input.UserId,
	})
	if err != nil {
		return err
	}

	c.writeToConn(ctx, kickUserResp.KickedConn, &Output{
		Type:    outKicked,
		Payload: map[string]string{"message": "You have been removed from the room by the admin"},
	})
	if kickUserResp.KickedConn != nil {
		kickUserResp.KickedConn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(4001, "kicked"))
	}

	c.broadcast(ctx, kickUserResp.Conns, &Output{
		Type:    outUserLeft,
		Payload: kickUserResp.KickedUser,
	})

	c.writeToConn(ctx, conn, &Output{
		Type:    outUserKicked,
		Payload: kickUserResp.KickedUser,
	})

	if kickUserResp.Room != nil {
		c.broadcast(ctx, append(kickUserResp.Conns, conn), &Output{
			Type:    outRoomUpdated,
			Payload: kickUserResp.Room,
		})
	}

	return nil
}

type ToggleMuteUserInput struct {
	RoomId string `json:"roomId" validate:"required"`
	UserId string `json:"userId" validate:"required"`
}

func (c controller) handleToggleMuteUser(ctx context.Context, _ *websocket.Conn, input ToggleMuteUserInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	toggleMuteResp, err := c.roomService.ToggleMuteUser(ctx, &room.ToggleMuteUserParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		UserId:   input.UserId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, toggleMuteResp.Conns, &Output{
		Type:    outRoomUpdated,
		Payload: toggleMuteResp.Room,
	})

	return nil
}

type ToggleLockRoomInput struct {
	RoomId string `json:"roomId" validate:"required"`
}

func (c controller) handleToggleLockRoom(ctx context.Context, _ *websocket.Conn, input ToggleLockRoomInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	toggleLockResp, err := c.roomService.ToggleLockRoom(ctx, &room.ToggleLockRoomParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, toggleLockResp.Conns, &Output{
		Type:    outRoomUpdated,
		Payload: toggleLockResp.Room,
	})

	return nil
}

type TransferAdminInput struct {
	RoomId     string `json:"roomId" validate:"required"`
	NewAdminId string `json:"newAdminId" validate:"required"`
}

func (c controller) handleTransferAdmin(ctx context.Context, _ *websocket.Conn, input TransferAdminInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	transferAdminResp, err := c.roomService.TransferAdmin(ctx, &room.TransferAdminParams{
		RoomId:     input.RoomId,
		SenderId:   clientId,
		NewAdminId: input.NewAdminId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, transferAdminResp.Conns, &Output{
		Type:    outRoomUpdated,
		Payload: transferAdminResp.Room,
	})

	return nil
}

type TogglePlaybackControlInput struct {
	RoomId string `json:"roomId" validate:"required"`
}

func (c controller) handleTogglePlaybackControl(ctx context.Context, _ *websocket.Conn, input TogglePlaybackControlInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	toggleResp, err := c.roomService.TogglePlaybackControl(ctx, &room.TogglePlaybackControlParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, toggleResp.Conns, &Output{
		Type:    outRoomUpdated,
		Payload: toggleResp.Room,
	})

	return nil
}

type ToggleVideoControlInput struct {
	RoomId string `json:"roomId" validate:"required"`
}

func (c controller) handleToggleVideoControl(ctx context.Context, _ *websocket.Conn, input ToggleVideoControlInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	toggleResp, err := c.roomService.ToggleVideoControl(ctx, &room.ToggleVideoControlParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, toggleResp.Conns, &Output{
		Type:    outRoomUpdated,
		Payload: toggleResp.Room,
	})

	return nil
}
