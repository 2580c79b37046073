package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

type ConnectClientParams struct {
	Conn     *websocket.Conn
	ClientId string
}

func (s service) ConnectClient(ctx context.Context, params *ConnectClientParams) error {
	if err := s.connRepo.Add(params.Conn, params.ClientId); err != nil {
		s.logger.InfoContext(ctx, "failed to connect client", "error", err)
		return err
	}

	return nil
}

type CreateRoomParams struct {
	ClientId string
	Username string
}

type CreateRoomResponse struct {
	Room room.Room
}

// CreateRoom allocates a fresh room code, retrying generation on collision,
// and stores a room with the creator as sole member and sole admin. A client
// holds at most one room attachment, so creating while attached is rejected.
func (s service) CreateRoom(ctx context.Context, params *CreateRoomParams) (CreateRoomResponse, error) {
	if _, err := s.connRepo.GetRoomId(params.ClientId); err == nil {
		return CreateRoomResponse{}, ErrAlreadyInRoom
	}

	var newRoom *room.Room
	for {
		roomId := s.generator.GenerateRandomString(roomIdLength)
		newRoom = room.NewRoom(roomId, params.ClientId, params.Username)
		if err := s.roomRepo.Create(newRoom); err != nil {
			if errors.Is(err, room.ErrAlreadyExists) {
				continue
			}
			return CreateRoomResponse{}, fmt.Errorf("failed to create room: %w", err)
		}
		break
	}

	if err := s.connRepo.SetRoomId(params.ClientId, newRoom.Id); err != nil {
		s.logger.InfoContext(ctx, "failed to set room id", "error", err)
		return CreateRoomResponse{}, err
	}

	s.logger.InfoContext(ctx, "room created", "room_id", newRoom.Id, "admin_id", params.ClientId)

	return CreateRoomResponse{Room: newRoom.Clone()}, nil
}

type JoinRoomParams struct {
	ClientId string
	Username string
	RoomId   string
}

type JoinRoomResponse struct {
	Room       room.Room
	JoinedUser room.User
	Conns      []*websocket.Conn
}

// JoinRoom admits the client into an unlocked, non-full room. A client still
// attached to a room (this one included) is rejected, which keeps membership
// unique by id and prevents ghost members the reconciler can never reach.
func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	if _, err := s.connRepo.GetRoomId(params.ClientId); err == nil {
		return JoinRoomResponse{}, ErrAlreadyInRoom
	}

	var snapshot room.Room
	var joinedUser room.User
	err := s.roomRepo.Update(params.RoomId, func(r *room.Room) error {
		if r.IsLocked {
			return ErrRoomLocked
		}
		if len(r.Users) >= s.membersLimit {
			return ErrRoomFull
		}

		joinedUser = r.AddUser(params.ClientId, params.Username)
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return JoinRoomResponse{}, ErrRoomNotFound
		}
		return JoinRoomResponse{}, err
	}

	if err := s.connRepo.SetRoomId(params.ClientId, params.RoomId); err != nil {
		s.logger.InfoContext(ctx, "failed to set room id", "error", err)
		return JoinRoomResponse{}, err
	}

	s.logger.InfoContext(ctx, "client joined room", "room_id", params.RoomId, "client_id", params.ClientId)

	return JoinRoomResponse{
		Room:       snapshot,
		JoinedUser: joinedUser,
		Conns:      s.getConns(snapshot.Users, params.ClientId),
	}, nil
}

func (s service) GetRoomPreview(ctx context.Context, roomId string) (RoomPreview, error) {
	r, err := s.roomRepo.Get(roomId)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return RoomPreview{}, ErrRoomNotFound
		}
		return RoomPreview{}, err
	}

	return RoomPreview{
		Id:          r.Id,
		IsLocked:    r.IsLocked,
		MemberCount: len(r.Users),
	}, nil
}

// RoomCount reports how many rooms are currently live, served on the health
// endpoint.
func (s service) RoomCount(ctx context.Context) int {
	return len(s.roomRepo.RoomIds())
}

type DisconnectClientParams struct {
	ClientId string
}

type DisconnectClientResponse struct {
	RoomId        string
	LeftUser      *room.User
	Room          *room.Room
	Conns         []*websocket.Conn
	IsRoomDeleted bool
}

// DisconnectClient reconciles an abrupt departure: the member is removed
// from its room, admin authority is reassigned to the earliest-joined
// remaining member when the admin left, and an emptied room is deleted.
func (s service) DisconnectClient(ctx context.Context, params *DisconnectClientParams) (DisconnectClientResponse, error) {
	defer func() {
		if err := s.connRepo.RemoveByClientId(params.ClientId); err != nil {
			s.logger.DebugContext(ctx, "failed to remove connection", "error", err)
		}
	}()

	roomId, err := s.connRepo.GetRoomId(params.ClientId)
	if err != nil {
		// connection never joined a room
		return DisconnectClientResponse{}, nil
	}

	var leftUser *room.User
	var snapshot *room.Room
	var remaining []room.User
	isRoomDeleted := false
	err = s.roomRepo.Update(roomId, func(r *room.Room) error {
		user, ok := r.RemoveUser(params.ClientId)
		if !ok {
			return nil
		}
		leftUser = &user

		if len(r.Users) == 0 {
			isRoomDeleted = true
			return nil
		}

		if user.IsAdmin {
			r.TransferAdmin(r.Users[0].Id)
			clone := r.Clone()
			snapshot = &clone
		}
		remaining = append([]room.User{}, r.Users...)

		return nil
	})
	if err != nil && !errors.Is(err, room.ErrNotFound) {
		return DisconnectClientResponse{}, err
	}

	if isRoomDeleted {
		s.roomRepo.Delete(roomId)
		s.logger.InfoContext(ctx, "room deleted", "room_id", roomId)

		return DisconnectClientResponse{
			RoomId:        roomId,
			LeftUser:      leftUser,
			IsRoomDeleted: true,
		}, nil
	}

	return DisconnectClientResponse{
		RoomId:   roomId,
		LeftUser: leftUser,
		Room:     snapshot,
		Conns:    s.getConns(remaining),
	}, nil
}
