package room

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

type KickUserParams struct {
	RoomId       string
	SenderId     string
	KickedUserId string
}

type KickUserResponse struct {
	KickedUser room.User
	KickedConn *websocket.Conn
	// Room is set when the kick changed admin authority.
	Room  *room.Room
	Conns []*websocket.Conn
}

func (s service) KickUser(ctx context.Context, params *KickUserParams) (KickUserResponse, error) {
	var kickedUser room.User
	var snapshot *room.Room
	var remaining []room.User
	isRoomDeleted := false
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !isAdmin(r, params.SenderId) {
			return ErrPermissionDenied
		}

		user, ok := r.RemoveUser(params.KickedUserId)
		if !ok {
			return ErrMemberNotFound
		}
		kickedUser = user

		// a self-kick by the last member empties the room
		if len(r.Users) == 0 {
			isRoomDeleted = true
			return nil
		}

		// kicking the admin (self-kick) must not leave the room ownerless
		if user.IsAdmin {
			r.TransferAdmin(r.Users[0].Id)
			clone := r.Clone()
			snapshot = &clone
		}
		remaining = append([]room.User{}, r.Users...)

		return nil
	})
	if err != nil {
		return KickUserResponse{}, err
	}

	if isRoomDeleted {
		s.roomRepo.Delete(params.RoomId)
		s.logger.InfoContext(ctx, "room deleted", "room_id", params.RoomId)
	}

	kickedConn, err := s.connRepo.GetConn(params.KickedUserId)
	if err != nil {
		s.logger.DebugContext(ctx, "no connection for kicked user", "client_id", params.KickedUserId)
	}
	s.connRepo.ClearRoomId(params.KickedUserId)

	s.logger.InfoContext(ctx, "user kicked", "room_id", params.RoomId, "kicked_id", params.KickedUserId)

	return KickUserResponse{
		KickedUser: kickedUser,
		KickedConn: kickedConn,
		Room:       snapshot,
		Conns:      s.getConns(remaining, params.SenderId),
	}, nil
}

type ToggleMuteUserParams struct {
	RoomId   string
	SenderId string
	UserId   string
}

type ToggleMuteUserResponse struct {
	Room  room.Room
	Conns []*websocket.Conn
}

func (s service) ToggleMuteUser(ctx context.Context, params *ToggleMuteUserParams) (ToggleMuteUserResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !isAdmin(r, params.SenderId) {
			return ErrPermissionDenied
		}

		muted := r.ToggleMuted(params.UserId)
		s.logger.InfoContext(ctx, "mute toggled", "room_id", params.RoomId, "user_id", params.UserId, "muted", muted)
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return ToggleMuteUserResponse{}, err
	}

	return ToggleMuteUserResponse{
		Room:  snapshot,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

type ToggleLockRoomParams struct {
	RoomId   string
	SenderId string
}

type ToggleLockRoomResponse struct {
	Room  room.Room
	Conns []*websocket.Conn
}

func (s service) ToggleLockRoom(ctx context.Context, params *ToggleLockRoomParams) (ToggleLockRoomResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !isAdmin(r, params.SenderId) {
			return ErrPermissionDenied
		}

		r.IsLocked = !r.IsLocked
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return ToggleLockRoomResponse{}, err
	}

	return ToggleLockRoomResponse{
		Room:  snapshot,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

type TransferAdminParams struct {
	RoomId     string
	SenderId   string
	NewAdminId string
}

type TransferAdminResponse struct {
	Room  room.Room
	Conns []*websocket.Conn
}

func (s service) TransferAdmin(ctx context.Context, params *TransferAdminParams) (TransferAdminResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !isAdmin(r, params.SenderId) {
			return ErrPermissionDenied
		}

		if !r.TransferAdmin(params.NewAdminId) {
			return ErrMemberNotFound
		}
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return TransferAdminResponse{}, err
	}

	s.logger.InfoContext(ctx, "admin transferred", "room_id", params.RoomId, "new_admin_id", params.NewAdminId)

	return TransferAdminResponse{
		Room:  snapshot,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

type TogglePlaybackControlParams struct {
	RoomId   string
	SenderId string
}

type TogglePlaybackControlResponse struct {
	Room  room.Room
	Conns []*websocket.Conn
}

func (s service) TogglePlaybackControl(ctx context.Context, params *TogglePlaybackControlParams) (TogglePlaybackControlResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !isAdmin(r, params.SenderId) {
			return ErrPermissionDenied
		}

		r.PlaybackControl = r.PlaybackControl.Toggled()
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return TogglePlaybackControlResponse{}, err
	}

	return TogglePlaybackControlResponse{
		Room:  snapshot,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

type ToggleVideoControlParams struct {
	RoomId   string
	SenderId string
}

type ToggleVideoControlResponse struct {
	Room  room.Room
	Conns []*websocket.Conn
}

func (s service) ToggleVideoControl(ctx context.Context, params *ToggleVideoControlParams) (ToggleVideoControlResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !isAdmin(r, params.SenderId) {
			return ErrPermissionDenied
		}

		r.VideoControl = r.VideoControl.Toggled()
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return ToggleVideoControlResponse{}, err
	}

	return ToggleVideoControlResponse{
		Room:  snapshot,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

// update wraps the registry update, translating the repository's not-found
// into the service-level error every handler reports to the requester.
func (s service) update(roomId string, fn func(*room.Room) error) error {
	err := s.roomRepo.Update(roomId, fn)
	if errors.Is(err, room.ErrNotFound) {
		return ErrRoomNotFound
	}

	return err
}
