package room

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

type AddBookmarkParams struct {
	RoomId   string
	SenderId string
	Name     string
	Time     float64
	VideoId  string
}

type AddBookmarkResponse struct {
	Bookmarks []room.Bookmark
	Conns     []*websocket.Conn
}

func (s service) AddBookmark(ctx context.Context, params *AddBookmarkParams) (AddBookmarkResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		r.AddBookmark(room.Bookmark{
			Id:        uuid.NewString(),
			Name:      params.Name,
			Time:      params.Time,
			VideoId:   params.VideoId,
			CreatedBy: params.SenderId,
		})
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return AddBookmarkResponse{}, err
	}

	return AddBookmarkResponse{
		Bookmarks: snapshot.Bookmarks,
		Conns:     s.getConns(snapshot.Users),
	}, nil
}

type RemoveBookmarkParams struct {
	RoomId     string
	SenderId   string
	BookmarkId string
}

type RemoveBookmarkResponse struct {
	Bookmarks []room.Bookmark
	Conns     []*websocket.Conn
}

func (s service) RemoveBookmark(ctx context.Context, params *RemoveBookmarkParams) (RemoveBookmarkResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		r.RemoveBookmark(params.BookmarkId)
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return RemoveBookmarkResponse{}, err
	}

	return RemoveBookmarkResponse{
		Bookmarks: snapshot.Bookmarks,
		Conns:     s.getConns(snapshot.Users),
	}, nil
}

type JumpToBookmarkParams struct {
	RoomId   string
	SenderId string
	Time     float64
}

type JumpToBookmarkResponse struct {
	Time  float64
	Conns []*websocket.Conn
}

// JumpToBookmark rewinds the whole room, actor included, so every player
// lands on the same timestamp.
func (s service) JumpToBookmark(ctx context.Context, params *JumpToBookmarkParams) (JumpToBookmarkResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		users = append([]room.User{}, r.Users...)
		return nil
	})
	if err != nil {
		return JumpToBookmarkResponse{}, err
	}

	return JumpToBookmarkResponse{
		Time:  params.Time,
		Conns: s.getConns(users),
	}, nil
}
