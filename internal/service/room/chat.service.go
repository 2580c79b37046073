package room

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

type SendMessageParams struct {
	RoomId   string
	SenderId string
	Username string
	Message  string
}

type SendMessageResponse struct {
	Message ChatMessage
	Conns   []*websocket.Conn
}

// SendMessage consults the mute set before constructing the message; a
// muted sender gets an error and nothing is broadcast.
func (s service) SendMessage(ctx context.Context, params *SendMessageParams) (SendMessageResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		if r.IsMuted(params.SenderId) {
			return ErrMuted
		}

		users = append([]room.User{}, r.Users...)

		return nil
	})
	if err != nil {
		return SendMessageResponse{}, err
	}

	return SendMessageResponse{
		Message: ChatMessage{
			Id:        uuid.NewString(),
			Username:  params.Username,
			Message:   params.Message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Conns: s.getConns(users),
	}, nil
}

type TypingParams struct {
	RoomId   string
	SenderId string
	Username string
}

type TypingResponse struct {
	Username string
	Conns    []*websocket.Conn
}

// Typing covers both the start and stop indicator; the dispatcher picks the
// outbound event kind. Indicators go to everyone except the actor.
func (s service) Typing(ctx context.Context, params *TypingParams) (TypingResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		users = append([]room.User{}, r.Users...)
		return nil
	})
	if err != nil {
		return TypingResponse{}, err
	}

	return TypingResponse{
		Username: params.Username,
		Conns:    s.getConns(users, params.SenderId),
	}, nil
}

type SendReactionParams struct {
	RoomId   string
	SenderId string
	Username string
	Reaction string
}

type SendReactionResponse struct {
	Reaction Reaction
	Conns    []*websocket.Conn
}

func (s service) SendReaction(ctx context.Context, params *SendReactionParams) (SendReactionResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		users = append([]room.User{}, r.Users...)
		return nil
	})
	if err != nil {
		return SendReactionResponse{}, err
	}

	return SendReactionResponse{
		Reaction: Reaction{
			Id:        uuid.NewString(),
			Username:  params.Username,
			Reaction:  params.Reaction,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Conns: s.getConns(users),
	}, nil
}
