package room

import (
	"errors"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
	"github.com/watchparty/server/pkg/randstr"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomLocked        = errors.New("room locked")
	ErrAlreadyInRoom     = errors.New("already in a room")
	ErrRoomFull          = errors.New("room full")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrMemberNotFound    = errors.New("member not found")
	ErrMuted             = errors.New("muted")
	ErrQueueLimitReached = errors.New("queue limit reached")
)

const roomIdLength = 6

type iRoomRepo interface {
	Create(*room.Room) error
	Get(roomId string) (room.Room, error)
	Update(roomId string, fn func(*room.Room) error) error
	Delete(roomId string)
	RoomIds() []string
}

type iConnRepo interface {
	Add(conn *websocket.Conn, clientId string) error
	RemoveByClientId(clientId string) error
	GetConn(clientId string) (*websocket.Conn, error)
	GetClientId(conn *websocket.Conn) (string, error)
	SetRoomId(clientId, roomId string) error
	GetRoomId(clientId string) (string, error)
	ClearRoomId(clientId string)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	MembersLimit int
	QueueLimit   int
}

type service struct {
	roomRepo     iRoomRepo
	connRepo     iConnRepo
	generator    iGenerator
	membersLimit int
	queueLimit   int
	logger       *slog.Logger
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo, cfg *Config, logger *slog.Logger) *service {
	s := service{
		roomRepo:     roomRepo,
		connRepo:     connRepo,
		membersLimit: cfg.MembersLimit,
		queueLimit:   cfg.QueueLimit,
		logger:       logger,
	}

	letterBytes := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	s.generator = randstr.New(letterBytes)

	return &s
}
