package room

import (
	"slices"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

// isAdmin is the single authorization predicate; every privileged mutation
// tests it before touching state.
func isAdmin(r *room.Room, clientId string) bool {
	return clientId == r.AdminId
}

func canControlPlayback(r *room.Room, clientId string) bool {
	if r.PlaybackControl == room.ControlModeAdminOnly {
		return isAdmin(r, clientId)
	}

	return true
}

func canControlVideo(r *room.Room, clientId string) bool {
	if r.VideoControl == room.ControlModeAdminOnly {
		return isAdmin(r, clientId)
	}

	return true
}

// getConns resolves the live connections of the given members, skipping ids
// in exclude and members whose connection is already gone.
func (s service) getConns(users []room.User, exclude ...string) []*websocket.Conn {
	conns := make([]*websocket.Conn, 0, len(users))
	for _, user := range users {
		if slices.Contains(exclude, user.Id) {
			continue
		}

		conn, err := s.connRepo.GetConn(user.Id)
		if err != nil {
			s.logger.Debug("no connection for member", "client_id", user.Id)
			continue
		}

		conns = append(conns, conn)
	}

	return conns
}
