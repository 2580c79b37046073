package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/watchparty/server/internal/service/room"
	"github.com/watchparty/server/pkg/ctxlogger"
)

// serveWS upgrades the connection, assigns it a client id and serves its
// read loop until the connection drops. Every event the client sends flows
// over this one socket.
func (c controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	clientId := uuid.NewString()
	ctx := context.WithValue(r.Context(), clientIdCtxKey, clientId)
	ctx = ctxlogger.AppendCtx(ctx, slog.String("client_id", clientId))

	if err := c.roomService.ConnectClient(ctx, &room.ConnectClientParams{
		Conn:     conn,
		ClientId: clientId,
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to connect client", "error", err)
		return
	}
	defer c.disconnect(ctx, clientId)

	c.logger.InfoContext(ctx, "client connected", "remote_addr", r.RemoteAddr)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "connection closed", "error", err)
	}
}

// disconnect runs the reconciler for a lost connection and notifies the
// remaining room members.
func (c controller) disconnect(ctx context.Context, clientId string) {
	resp, err := c.roomService.DisconnectClient(ctx, &room.DisconnectClientParams{ClientId: clientId})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to disconnect client", "error", err)
		return
	}

	if resp.LeftUser == nil || resp.IsRoomDeleted {
		return
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    outUserLeft,
		Payload: resp.LeftUser,
	})

	if resp.Room != nil {
		c.broadcast(ctx, resp.Conns, &Output{
			Type:    outRoomUpdated,
			Payload: resp.Room,
		})
	}
}
