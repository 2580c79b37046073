package inmemory

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchparty/server/internal/repository/connection"
)

func newTestRepo() *repo {
	return NewRepo(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAddAndLookup(t *testing.T) {
	repo := newTestRepo()
	conn := &websocket.Conn{}

	require.NoError(t, repo.Add(conn, "client-1"))

	gotId, err := repo.GetClientId(conn)
	require.NoError(t, err)
	assert.Equal(t, "client-1", gotId)

	gotConn, err := repo.GetConn("client-1")
	require.NoError(t, err)
	assert.Same(t, conn, gotConn)

	err = repo.Add(conn, "client-1")
	assert.ErrorIs(t, err, connection.ErrAlreadyExists)
}

func TestRoomAttachment(t *testing.T) {
	repo := newTestRepo()
	conn := &websocket.Conn{}
	require.NoError(t, repo.Add(conn, "client-1"))

	_, err := repo.GetRoomId("client-1")
	assert.ErrorIs(t, err, connection.ErrNotFound)

	require.NoError(t, repo.SetRoomId("client-1", "AB12CD"))

	roomId, err := repo.GetRoomId("client-1")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", roomId)

	repo.ClearRoomId("client-1")
	_, err = repo.GetRoomId("client-1")
	assert.ErrorIs(t, err, connection.ErrNotFound)
}

func TestSetRoomIdUnknownClient(t *testing.T) {
	repo := newTestRepo()

	err := repo.SetRoomId("ghost", "AB12CD")
	assert.ErrorIs(t, err, connection.ErrNotFound)
}

func TestRemoveByClientIdClearsEverything(t *testing.T) {
	repo := newTestRepo()
	conn := &websocket.Conn{}
	require.NoError(t, repo.Add(conn, "client-1"))
	require.NoError(t, repo.SetRoomId("client-1", "AB12CD"))

	require.NoError(t, repo.RemoveByClientId("client-1"))

	_, err := repo.GetConn("client-1")
	assert.ErrorIs(t, err, connection.ErrNotFound)
	_, err = repo.GetClientId(conn)
	assert.ErrorIs(t, err, connection.ErrNotFound)
	_, err = repo.GetRoomId("client-1")
	assert.ErrorIs(t, err, connection.ErrNotFound)

	err = repo.RemoveByClientId("client-1")
	assert.ErrorIs(t, err, connection.ErrNotFound)
}
