package room

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connectioninmemory "github.com/watchparty/server/internal/repository/connection/inmemory"
	roominmemory "github.com/watchparty/server/internal/repository/room/inmemory"
)

func newTestService(t *testing.T) *service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roomRepo := roominmemory.NewRepo(logger)
	connRepo := connectioninmemory.NewRepo(logger)

	return NewService(roomRepo, connRepo, &Config{
		MembersLimit: 3,
		QueueLimit:   2,
	}, logger)
}

func connect(t *testing.T, s *service, clientId string) {
	t.Helper()

	err := s.ConnectClient(context.Background(), &ConnectClientParams{
		Conn:     &websocket.Conn{},
		ClientId: clientId,
	})
	require.NoError(t, err)
}

func createRoom(t *testing.T, s *service, clientId, username string) string {
	t.Helper()

	connect(t, s, clientId)
	resp, err := s.CreateRoom(context.Background(), &CreateRoomParams{
		ClientId: clientId,
		Username: username,
	})
	require.NoError(t, err)

	return resp.Room.Id
}

func joinRoom(t *testing.T, s *service, roomId, clientId, username string) {
	t.Helper()

	connect(t, s, clientId)
	_, err := s.JoinRoom(context.Background(), &JoinRoomParams{
		ClientId: clientId,
		Username: username,
		RoomId:   roomId,
	})
	require.NoError(t, err)
}

func TestCreateAndJoinRoom(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	connect(t, s, "alice")
	createResp, err := s.CreateRoom(ctx, &CreateRoomParams{ClientId: "alice", Username: "alice"})
	require.NoError(t, err)
	assert.Len(t, createResp.Room.Id, 6, "room code must be six characters")
	assert.Equal(t, "alice", createResp.Room.AdminId)
	require.Len(t, createResp.Room.Users, 1)
	assert.True(t, createResp.Room.Users[0].IsAdmin)

	connect(t, s, "bob")
	joinResp, err := s.JoinRoom(ctx, &JoinRoomParams{ClientId: "bob", Username: "bob", RoomId: createResp.Room.Id})
	require.NoError(t, err)
	assert.Len(t, joinResp.Room.Users, 2)
	assert.False(t, joinResp.JoinedUser.IsAdmin)
	assert.Len(t, joinResp.Conns, 1, "join must notify everyone except the joiner")
}

func TestDuplicateJoinRejected(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.JoinRoom(ctx, &JoinRoomParams{ClientId: "bob", Username: "bob", RoomId: roomId})
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	preview, err := s.GetRoomPreview(ctx, roomId)
	require.NoError(t, err)
	assert.Equal(t, 2, preview.MemberCount, "a rejected rejoin must not duplicate the member")
}

func TestJoinWhileInAnotherRoomRejected(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomA := createRoom(t, s, "alice", "alice")
	roomB := createRoom(t, s, "carol", "carol")
	joinRoom(t, s, roomA, "bob", "bob")

	_, err := s.JoinRoom(ctx, &JoinRoomParams{ClientId: "bob", Username: "bob", RoomId: roomB})
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	previewB, err := s.GetRoomPreview(ctx, roomB)
	require.NoError(t, err)
	assert.Equal(t, 1, previewB.MemberCount)

	// with no ghost membership, both rooms drain to zero and disappear
	_, err = s.DisconnectClient(ctx, &DisconnectClientParams{ClientId: "bob"})
	require.NoError(t, err)
	_, err = s.DisconnectClient(ctx, &DisconnectClientParams{ClientId: "alice"})
	require.NoError(t, err)

	_, err = s.GetRoomPreview(ctx, roomA)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateWhileInRoomRejected(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.CreateRoom(ctx, &CreateRoomParams{ClientId: "alice", Username: "alice"})
	assert.ErrorIs(t, err, ErrAlreadyInRoom)
	_, err = s.CreateRoom(ctx, &CreateRoomParams{ClientId: "bob", Username: "bob"})
	assert.ErrorIs(t, err, ErrAlreadyInRoom)
}

func TestJoinUnknownRoom(t *testing.T) {
	s := newTestService(t)

	connect(t, s, "bob")
	_, err := s.JoinRoom(context.Background(), &JoinRoomParams{ClientId: "bob", Username: "bob", RoomId: "NOPE42"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLockedRoomRejectsJoin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")

	_, err := s.ToggleLockRoom(ctx, &ToggleLockRoomParams{RoomId: roomId, SenderId: "alice"})
	require.NoError(t, err)

	connect(t, s, "bob")
	_, err = s.JoinRoom(ctx, &JoinRoomParams{ClientId: "bob", Username: "bob", RoomId: roomId})
	assert.ErrorIs(t, err, ErrRoomLocked)

	preview, err := s.GetRoomPreview(ctx, roomId)
	require.NoError(t, err)
	assert.True(t, preview.IsLocked)
	assert.Equal(t, 1, preview.MemberCount, "a rejected join must not add a member")
}

func TestFullRoomRejectsJoin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")
	joinRoom(t, s, roomId, "carol", "carol")

	connect(t, s, "dave")
	_, err := s.JoinRoom(ctx, &JoinRoomParams{ClientId: "dave", Username: "dave", RoomId: roomId})
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestKickUser(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.KickUser(ctx, &KickUserParams{RoomId: roomId, SenderId: "bob", KickedUserId: "alice"})
	assert.ErrorIs(t, err, ErrPermissionDenied, "only the admin can kick")

	resp, err := s.KickUser(ctx, &KickUserParams{RoomId: roomId, SenderId: "alice", KickedUserId: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.KickedUser.Id)
	assert.NotNil(t, resp.KickedConn)
	assert.Nil(t, resp.Room, "kicking a regular member must not touch admin authority")

	preview, err := s.GetRoomPreview(ctx, roomId)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.MemberCount)

	_, err = s.KickUser(ctx, &KickUserParams{RoomId: roomId, SenderId: "alice", KickedUserId: "bob"})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// a kicked member is detached and may rejoin
	_, err = s.JoinRoom(ctx, &JoinRoomParams{ClientId: "bob", Username: "bob", RoomId: roomId})
	require.NoError(t, err)
}

func TestAdminSelfKickPromotesRemaining(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	resp, err := s.KickUser(ctx, &KickUserParams{RoomId: roomId, SenderId: "alice", KickedUserId: "alice"})
	require.NoError(t, err)
	require.NotNil(t, resp.Room, "a self-kick by the admin must produce a fresh snapshot")
	assert.Equal(t, "bob", resp.Room.AdminId)

	preview, err := s.GetRoomPreview(ctx, roomId)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.MemberCount)
}

func TestSelfKickLastMemberDeletesRoom(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")

	resp, err := s.KickUser(ctx, &KickUserParams{RoomId: roomId, SenderId: "alice", KickedUserId: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.KickedUser.Id)

	_, err = s.GetRoomPreview(ctx, roomId)
	assert.ErrorIs(t, err, ErrRoomNotFound, "an emptied room must not outlive its last member")
}

func TestTransferAdmin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.TransferAdmin(ctx, &TransferAdminParams{RoomId: roomId, SenderId: "bob", NewAdminId: "bob"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.TransferAdmin(ctx, &TransferAdminParams{RoomId: roomId, SenderId: "alice", NewAdminId: "ghost"})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	resp, err := s.TransferAdmin(ctx, &TransferAdminParams{RoomId: roomId, SenderId: "alice", NewAdminId: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Room.AdminId)

	adminCount := 0
	for _, user := range resp.Room.Users {
		if user.IsAdmin {
			adminCount++
		}
	}
	assert.Equal(t, 1, adminCount)
}

func TestDisconnectPromotesEarliestMember(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")
	joinRoom(t, s, roomId, "carol", "carol")

	resp, err := s.DisconnectClient(ctx, &DisconnectClientParams{ClientId: "alice"})
	require.NoError(t, err)
	require.NotNil(t, resp.LeftUser)
	assert.Equal(t, "alice", resp.LeftUser.Id)
	assert.False(t, resp.IsRoomDeleted)
	require.NotNil(t, resp.Room, "an admin departure must produce a fresh snapshot")
	assert.Equal(t, "bob", resp.Room.AdminId, "the earliest remaining member takes over")
}

func TestDisconnectLastMemberDeletesRoom(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")

	resp, err := s.DisconnectClient(ctx, &DisconnectClientParams{ClientId: "alice"})
	require.NoError(t, err)
	assert.True(t, resp.IsRoomDeleted)

	_, err = s.GetRoomPreview(ctx, roomId)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestDisconnectWithoutRoom(t *testing.T) {
	s := newTestService(t)

	connect(t, s, "loner")
	resp, err := s.DisconnectClient(context.Background(), &DisconnectClientParams{ClientId: "loner"})
	require.NoError(t, err)
	assert.Nil(t, resp.LeftUser)
}

func TestMutedUserCannotChat(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.ToggleMuteUser(ctx, &ToggleMuteUserParams{RoomId: roomId, SenderId: "alice", UserId: "bob"})
	require.NoError(t, err)

	_, err = s.SendMessage(ctx, &SendMessageParams{RoomId: roomId, SenderId: "bob", Username: "bob", Message: "hi"})
	assert.ErrorIs(t, err, ErrMuted)

	// unmute restores chat
	_, err = s.ToggleMuteUser(ctx, &ToggleMuteUserParams{RoomId: roomId, SenderId: "alice", UserId: "bob"})
	require.NoError(t, err)

	resp, err := s.SendMessage(ctx, &SendMessageParams{RoomId: roomId, SenderId: "bob", Username: "bob", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Message.Message)
	assert.Len(t, resp.Conns, 2, "chat goes to every member, sender included")
}

func TestAdminOnlyPlaybackControl(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	// default mode: anyone may drive playback
	_, err := s.PlaySignal(ctx, &PlaybackSignalParams{RoomId: roomId, SenderId: "bob", CurrentTime: 10})
	require.NoError(t, err)

	_, err = s.TogglePlaybackControl(ctx, &TogglePlaybackControlParams{RoomId: roomId, SenderId: "alice"})
	require.NoError(t, err)

	_, err = s.PlaySignal(ctx, &PlaybackSignalParams{RoomId: roomId, SenderId: "bob", CurrentTime: 10})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = s.SeekVideo(ctx, &SeekVideoParams{RoomId: roomId, SenderId: "bob", CurrentTime: 30})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	resp, err := s.PlaySignal(ctx, &PlaybackSignalParams{RoomId: roomId, SenderId: "alice", CurrentTime: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Conns, 1, "playback signals exclude the actor")
}

func TestAdminOnlyVideoControl(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.ToggleVideoControl(ctx, &ToggleVideoControlParams{RoomId: roomId, SenderId: "alice"})
	require.NoError(t, err)

	_, err = s.UpdateVideoUrl(ctx, &UpdateVideoUrlParams{RoomId: roomId, SenderId: "bob", VideoUrl: "url"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	resp, err := s.UpdateVideoUrl(ctx, &UpdateVideoUrlParams{RoomId: roomId, SenderId: "alice", VideoUrl: "url"})
	require.NoError(t, err)
	assert.Equal(t, "url", resp.VideoUrl)
	assert.Len(t, resp.Conns, 2, "video changes go to every member")
}

func TestQueueFlow(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")

	first, err := s.AddToQueue(ctx, &AddToQueueParams{RoomId: roomId, SenderId: "alice", VideoUrl: "url-1", Title: "one"})
	require.NoError(t, err)
	assert.Len(t, first.Queue, 1)

	_, err = s.AddToQueue(ctx, &AddToQueueParams{RoomId: roomId, SenderId: "alice", VideoUrl: "url-2"})
	require.NoError(t, err)

	_, err = s.AddToQueue(ctx, &AddToQueueParams{RoomId: roomId, SenderId: "alice", VideoUrl: "url-3"})
	assert.ErrorIs(t, err, ErrQueueLimitReached)

	advanceResp, err := s.AdvanceQueue(ctx, &AdvanceQueueParams{RoomId: roomId, SenderId: "alice"})
	require.NoError(t, err)
	require.NotNil(t, advanceResp.NextItem)
	assert.Equal(t, "url-1", advanceResp.NextItem.VideoUrl)
	assert.Len(t, advanceResp.Queue, 1)

	_, err = s.AdvanceQueue(ctx, &AdvanceQueueParams{RoomId: roomId, SenderId: "alice"})
	require.NoError(t, err)

	advanceResp, err = s.AdvanceQueue(ctx, &AdvanceQueueParams{RoomId: roomId, SenderId: "alice"})
	require.NoError(t, err)
	assert.Nil(t, advanceResp.NextItem, "an exhausted queue reports no next item")
}

func TestRemoveFromQueue(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")

	added, err := s.AddToQueue(ctx, &AddToQueueParams{RoomId: roomId, SenderId: "alice", VideoUrl: "url-1"})
	require.NoError(t, err)

	resp, err := s.RemoveFromQueue(ctx, &RemoveFromQueueParams{RoomId: roomId, SenderId: "alice", QueueItemId: added.AddedItem.Id})
	require.NoError(t, err)
	assert.Empty(t, resp.Queue)
}

func TestBookmarks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	addResp, err := s.AddBookmark(ctx, &AddBookmarkParams{RoomId: roomId, SenderId: "bob", Name: "good part", Time: 61.5})
	require.NoError(t, err)
	require.Len(t, addResp.Bookmarks, 1)
	assert.Equal(t, "bob", addResp.Bookmarks[0].CreatedBy)

	jumpResp, err := s.JumpToBookmark(ctx, &JumpToBookmarkParams{RoomId: roomId, SenderId: "bob", Time: addResp.Bookmarks[0].Time})
	require.NoError(t, err)
	assert.Equal(t, 61.5, jumpResp.Time)
	assert.Len(t, jumpResp.Conns, 2, "a bookmark jump moves the whole room")

	removeResp, err := s.RemoveBookmark(ctx, &RemoveBookmarkParams{RoomId: roomId, SenderId: "bob", BookmarkId: addResp.Bookmarks[0].Id})
	require.NoError(t, err)
	assert.Empty(t, removeResp.Bookmarks)
}

func TestUnauthorizedToggleMutatesNothing(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	_, err := s.ToggleLockRoom(ctx, &ToggleLockRoomParams{RoomId: roomId, SenderId: "bob"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	preview, err := s.GetRoomPreview(ctx, roomId)
	require.NoError(t, err)
	assert.False(t, preview.IsLocked, "a denied toggle must leave the room unchanged")
}

func TestVolumeAndSpeedAreUngated(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	speedResp, err := s.ChangePlaybackSpeed(ctx, &ChangePlaybackSpeedParams{RoomId: roomId, SenderId: "bob", Speed: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 1.5, speedResp.Speed)
	assert.Len(t, speedResp.Conns, 2, "speed changes go to every member")

	volumeResp, err := s.ChangeVolume(ctx, &ChangeVolumeParams{RoomId: roomId, SenderId: "bob", Volume: 150})
	require.NoError(t, err)
	assert.Equal(t, 100, volumeResp.Volume, "volume is clamped")
	assert.Len(t, volumeResp.Conns, 1, "volume changes exclude the actor")
}

func TestRoomCount(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, 0, s.RoomCount(ctx))

	createRoom(t, s, "alice", "alice")
	createRoom(t, s, "carol", "carol")
	assert.Equal(t, 2, s.RoomCount(ctx))

	_, err := s.DisconnectClient(ctx, &DisconnectClientParams{ClientId: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.RoomCount(ctx))
}

func TestTypingExcludesSender(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	roomId := createRoom(t, s, "alice", "alice")
	joinRoom(t, s, roomId, "bob", "bob")

	resp, err := s.Typing(ctx, &TypingParams{RoomId: roomId, SenderId: "bob", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Username)
	assert.Len(t, resp.Conns, 1)
}
