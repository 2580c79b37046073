package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomDefaults(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")

	assert.Equal(t, "AB12CD", r.Id)
	assert.Equal(t, "admin-1", r.AdminId)
	require.Len(t, r.Users, 1)
	assert.True(t, r.Users[0].IsAdmin)
	assert.Equal(t, float64(1), r.PlaybackSpeed)
	assert.Equal(t, 100, r.Volume)
	assert.False(t, r.IsLocked)
	assert.Equal(t, ControlModeEveryone, r.PlaybackControl)
	assert.Equal(t, ControlModeEveryone, r.VideoControl)
}

func TestTransferAdminKeepsSingleAdmin(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")
	r.AddUser("user-2", "bob")
	r.AddUser("user-3", "carol")

	ok := r.TransferAdmin("user-2")
	require.True(t, ok)

	assert.Equal(t, "user-2", r.AdminId)
	adminCount := 0
	for _, user := range r.Users {
		if user.IsAdmin {
			adminCount++
			assert.Equal(t, "user-2", user.Id)
		}
	}
	assert.Equal(t, 1, adminCount, "exactly one member must hold the admin flag")
}

func TestTransferAdminToNonMember(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")

	ok := r.TransferAdmin("ghost")
	assert.False(t, ok)
	assert.Equal(t, "admin-1", r.AdminId, "a failed transfer must not move authority")
	assert.True(t, r.Users[0].IsAdmin)
}

func TestRemoveUser(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")
	r.AddUser("user-2", "bob")

	removed, ok := r.RemoveUser("user-2")
	require.True(t, ok)
	assert.Equal(t, "bob", removed.Username)
	assert.False(t, r.HasUser("user-2"))

	_, ok = r.RemoveUser("user-2")
	assert.False(t, ok)
}

func TestAdvanceQueueIsFIFO(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")
	r.AddToQueue(QueueItem{Id: "q1", VideoUrl: "url-1"})
	r.AddToQueue(QueueItem{Id: "q2", VideoUrl: "url-2"})

	next, ok := r.AdvanceQueue()
	require.True(t, ok)
	assert.Equal(t, "q1", next.Id)
	assert.Equal(t, "url-1", r.VideoUrl)

	next, ok = r.AdvanceQueue()
	require.True(t, ok)
	assert.Equal(t, "q2", next.Id)
	assert.Equal(t, "url-2", r.VideoUrl)

	_, ok = r.AdvanceQueue()
	assert.False(t, ok)
	assert.Equal(t, "url-2", r.VideoUrl, "an exhausted queue must leave the current video alone")
}

func TestAddToQueuePlaceholderTitle(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")

	added := r.AddToQueue(QueueItem{Id: "q1", VideoUrl: "url-1"})
	assert.Equal(t, untitledVideo, added.Title)

	added = r.AddToQueue(QueueItem{Id: "q2", VideoUrl: "url-2", Title: "cats"})
	assert.Equal(t, "cats", added.Title)
}

func TestToggleMuted(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")

	assert.True(t, r.ToggleMuted("user-2"), "first toggle mutes")
	assert.True(t, r.IsMuted("user-2"))
	assert.False(t, r.ToggleMuted("user-2"), "second toggle unmutes")
	assert.False(t, r.IsMuted("user-2"))
}

func TestSetPlaybackSpeedIgnoresNonPositive(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")

	r.SetPlaybackSpeed(1.5)
	assert.Equal(t, 1.5, r.PlaybackSpeed)

	r.SetPlaybackSpeed(0)
	assert.Equal(t, 1.5, r.PlaybackSpeed)

	r.SetPlaybackSpeed(-2)
	assert.Equal(t, 1.5, r.PlaybackSpeed)
}

func TestSetVolumeClamps(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")

	r.SetVolume(150)
	assert.Equal(t, 100, r.Volume)

	r.SetVolume(-10)
	assert.Equal(t, 0, r.Volume)

	r.SetVolume(42)
	assert.Equal(t, 42, r.Volume)
}

func TestCloneIsDeep(t *testing.T) {
	r := NewRoom("AB12CD", "admin-1", "alice")
	r.AddToQueue(QueueItem{Id: "q1", VideoUrl: "url-1"})

	clone := r.Clone()
	clone.Users[0].Username = "mallory"
	clone.Queue[0].VideoUrl = "other"

	assert.Equal(t, "alice", r.Users[0].Username)
	assert.Equal(t, "url-1", r.Queue[0].VideoUrl)
}
