package controller

// EventType is the closed set of inbound event kinds. Dispatch happens in
// one switch so adding a kind is a compile-time checked change, not a
// string lookup.
type EventType string

const (
	EventCreateRoom            EventType = "create-room"
	EventJoinRoom              EventType = "join-room"
	EventKickUser              EventType = "kick-user"
	EventToggleMuteUser        EventType = "toggle-mute-user"
	EventToggleLockRoom        EventType = "toggle-lock-room"
	EventTransferAdmin         EventType = "transfer-admin"
	EventTogglePlaybackControl EventType = "toggle-playback-control"
	EventToggleVideoControl    EventType = "toggle-video-control"
	EventVideoUrlChange        EventType = "video-url-change"
	EventPlayVideo             EventType = "play-video"
	EventPauseVideo            EventType = "pause-video"
	EventSeekVideo             EventType = "seek-video"
	EventAddToQueue            EventType = "add-to-queue"
	EventRemoveFromQueue       EventType = "remove-from-queue"
	EventPlayNext              EventType = "play-next"
	EventVideoEnded            EventType = "video-ended"
	EventChangePlaybackSpeed   EventType = "change-playback-speed"
	EventChangeVolume          EventType = "change-volume"
	EventAddBookmark           EventType = "add-bookmark"
	EventRemoveBookmark        EventType = "remove-bookmark"
	EventJumpToBookmark        EventType = "jump-to-bookmark"
	EventSendMessage           EventType = "send-message"
	EventTypingStart           EventType = "typing-start"
	EventTypingStop            EventType = "typing-stop"
	EventSendReaction          EventType = "send-reaction"
	EventSearchYouTube         EventType = "search-youtube"
	EventGetVideoDetails       EventType = "get-video-details"
)

// Outbound event kinds.
const (
	outRoomCreated         = "room-created"
	outRoomJoined          = "room-joined"
	outUserJoined          = "user-joined"
	outUserLeft            = "user-left"
	outKicked              = "kicked"
	outUserKicked          = "user-kicked"
	outRoomUpdated         = "room-updated"
	outVideoUrlChanged     = "video-url-changed"
	outVideoPlay           = "video-play"
	outVideoPause          = "video-pause"
	outVideoSeek           = "video-seek"
	outSeekToTime          = "seek-to-time"
	outQueueUpdated        = "queue-updated"
	outQueueFinished       = "queue-finished"
	outPlaybackSpeed       = "playback-speed-changed"
	outVolumeChanged       = "volume-changed"
	outBookmarksUpdated    = "bookmarks-updated"
	outNewMessage          = "new-message"
	outUserTyping          = "user-typing"
	outUserStoppedTyping   = "user-stopped-typing"
	outNewReaction         = "new-reaction"
	outSearchResults       = "search-results"
	outVideoDetails        = "video-details"
	outError               = "error"
)
