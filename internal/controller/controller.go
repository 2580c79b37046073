package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/service/room"
	"github.com/watchparty/server/internal/service/search"
	"github.com/watchparty/server/pkg/validator"
	"github.com/watchparty/server/pkg/wsrouter"
	"github.com/watchparty/server/pkg/youtube"
)

type iRoomService interface {
	ConnectClient(context.Context, *room.ConnectClientParams) error
	DisconnectClient(context.Context, *room.DisconnectClientParams) (room.DisconnectClientResponse, error)
	CreateRoom(context.Context, *room.CreateRoomParams) (room.CreateRoomResponse, error)
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	GetRoomPreview(context.Context, string) (room.RoomPreview, error)
	RoomCount(context.Context) int
	KickUser(context.Context, *room.KickUserParams) (room.KickUserResponse, error)
	ToggleMuteUser(context.Context, *room.ToggleMuteUserParams) (room.ToggleMuteUserResponse, error)
	ToggleLockRoom(context.Context, *room.ToggleLockRoomParams) (room.ToggleLockRoomResponse, error)
	TransferAdmin(context.Context, *room.TransferAdminParams) (room.TransferAdminResponse, error)
	TogglePlaybackControl(context.Context, *room.TogglePlaybackControlParams) (room.TogglePlaybackControlResponse, error)
	ToggleVideoControl(context.Context, *room.ToggleVideoControlParams) (room.ToggleVideoControlResponse, error)
	UpdateVideoUrl(context.Context, *room.UpdateVideoUrlParams) (room.UpdateVideoUrlResponse, error)
	PlaySignal(context.Context, *room.PlaybackSignalParams) (room.PlaybackSignalResponse, error)
	PauseSignal(context.Context, *room.PlaybackSignalParams) (room.PlaybackSignalResponse, error)
	SeekVideo(context.Context, *room.SeekVideoParams) (room.SeekVideoResponse, error)
	ChangePlaybackSpeed(context.Context, *room.ChangePlaybackSpeedParams) (room.ChangePlaybackSpeedResponse, error)
	ChangeVolume(context.Context, *room.ChangeVolumeParams) (room.ChangeVolumeResponse, error)
	AddToQueue(context.Context, *room.AddToQueueParams) (room.AddToQueueResponse, error)
	RemoveFromQueue(context.Context, *room.RemoveFromQueueParams) (room.RemoveFromQueueResponse, error)
	AdvanceQueue(context.Context, *room.AdvanceQueueParams) (room.AdvanceQueueResponse, error)
	AddBookmark(context.Context, *room.AddBookmarkParams) (room.AddBookmarkResponse, error)
	RemoveBookmark(context.Context, *room.RemoveBookmarkParams) (room.RemoveBookmarkResponse, error)
	JumpToBookmark(context.Context, *room.JumpToBookmarkParams) (room.JumpToBookmarkResponse, error)
	SendMessage(context.Context, *room.SendMessageParams) (room.SendMessageResponse, error)
	Typing(context.Context, *room.TypingParams) (room.TypingResponse, error)
	SendReaction(context.Context, *room.SendReactionParams) (room.SendReactionResponse, error)
}

type iSearchService interface {
	Search(ctx context.Context, query string) ([]youtube.SearchResult, error)
	GetVideoDetails(ctx context.Context, videoId string) (search.VideoDetails, error)
}

type controller struct {
	roomService   iRoomService
	searchService iSearchService
	upgrader      websocket.Upgrader
	validate      *validator.Validator
	wsmux         *wsrouter.WSRouter
	logger        *slog.Logger
}

func NewController(roomService iRoomService, searchService iSearchService, logger *slog.Logger) *controller {
	c := controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService:   roomService,
		searchService: searchService,
		validate:      validator.NewValidator(),
		logger:        logger,
	}

	c.wsmux = wsrouter.New(c.dispatch)
	c.wsmux.Use(c.wsRequestIdWSMw())
	c.wsmux.Use(c.loggerWSMw())

	return &c
}
