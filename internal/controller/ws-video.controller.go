package controller

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/service/room"
)

type VideoUrlChangeInput struct {
	RoomId   string `json:"roomId" validate:"required"`
	VideoUrl string `json:"videoUrl" validate:"required"`
}

func (c controller) handleVideoUrlChange(ctx context.Context, _ *websocket.Conn, input VideoUrlChangeInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	updateVideoUrlResp, err := c.roomService.UpdateVideoUrl(ctx, &room.UpdateVideoUrlParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		VideoUrl: input.VideoUrl,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, updateVideoUrlResp.Conns, &Output{
		Type:    outVideoUrlChanged,
		Payload: updateVideoUrlResp.VideoUrl,
	})

	return nil
}

type PlaybackSignalInput struct {
	RoomId      string  `json:"roomId" validate:"required"`
	CurrentTime float64 `json:"currentTime" validate:"gte=0"`
}

func (c controller) handlePlayVideo(ctx context.Context, _ *websocket.Conn, input PlaybackSignalInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	playResp, err := c.roomService.PlaySignal(ctx, &room.PlaybackSignalParams{
		RoomId:      input.RoomId,
		SenderId:    clientId,
		CurrentTime: input.CurrentTime,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, playResp.Conns, &Output{
		Type:    outVideoPlay,
		Payload: map[string]float64{"currentTime": playResp.CurrentTime},
	})

	return nil
}

func (c controller) handlePauseVideo(ctx context.Context, _ *websocket.Conn, input PlaybackSignalInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	pauseResp, err := c.roomService.PauseSignal(ctx, &room.PlaybackSignalParams{
		RoomId:      input.RoomId,
		SenderId:    clientId,
		CurrentTime: input.CurrentTime,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, pauseResp.Conns, &Output{
		Type:    outVideoPause,
		Payload: map[string]float64{"currentTime": pauseResp.CurrentTime},
	})

	return nil
}

func (c controller) handleSeekVideo(ctx context.Context, _ *websocket.Conn, input PlaybackSignalInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	seekResp, err := c.roomService.SeekVideo(ctx, &room.SeekVideoParams{
		RoomId:      input.RoomId,
		SenderId:    clientId,
		CurrentTime: input.CurrentTime,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, seekResp.Conns, &Output{
		Type:    outVideoSeek,
		Payload: map[string]float64{"currentTime": seekResp.CurrentTime},
	})

	return nil
}

type AddToQueueInput struct {
	RoomId   string `json:"roomId" validate:"required"`
	VideoUrl string `json:"videoUrl" validate:"required"`
	Title    string `json:"title"`
}

func (c controller) handleAddToQueue(ctx context.Context, _ *websocket.Conn, input AddToQueueInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	addToQueueResp, err := c.roomService.AddToQueue(ctx, &room.AddToQueueParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		VideoUrl: input.VideoUrl,
		Title:    input.Title,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, addToQueueResp.Conns, &Output{
		Type:    outQueueUpdated,
		Payload: addToQueueResp.Queue,
	})

	return nil
}

type RemoveFromQueueInput struct {
	RoomId      string `json:"roomId" validate:"required"`
	QueueItemId string `json:"queueItemId" validate:"required"`
}

func (c controller) handleRemoveFromQueue(ctx context.Context, _ *websocket.Conn, input RemoveFromQueueInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	removeFromQueueResp, err := c.roomService.RemoveFromQueue(ctx, &room.RemoveFromQueueParams{
		RoomId:      input.RoomId,
		SenderId:    clientId,
		QueueItemId: input.QueueItemId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, removeFromQueueResp.Conns, &Output{
		Type:    outQueueUpdated,
		Payload: removeFromQueueResp.Queue,
	})

	return nil
}

type AdvanceQueueInput struct {
	RoomId string `json:"roomId" validate:"required"`
}

// handlePlayNext is the explicit skip. An empty queue is not an error:
// the current video simply keeps playing.
func (c controller) handlePlayNext(ctx context.Context, _ *websocket.Conn, input AdvanceQueueInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	advanceQueueResp, err := c.roomService.AdvanceQueue(ctx, &room.AdvanceQueueParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
	})
	if err != nil {
		return err
	}

	if advanceQueueResp.NextItem == nil {
		return nil
	}

	c.broadcast(ctx, advanceQueueResp.Conns, &Output{
		Type:    outVideoUrlChanged,
		Payload: advanceQueueResp.NextItem.VideoUrl,
	})
	c.broadcast(ctx, advanceQueueResp.Conns, &Output{
		Type:    outQueueUpdated,
		Payload: advanceQueueResp.Queue,
	})

	return nil
}

// handleVideoEnded is the natural end of the current video. It advances
// the queue like play-next but tells the room when nothing is left.
func (c controller) handleVideoEnded(ctx context.Context, _ *websocket.Conn, input AdvanceQueueInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	advanceQueueResp, err := c.roomService.AdvanceQueue(ctx, &room.AdvanceQueueParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
	})
	if err != nil {
		return err
	}

	if advanceQueueResp.NextItem == nil {
		c.broadcast(ctx, advanceQueueResp.Conns, &Output{
			Type: outQueueFinished,
		})
		return nil
	}

	c.broadcast(ctx, advanceQueueResp.Conns, &Output{
		Type:    outVideoUrlChanged,
		Payload: advanceQueueResp.NextItem.VideoUrl,
	})
	c.broadcast(ctx, advanceQueueResp.Conns, &Output{
		Type:    outQueueUpdated,
		Payload: advanceQueueResp.Queue,
	})

	return nil
}

type ChangePlaybackSpeedInput struct {
	RoomId string  `json:"roomId" validate:"required"`
	Speed  float64 `json:"speed" validate:"required,gt=0"`
}

func (c controller) handleChangePlaybackSpeed(ctx context.Context, _ *websocket.Conn, input ChangePlaybackSpeedInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	changeSpeedResp, err := c.roomService.ChangePlaybackSpeed(ctx, &room.ChangePlaybackSpeedParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Speed:    input.Speed,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, changeSpeedResp.Conns, &Output{
		Type:    outPlaybackSpeed,
		Payload: map[string]float64{"speed": changeSpeedResp.Speed},
	})

	return nil
}

type ChangeVolumeInput struct {
	RoomId string `json:"roomId" validate:"required"`
	Volume int    `json:"volume" validate:"gte=0,lte=100"`
}

func (c controller) handleChangeVolume(ctx context.Context, _ *websocket.Conn, input ChangeVolumeInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	changeVolumeResp, err := c.roomService.ChangeVolume(ctx, &room.ChangeVolumeParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Volume:   input.Volume,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, changeVolumeResp.Conns, &Output{
		Type:    outVolumeChanged,
		Payload: map[string]int{"volume": changeVolumeResp.Volume},
	})

	return nil
}

type AddBookmarkInput struct {
	RoomId  string  `json:"roomId" validate:"required"`
	Name    string  `json:"name" validate:"required,max=64"`
	Time    float64 `json:"time" validate:"gte=0"`
	VideoId string  `json:"videoId"`
}

func (c controller) handleAddBookmark(ctx context.Context, _ *websocket.Conn, input AddBookmarkInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	addBookmarkResp, err := c.roomService.AddBookmark(ctx, &room.AddBookmarkParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Name:     input.Name,
		Time:     input.Time,
		VideoId:  input.VideoId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, addBookmarkResp.Conns, &Output{
		Type:    outBookmarksUpdated,
		Payload: addBookmarkResp.Bookmarks,
	})

	return nil
}

type RemoveBookmarkInput struct {
	RoomId     string `json:"roomId" validate:"required"`
	BookmarkId string `json:"bookmarkId" validate:"required"`
}

func (c controller) handleRemoveBookmark(ctx context.Context, _ *websocket.Conn, input RemoveBookmarkInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	removeBookmarkResp, err := c.roomService.RemoveBookmark(ctx, &room.RemoveBookmarkParams{
		RoomId:     input.RoomId,
		SenderId:   clientId,
		BookmarkId: input.BookmarkId,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, removeBookmarkResp.Conns, &Output{
		Type:    outBookmarksUpdated,
		Payload: removeBookmarkResp.Bookmarks,
	})

	return nil
}

type JumpToBookmarkInput struct {
	RoomId string  `json:"roomId" validate:"required"`
	Time   float64 `json:"time" validate:"gte=0"`
}

func (c controller) handleJumpToBookmark(ctx context.Context, _ *websocket.Conn, input JumpToBookmarkInput) error {
	clientId := c.getClientIdFromCtx(ctx)

	jumpResp, err := c.roomService.JumpToBookmark(ctx, &room.JumpToBookmarkParams{
		RoomId:   input.RoomId,
		SenderId: clientId,
		Time:     input.Time,
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, jumpResp.Conns, &Output{
		Type:    outSeekToTime,
		Payload: map[string]float64{"time": jumpResp.Time},
	})

	return nil
}
