package room

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

type AddToQueueParams struct {
	RoomId   string
	SenderId string
	VideoUrl string
	Title    string
}

type AddToQueueResponse struct {
	AddedItem room.QueueItem
	Queue     []room.QueueItem
	Conns     []*websocket.Conn
}

func (s service) AddToQueue(ctx context.Context, params *AddToQueueParams) (AddToQueueResponse, error) {
	var addedItem room.QueueItem
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if len(r.Queue) >= s.queueLimit {
			return ErrQueueLimitReached
		}

		addedItem = r.AddToQueue(room.QueueItem{
			Id:       uuid.NewString(),
			VideoUrl: params.VideoUrl,
			Title:    params.Title,
			AddedBy:  params.SenderId,
		})
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return AddToQueueResponse{}, err
	}

	s.logger.InfoContext(ctx, "video added to queue", "room_id", params.RoomId, "item_id", addedItem.Id)

	return AddToQueueResponse{
		AddedItem: addedItem,
		Queue:     snapshot.Queue,
		Conns:     s.getConns(snapshot.Users),
	}, nil
}

type RemoveFromQueueParams struct {
	RoomId      string
	SenderId    string
	QueueItemId string
}

type RemoveFromQueueResponse struct {
	Queue []room.QueueItem
	Conns []*websocket.Conn
}

func (s service) RemoveFromQueue(ctx context.Context, params *RemoveFromQueueParams) (RemoveFromQueueResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		r.RemoveFromQueue(params.QueueItemId)
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return RemoveFromQueueResponse{}, err
	}

	return RemoveFromQueueResponse{
		Queue: snapshot.Queue,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

type AdvanceQueueParams struct {
	RoomId   string
	SenderId string
}

type AdvanceQueueResponse struct {
	// NextItem is nil when the queue was exhausted.
	NextItem *room.QueueItem
	Queue    []room.QueueItem
	Conns    []*websocket.Conn
}

// AdvanceQueue promotes the queue head to the current video. Both the
// explicit play-next request and the natural video-ended report call this
// one method so the next-video semantics cannot diverge.
func (s service) AdvanceQueue(ctx context.Context, params *AdvanceQueueParams) (AdvanceQueueResponse, error) {
	var nextItem *room.QueueItem
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		if item, ok := r.AdvanceQueue(); ok {
			nextItem = &item
		}
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return AdvanceQueueResponse{}, err
	}

	if nextItem != nil {
		s.logger.InfoContext(ctx, "playing next video", "room_id", params.RoomId, "video_url", nextItem.VideoUrl)
	}

	return AdvanceQueueResponse{
		NextItem: nextItem,
		Queue:    snapshot.Queue,
		Conns:    s.getConns(snapshot.Users),
	}, nil
}
