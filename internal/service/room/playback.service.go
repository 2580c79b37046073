package room

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/room"
)

type UpdateVideoUrlParams struct {
	RoomId   string
	SenderId string
	VideoUrl string
}

type UpdateVideoUrlResponse struct {
	VideoUrl string
	Conns    []*websocket.Conn
}

func (s service) UpdateVideoUrl(ctx context.Context, params *UpdateVideoUrlParams) (UpdateVideoUrlResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !canControlVideo(r, params.SenderId) {
			return ErrPermissionDenied
		}

		r.SetVideoUrl(params.VideoUrl)
		users = append([]room.User{}, r.Users...)

		return nil
	})
	if err != nil {
		return UpdateVideoUrlResponse{}, err
	}

	s.logger.InfoContext(ctx, "video changed", "room_id", params.RoomId, "video_url", params.VideoUrl)

	return UpdateVideoUrlResponse{
		VideoUrl: params.VideoUrl,
		Conns:    s.getConns(users),
	}, nil
}

type PlaybackSignalParams struct {
	RoomId      string
	SenderId    string
	CurrentTime float64
}

type PlaybackSignalResponse struct {
	CurrentTime float64
	Conns       []*websocket.Conn
}

// PlaySignal and PauseSignal mutate nothing; they validate the playback
// gate and fan the timestamp out to every member except the actor.
func (s service) PlaySignal(ctx context.Context, params *PlaybackSignalParams) (PlaybackSignalResponse, error) {
	return s.playbackSignal(params)
}

func (s service) PauseSignal(ctx context.Context, params *PlaybackSignalParams) (PlaybackSignalResponse, error) {
	return s.playbackSignal(params)
}

func (s service) playbackSignal(params *PlaybackSignalParams) (PlaybackSignalResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !canControlPlayback(r, params.SenderId) {
			return ErrPermissionDenied
		}

		users = append([]room.User{}, r.Users...)

		return nil
	})
	if err != nil {
		return PlaybackSignalResponse{}, err
	}

	return PlaybackSignalResponse{
		CurrentTime: params.CurrentTime,
		Conns:       s.getConns(users, params.SenderId),
	}, nil
}

type SeekVideoParams struct {
	RoomId      string
	SenderId    string
	CurrentTime float64
}

type SeekVideoResponse struct {
	CurrentTime float64
	Conns       []*websocket.Conn
}

func (s service) SeekVideo(ctx context.Context, params *SeekVideoParams) (SeekVideoResponse, error) {
	var users []room.User
	err := s.update(params.RoomId, func(r *room.Room) error {
		if !canControlPlayback(r, params.SenderId) {
			return ErrPermissionDenied
		}

		users = append([]room.User{}, r.Users...)

		return nil
	})
	if err != nil {
		return SeekVideoResponse{}, err
	}

	return SeekVideoResponse{
		CurrentTime: params.CurrentTime,
		Conns:       s.getConns(users, params.SenderId),
	}, nil
}

type ChangePlaybackSpeedParams struct {
	RoomId   string
	SenderId string
	Speed    float64
}

type ChangePlaybackSpeedResponse struct {
	Speed float64
	Conns []*websocket.Conn
}

func (s service) ChangePlaybackSpeed(ctx context.Context, params *ChangePlaybackSpeedParams) (ChangePlaybackSpeedResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		r.SetPlaybackSpeed(params.Speed)
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return ChangePlaybackSpeedResponse{}, err
	}

	return ChangePlaybackSpeedResponse{
		Speed: snapshot.PlaybackSpeed,
		Conns: s.getConns(snapshot.Users),
	}, nil
}

type ChangeVolumeParams struct {
	RoomId   string
	SenderId string
	Volume   int
}

type ChangeVolumeResponse struct {
	Volume int
	Conns  []*websocket.Conn
}

func (s service) ChangeVolume(ctx context.Context, params *ChangeVolumeParams) (ChangeVolumeResponse, error) {
	var snapshot room.Room
	err := s.update(params.RoomId, func(r *room.Room) error {
		r.SetVolume(params.Volume)
		snapshot = r.Clone()

		return nil
	})
	if err != nil {
		return ChangeVolumeResponse{}, err
	}

	return ChangeVolumeResponse{
		Volume: snapshot.Volume,
		Conns:  s.getConns(snapshot.Users, params.SenderId),
	}, nil
}
