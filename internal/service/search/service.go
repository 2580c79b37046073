package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/watchparty/server/internal/repository/searchcache"
	"github.com/watchparty/server/pkg/youtube"
)

// ErrUpstreamFailure covers every way the video-search collaborator can
// fail: network errors, bad status, malformed bodies, missing key. It is
// reported once to the requester and never retried.
var ErrUpstreamFailure = errors.New("upstream search failed")

type iYouTubeClient interface {
	Search(ctx context.Context, query string) ([]youtube.SearchResult, error)
	GetVideoDetails(ctx context.Context, videoId string) (youtube.VideoDetails, error)
}

// CacheRepo is the optional result cache. A nil CacheRepo disables caching
// entirely.
type CacheRepo interface {
	GetSearchResults(ctx context.Context, query string) ([]youtube.SearchResult, error)
	SetSearchResults(ctx context.Context, query string, results []youtube.SearchResult) error
	GetVideoDetails(ctx context.Context, videoId string) (youtube.VideoDetails, error)
	SetVideoDetails(ctx context.Context, videoId string, details youtube.VideoDetails) error
}

// VideoDetails is the client-facing shape with counts already formatted
// for display.
type VideoDetails struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	Duration     string `json:"duration"`
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

type service struct {
	client  iYouTubeClient
	cache   CacheRepo
	printer *message.Printer
	logger  *slog.Logger
}

// NewService wraps the search collaborator. cache may be nil, in which case
// every request goes upstream.
func NewService(client iYouTubeClient, cache CacheRepo, logger *slog.Logger) *service {
	return &service{
		client:  client,
		cache:   cache,
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
}

func (s *service) Search(ctx context.Context, query string) ([]youtube.SearchResult, error) {
	if s.cache != nil {
		results, err := s.cache.GetSearchResults(ctx, query)
		if err == nil {
			return results, nil
		}
		if !errors.Is(err, searchcache.ErrNotFound) {
			s.logger.WarnContext(ctx, "search cache read failed", "error", err)
		}
	}

	results, err := s.client.Search(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "youtube search failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	if s.cache != nil {
		if err := s.cache.SetSearchResults(ctx, query, results); err != nil {
			s.logger.WarnContext(ctx, "search cache write failed", "error", err)
		}
	}

	return results, nil
}

func (s *service) GetVideoDetails(ctx context.Context, videoId string) (VideoDetails, error) {
	var details youtube.VideoDetails
	cached := false

	if s.cache != nil {
		var err error
		details, err = s.cache.GetVideoDetails(ctx, videoId)
		if err == nil {
			cached = true
		} else if !errors.Is(err, searchcache.ErrNotFound) {
			s.logger.WarnContext(ctx, "video details cache read failed", "error", err)
		}
	}

	if !cached {
		var err error
		details, err = s.client.GetVideoDetails(ctx, videoId)
		if err != nil {
			s.logger.WarnContext(ctx, "youtube video details failed", "error", err)
			return VideoDetails{}, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
		}

		if s.cache != nil {
			if err := s.cache.SetVideoDetails(ctx, videoId, details); err != nil {
				s.logger.WarnContext(ctx, "video details cache write failed", "error", err)
			}
		}
	}

	return VideoDetails{
		Id:           details.Id,
		Title:        details.Title,
		Duration:     details.Duration,
		ViewCount:    s.printer.Sprintf("%d", details.ViewCount),
		LikeCount:    s.printer.Sprintf("%d", details.LikeCount),
		Thumbnail:    details.Thumbnail,
		ChannelTitle: details.ChannelTitle,
	}, nil
}
