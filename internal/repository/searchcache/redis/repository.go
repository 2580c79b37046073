package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/watchparty/server/internal/repository/searchcache"
	"github.com/watchparty/server/pkg/youtube"
)

// repo caches upstream search payloads so repeated queries within the TTL
// do not spend RapidAPI quota. Room state never goes through here.
type repo struct {
	rc  *redis.Client
	ttl time.Duration
}

func NewRepo(rc *redis.Client, ttl time.Duration) *repo {
	return &repo{
		rc:  rc,
		ttl: ttl,
	}
}

func searchKey(query string) string {
	return "search:" + query
}

func videoKey(videoId string) string {
	return "video:" + videoId
}

func (r *repo) GetSearchResults(ctx context.Context, query string) ([]youtube.SearchResult, error) {
	raw, err := r.rc.Get(ctx, searchKey(query)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, searchcache.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get search results: %w", err)
	}

	var results []youtube.SearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search results: %w", err)
	}

	return results, nil
}

func (r *repo) SetSearchResults(ctx context.Context, query string, results []youtube.SearchResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	return r.rc.Set(ctx, searchKey(query), raw, r.ttl).Err()
}

func (r *repo) GetVideoDetails(ctx context.Context, videoId string) (youtube.VideoDetails, error) {
	raw, err := r.rc.Get(ctx, videoKey(videoId)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return youtube.VideoDetails{}, searchcache.ErrNotFound
		}
		return youtube.VideoDetails{}, fmt.Errorf("failed to get video details: %w", err)
	}

	var details youtube.VideoDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return youtube.VideoDetails{}, fmt.Errorf("failed to unmarshal video details: %w", err)
	}

	return details, nil
}

func (r *repo) SetVideoDetails(ctx context.Context, videoId string, details youtube.VideoDetails) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal video details: %w", err)
	}

	return r.rc.Set(ctx, videoKey(videoId), raw, r.ttl).Err()
}
