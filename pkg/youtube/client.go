package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://youtube-v31.p.rapidapi.com"

var ErrVideoNotFound = errors.New("video not found")

type Config struct {
	APIKey string
	// BaseURL overrides the RapidAPI endpoint, used in tests.
	BaseURL string
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
	}
}

type SearchResult struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt"`
}

type VideoDetails struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	Duration     string `json:"duration"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

type thumbnail struct {
	Url string `json:"url"`
}

type snippet struct {
	Title      string `json:"title"`
	Thumbnails struct {
		Medium thumbnail `json:"medium"`
		High   thumbnail `json:"high"`
	} `json:"thumbnails"`
	ChannelTitle string `json:"channelTitle"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt"`
}

func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("maxResults", "10")
	params.Set("type", "video")

	var body struct {
		Items []struct {
			Id struct {
				VideoId string `json:"videoId"`
			} `json:"id"`
			Snippet snippet `json:"snippet"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/search", params, &body); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, SearchResult{
			Id:           item.Id.VideoId,
			Title:        item.Snippet.Title,
			Thumbnail:    item.Snippet.Thumbnails.Medium.Url,
			ChannelTitle: item.Snippet.ChannelTitle,
			Description:  item.Snippet.Description,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}

	return results, nil
}

func (c *Client) GetVideoDetails(ctx context.Context, videoId string) (VideoDetails, error) {
	params := url.Values{}
	params.Set("part", "contentDetails,statistics,snippet")
	params.Set("id", videoId)

	var body struct {
		Items []struct {
			Snippet        snippet `json:"snippet"`
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
			Statistics struct {
				ViewCount string `json:"viewCount"`
				LikeCount string `json:"likeCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/videos", params, &body); err != nil {
		return VideoDetails{}, err
	}

	if len(body.Items) == 0 {
		return VideoDetails{}, ErrVideoNotFound
	}

	video := body.Items[0]
	viewCount, _ := strconv.ParseInt(video.Statistics.ViewCount, 10, 64)
	// like count is hidden on some videos
	likeCount, _ := strconv.ParseInt(video.Statistics.LikeCount, 10, 64)

	return VideoDetails{
		Id:           videoId,
		Title:        video.Snippet.Title,
		Duration:     FormatISO8601Duration(video.ContentDetails.Duration),
		ViewCount:    viewCount,
		LikeCount:    likeCount,
		Thumbnail:    video.Snippet.Thumbnails.High.Url,
		ChannelTitle: video.Snippet.ChannelTitle,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", "youtube-v31.p.rapidapi.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
