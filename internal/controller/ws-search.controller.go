package controller

import (
	"context"

	"github.com/gorilla/websocket"
)

type SearchYouTubeInput struct {
	Query string `json:"query" validate:"required,max=128"`
}

// handleSearchYouTube answers the requester only; search results are
// never room state.
func (c controller) handleSearchYouTube(ctx context.Context, conn *websocket.Conn, input SearchYouTubeInput) error {
	results, err := c.searchService.Search(ctx, input.Query)
	if err != nil {
		return err
	}

	c.writeToConn(ctx, conn, &Output{
		Type:    outSearchResults,
		Payload: results,
	})

	return nil
}

type GetVideoDetailsInput struct {
	VideoId string `json:"videoId" validate:"required"`
}

func (c controller) handleGetVideoDetails(ctx context.Context, conn *websocket.Conn, input GetVideoDetailsInput) error {
	details, err := c.searchService.GetVideoDetails(ctx, input.VideoId)
	if err != nil {
		c.writeErrorMessage(ctx, conn, "Failed to get video details")
		return nil
	}

	c.writeToConn(ctx, conn, &Output{
		Type:    outVideoDetails,
		Payload: details,
	})

	return nil
}
