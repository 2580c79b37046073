package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/watchparty/server/internal/service/room"
	"github.com/watchparty/server/pkg/rest"
)

func (c controller) healthz(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"status": "ok",
		"rooms":  c.roomService.RoomCount(r.Context()),
	})
}

// getRoomPreview lets a client check a room before opening a socket:
// whether it exists, whether it is locked and how many members it holds.
func (c controller) getRoomPreview(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")

	preview, err := c.roomService.GetRoomPreview(r.Context(), roomId)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "Room not found"})
			return
		}

		c.logger.WarnContext(r.Context(), "failed to get room preview", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "Internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, preview)
}
