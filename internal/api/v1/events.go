package v1

import (
	"net/http"
	"time"

	"github.com/vmunix/netlee/internal/events"
	"github.com/vmunix/netlee/internal/media"
)

func eventsToResponse(raw []events.RawEvent) []EventResponse {
	items := make([]EventResponse, len(raw))
	for i, e := range raw {
		items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}
	return items
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	raw, total, err := s.deps.EventLog.Find(events.Query{
		EventType:   r.URL.Query().Get("type"),
		Limit:       limit,
		NewestFirst: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{
		Items: eventsToResponse(raw),
		Total: total,
		Limit: limit,
	})
}

// listEntityEvents returns the history of one title, oldest first.
func (s *Server) listEntityEvents(w http.ResponseWriter, r *http.Request) {
	origin, err := media.ParseOriginStrict(r.PathValue("origin"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	ref := media.ContentRef{ID: r.PathValue("id"), Origin: origin}

	raw, err := s.deps.EventLog.ForEntity(events.EntityMovie, ref.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{
		Items: eventsToResponse(raw),
		Total: len(raw),
		Limit: len(raw),
	})
}
