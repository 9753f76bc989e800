package v1

import (
	"context"
	"net/http"

	"github.com/vmunix/netlee/internal/events"
	"github.com/vmunix/netlee/internal/media"
)

func (s *Server) getLocalMovie(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Local.LocalMovie(r.Context(), r.PathValue("id"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getCatalogMovie(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Catalog.CatalogMovie(r.Context(), r.PathValue("id"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	if p.Videos == nil {
		p.Videos = []media.Video{}
	}
	writeJSON(w, http.StatusOK, p)
}

// resolveQuery handles GET /resolve?id=&origin=. A missing origin means
// local unless the server runs with strict origins.
func (s *Server) resolveQuery(w http.ResponseWriter, r *http.Request) {
	parse := media.ParseOrigin
	if s.cfg.StrictOrigin {
		parse = media.ParseOriginStrict
	}
	origin, err := parse(r.URL.Query().Get("origin"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	s.resolve(w, r, media.ContentRef{ID: r.URL.Query().Get("id"), Origin: origin})
}

func (s *Server) resolvePath(w http.ResponseWriter, r *http.Request) {
	origin, err := media.ParseOriginStrict(r.PathValue("origin"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	s.resolve(w, r, media.ContentRef{ID: r.PathValue("id"), Origin: origin})
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request, ref media.ContentRef) {
	rec, err := s.deps.Resolver.Resolve(r.Context(), ref)
	if err != nil {
		s.publish(r.Context(), &events.ResolveFailed{
			BaseEvent: events.NewBaseEvent(events.EventResolveFailed, events.EntityMovie, ref.String()),
			Origin:    string(ref.Origin),
			Kind:      string(media.KindOf(err)),
			Reason:    err.Error(),
		})
		writeMediaError(w, err)
		return
	}

	s.publish(r.Context(), &events.ResolveCompleted{
		BaseEvent:  events.NewBaseEvent(events.EventResolveCompleted, events.EntityMovie, ref.String()),
		Origin:     string(ref.Origin),
		Title:      rec.Title,
		HasTrailer: rec.Trailer != nil,
	})

	resp := resolveResponse{Ref: ref, Record: rec}
	if ref.Origin == media.OriginLocal {
		resp.CanPlayFull = rec.PrimaryAsset.Playable()
	} else {
		resp.CanPlayFull = rec.FullAsset.Playable()
	}
	// One play action: the trailer is offered only when nothing full plays.
	resp.CanPlayTrailer = !resp.CanPlayFull && rec.Trailer != nil
	if rec.Trailer != nil {
		resp.TrailerURL = rec.Trailer.EmbedURL(s.cfg.TrailerHost)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) publish(ctx context.Context, e events.Event) {
	if s.deps.Bus == nil {
		return
	}
	if err := s.deps.Bus.Publish(context.WithoutCancel(ctx), e); err != nil {
		s.logger.Warn("publish failed", "type", e.EventType(), "error", err)
	}
}
