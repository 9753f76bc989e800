package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vmunix/netlee/internal/library"
)

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 0 || offset < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit and offset must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := library.MovieFilter{Limit: limit, Offset: offset}
	if title := r.URL.Query().Get("title"); title != "" {
		filter.Title = &title
	}
	if year := queryInt(r, "year", 0); year > 0 {
		filter.Year = &year
	}

	movies, total, err := s.deps.Library.ListMovies(filter)
	if err != nil {
		writeStoreError(w, err, "movie")
		return
	}

	resp := listMoviesResponse{
		Items:  make([]movieResponse, len(movies)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i, m := range movies {
		resp.Items[i] = movieToResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Library.GetMovie(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "movie")
		return
	}
	writeJSON(w, http.StatusOK, movieToResponse(m))
}

func decodeMovieRequest(w http.ResponseWriter, r *http.Request) (*movieRequest, bool) {
	var req movieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return nil, false
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "title is required")
		return nil, false
	}
	return &req, true
}

func (s *Server) addMovie(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMovieRequest(w, r)
	if !ok {
		return
	}

	m := &library.Movie{
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		TMDBID:      req.TMDBID,
		StreamURL:   req.StreamURL,
		DirectURL:   req.DirectURL,
	}
	if err := s.deps.Library.AddMovie(m); err != nil {
		writeStoreError(w, err, "movie")
		return
	}
	s.logger.Info("movie added", "id", m.ID, "title", m.Title)
	writeJSON(w, http.StatusCreated, movieToResponse(m))
}

// updateMovie replaces every editable field; omitted URLs become absent.
func (s *Server) updateMovie(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMovieRequest(w, r)
	if !ok {
		return
	}

	var m *library.Movie
	err := s.deps.Library.InTx(func(tx *library.Tx) error {
		var err error
		if m, err = tx.GetMovie(r.PathValue("id")); err != nil {
			return err
		}
		m.Title = req.Title
		m.Description = req.Description
		m.Year = req.Year
		m.TMDBID = req.TMDBID
		m.StreamURL = req.StreamURL
		m.DirectURL = req.DirectURL
		return tx.UpdateMovie(m)
	})
	if err != nil {
		writeStoreError(w, err, "movie")
		return
	}
	writeJSON(w, http.StatusOK, movieToResponse(m))
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.deps.Library.DeleteMovie(id); err != nil {
		writeStoreError(w, err, "movie")
		return
	}
	s.logger.Info("movie deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchLibrary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "q is required")
		return
	}

	results, err := s.deps.Library.Search(q, queryInt(r, "limit", 20))
	if err != nil {
		writeStoreError(w, err, "movie")
		return
	}

	resp := searchResponse{Query: q, Items: make([]searchResult, len(results))}
	for i, res := range results {
		resp.Items[i] = searchResult{movieResponse: movieToResponse(res.Movie), Score: res.Score}
	}
	writeJSON(w, http.StatusOK, resp)
}
