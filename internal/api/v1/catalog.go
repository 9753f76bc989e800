package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vmunix/netlee/internal/library"
)

func assetToResponse(a *library.CatalogAsset) assetResponse {
	return assetResponse{
		TMDBID:    a.TMDBID,
		StreamURL: a.StreamURL,
		DirectURL: a.DirectURL,
		UpdatedAt: a.UpdatedAt,
	}
}

// pathTMDBID extracts a positive TMDB id from the URL path.
func pathTMDBID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("tmdb_id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "tmdb_id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.deps.Library.ListCatalogAssets()
	if err != nil {
		writeStoreError(w, err, "asset")
		return
	}
	items := make([]assetResponse, len(assets))
	for i, a := range assets {
		items[i] = assetToResponse(a)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTMDBID(w, r)
	if !ok {
		return
	}
	a, err := s.deps.Library.GetCatalogAsset(id)
	if err != nil {
		writeStoreError(w, err, "asset")
		return
	}
	writeJSON(w, http.StatusOK, assetToResponse(a))
}

// setAsset attaches a full-length asset to a catalog title.
func (s *Server) setAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTMDBID(w, r)
	if !ok {
		return
	}
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	a := &library.CatalogAsset{TMDBID: id, StreamURL: req.StreamURL, DirectURL: req.DirectURL}
	if err := s.deps.Library.SetCatalogAsset(a); err != nil {
		writeStoreError(w, err, "asset")
		return
	}
	s.logger.Info("catalog asset set", "tmdb_id", id)
	writeJSON(w, http.StatusOK, assetToResponse(a))
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTMDBID(w, r)
	if !ok {
		return
	}
	if err := s.deps.Library.DeleteCatalogAsset(id); err != nil {
		writeStoreError(w, err, "asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
