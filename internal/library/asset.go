package library

import (
	"fmt"
	"time"
)

const assetColumns = "tmdb_id, stream_url, direct_url, updated_at"

func setCatalogAsset(q querier, a *CatalogAsset) error {
	if a.StreamURL == nil && a.DirectURL == nil {
		return fmt.Errorf("set catalog asset %d: %w: no url", a.TMDBID, ErrConstraint)
	}
	now := time.Now()
	_, err := q.Exec(`
		INSERT INTO catalog_assets (`+assetColumns+`)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tmdb_id) DO UPDATE SET
			stream_url = excluded.stream_url,
			direct_url = excluded.direct_url,
			updated_at = excluded.updated_at`,
		a.TMDBID, a.StreamURL, a.DirectURL, now,
	)
	if err != nil {
		return fmt.Errorf("set catalog asset %d: %w", a.TMDBID, mapSQLiteError(err))
	}
	a.UpdatedAt = now
	return nil
}

// SetCatalogAsset creates or replaces the full-length asset for a catalog
// title. At least one URL must be set.
func (s *Store) SetCatalogAsset(a *CatalogAsset) error { return setCatalogAsset(s.db, a) }

// SetCatalogAsset creates or replaces a catalog asset within a transaction.
func (t *Tx) SetCatalogAsset(a *CatalogAsset) error { return setCatalogAsset(t.tx, a) }

func getCatalogAsset(q querier, tmdbID int64) (*CatalogAsset, error) {
	a := &CatalogAsset{}
	err := q.QueryRow(`SELECT `+assetColumns+` FROM catalog_assets WHERE tmdb_id = ?`, tmdbID).
		Scan(&a.TMDBID, &a.StreamURL, &a.DirectURL, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get catalog asset %d: %w", tmdbID, mapSQLiteError(err))
	}
	return a, nil
}

// GetCatalogAsset retrieves the asset for a catalog title.
// Returns ErrNotFound if none is stored.
func (s *Store) GetCatalogAsset(tmdbID int64) (*CatalogAsset, error) {
	return getCatalogAsset(s.db, tmdbID)
}

// GetCatalogAsset retrieves a catalog asset within a transaction.
func (t *Tx) GetCatalogAsset(tmdbID int64) (*CatalogAsset, error) {
	return getCatalogAsset(t.tx, tmdbID)
}

// ListCatalogAssets returns every stored catalog asset ordered by TMDB id.
func (s *Store) ListCatalogAssets() ([]*CatalogAsset, error) {
	rows, err := s.db.Query(`SELECT ` + assetColumns + ` FROM catalog_assets ORDER BY tmdb_id`)
	if err != nil {
		return nil, fmt.Errorf("list catalog assets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*CatalogAsset
	for rows.Next() {
		a := &CatalogAsset{}
		if err := rows.Scan(&a.TMDBID, &a.StreamURL, &a.DirectURL, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog asset: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func deleteCatalogAsset(q querier, tmdbID int64) error {
	result, err := q.Exec("DELETE FROM catalog_assets WHERE tmdb_id = ?", tmdbID)
	if err != nil {
		return fmt.Errorf("delete catalog asset %d: %w", tmdbID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete catalog asset %d: %w", tmdbID, ErrNotFound)
	}
	return nil
}

// DeleteCatalogAsset removes the asset for a catalog title.
// Returns ErrNotFound if the title has no asset.
func (s *Store) DeleteCatalogAsset(tmdbID int64) error { return deleteCatalogAsset(s.db, tmdbID) }

// DeleteCatalogAsset removes a catalog asset within a transaction.
func (t *Tx) DeleteCatalogAsset(tmdbID int64) error { return deleteCatalogAsset(t.tx, tmdbID) }
