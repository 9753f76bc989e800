package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") ||
		strings.Contains(errStr, "NOT NULL constraint failed") {
		return ErrConstraint
	}
	return err
}

const movieColumns = "id, title, description, year, tmdb_id, stream_url, direct_url, added_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*Movie, error) {
	m := &Movie{}
	err := s.Scan(&m.ID, &m.Title, &m.Description, &m.Year, &m.TMDBID, &m.StreamURL, &m.DirectURL, &m.AddedAt, &m.UpdatedAt)
	return m, err
}

func addMovie(q querier, m *Movie) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	_, err := q.Exec(`
		INSERT INTO movies (`+movieColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Description, m.Year, m.TMDBID, m.StreamURL, m.DirectURL, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
	}
	m.AddedAt = now
	m.UpdatedAt = now
	return nil
}

// AddMovie inserts a new movie. A UUID is generated when ID is empty.
// Sets AddedAt and UpdatedAt on the struct.
func (s *Store) AddMovie(m *Movie) error { return addMovie(s.db, m) }

// AddMovie inserts a new movie within a transaction.
func (t *Tx) AddMovie(m *Movie) error { return addMovie(t.tx, m) }

func getMovie(q querier, id string) (*Movie, error) {
	m, err := scanMovie(q.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, mapSQLiteError(err))
	}
	return m, nil
}

// GetMovie retrieves a movie by ID.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) GetMovie(id string) (*Movie, error) { return getMovie(s.db, id) }

// GetMovie retrieves a movie by ID within a transaction.
func (t *Tx) GetMovie(id string) (*Movie, error) { return getMovie(t.tx, id) }

func listMovies(q querier, f MovieFilter) ([]*Movie, int, error) {
	var conditions []string
	var args []any

	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.TMDBID != nil {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, *f.TMDBID)
	}
	if f.Year != nil {
		conditions = append(conditions, "year = ?")
		args = append(args, *f.Year)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM movies "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	query := "SELECT " + movieColumns + " FROM movies " + whereClause + " ORDER BY added_at, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movie: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate movies: %w", err)
	}

	return results, total, nil
}

// ListMovies returns movies matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListMovies(f MovieFilter) ([]*Movie, int, error) { return listMovies(s.db, f) }

// ListMovies returns movies matching the filter within a transaction.
func (t *Tx) ListMovies(f MovieFilter) ([]*Movie, int, error) { return listMovies(t.tx, f) }

func updateMovie(q querier, m *Movie) error {
	now := time.Now()
	result, err := q.Exec(`
		UPDATE movies SET title = ?, description = ?, year = ?, tmdb_id = ?, stream_url = ?, direct_url = ?, updated_at = ?
		WHERE id = ?`,
		m.Title, m.Description, m.Year, m.TMDBID, m.StreamURL, m.DirectURL, now, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update movie %s: %w", m.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update movie %s: %w", m.ID, ErrNotFound)
	}
	m.UpdatedAt = now
	return nil
}

// UpdateMovie updates an existing movie.
// Sets UpdatedAt on the struct.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) UpdateMovie(m *Movie) error { return updateMovie(s.db, m) }

// UpdateMovie updates an existing movie within a transaction.
func (t *Tx) UpdateMovie(m *Movie) error { return updateMovie(t.tx, m) }

func deleteMovie(q querier, id string) error {
	result, err := q.Exec("DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete movie %s: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete movie %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteMovie removes a movie by ID.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) DeleteMovie(id string) error { return deleteMovie(s.db, id) }

// DeleteMovie removes a movie by ID within a transaction.
func (t *Tx) DeleteMovie(id string) error { return deleteMovie(t.tx, id) }
