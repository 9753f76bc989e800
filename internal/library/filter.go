package library

// MovieFilter specifies criteria for listing movies.
type MovieFilter struct {
	Title  *string
	TMDBID *int64
	Year   *int
	Limit  int // 0 = no limit
	Offset int
}
