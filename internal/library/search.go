package library

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MinSearchScore is the lowest similarity a search hit may have.
const MinSearchScore = 0.70

// SearchResult is one movie matched by Search.
type SearchResult struct {
	Movie *Movie
	Score float64 // 0.0-1.0
}

// Search returns library movies whose title matches query, best first.
// Titles containing the cleaned query score 1.0; the rest are ranked by
// Jaro-Winkler similarity, with a penalty when sequel numbers disagree.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	q := CleanTitle(query)
	if q == "" {
		return nil, nil
	}

	movies, _, err := s.ListMovies(MovieFilter{})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var results []SearchResult
	for _, m := range movies {
		if score := TitleScore(q, CleanTitle(m.Title)); score >= MinSearchScore {
			results = append(results, SearchResult{Movie: m, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// TitleScore compares two cleaned titles.
func TitleScore(query, title string) float64 {
	if query == title || strings.Contains(title, query) {
		return 1.0
	}
	score := float64(edlib.JaroWinklerSimilarity(query, title))
	return adjustScoreForNumbers(score, extractNumbers(query), extractNumbers(title))
}

func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers penalizes candidates whose sequence numbers are
// missing or different, and rewards an exact number match.
func adjustScoreForNumbers(score float64, queryNums, titleNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(titleNums) == 0 {
		return score * 0.85
	}

	titleSet := make(map[string]bool, len(titleNums))
	for _, n := range titleNums {
		titleSet[n] = true
	}
	for _, n := range queryNums {
		if !titleSet[n] {
			return score * 0.80
		}
	}
	return min(score*1.05, 1.0)
}
