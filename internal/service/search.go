package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"cloudstream/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchState is the outcome of a smart search: the remote name matches
// plus the optional LLM-refined id set. A nil RefinedIDs means "no
// refinement, show all remote matches".
type SearchState struct {
	Query         string
	RemoteMatches []domain.FileRecord
	RefinedIDs    map[string]struct{}
}

// Active reports whether a search is currently narrowing the view.
func (s SearchState) Active() bool {
	return s.Query != ""
}

// SearchService coordinates smart search: a name-substring remote query,
// fuzzy-ranked, then best-effort narrowed by the LLM refiner.
type SearchService struct {
	repo    domain.DriveRepository
	refiner domain.Refiner
	logger  *slog.Logger

	mu    sync.Mutex
	state SearchState
}

// NewSearchService creates a new search service
func NewSearchService(repo domain.DriveRepository, refiner domain.Refiner, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		repo:    repo,
		refiner: refiner,
		logger:  logger,
	}
}

// RunSearch executes the search and replaces the search state. An empty or
// whitespace-only query is a no-op. A remote transport failure aborts the
// whole operation and leaves the prior state untouched. Refinement failure
// or an empty refinement never blocks the base search: the state falls back
// to all remote matches unfiltered.
func (s *SearchService) RunSearch(ctx context.Context, query string) (SearchState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.State(), nil
	}

	matches, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		s.logger.Error("remote search failed", "query", query, "error", err)
		return s.State(), err
	}

	rankMatches(matches, query)

	next := SearchState{Query: query, RemoteMatches: matches}

	ids, err := s.refiner.Refine(ctx, query, matches)
	if err != nil {
		s.logger.Warn("refinement unavailable, showing all matches", "query", query, "error", err)
	} else if len(ids) > 0 {
		refined := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			refined[id] = struct{}{}
		}
		next.RefinedIDs = refined
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.logger.Debug("search complete", "query", query,
		"matches", len(matches), "refined", len(next.RefinedIDs))
	return next, nil
}

// Reset clears the search state. Called on every folder navigation and
// view-mode switch.
func (s *SearchService) Reset() {
	s.mu.Lock()
	s.state = SearchState{}
	s.mu.Unlock()
}

// State returns a snapshot of the current search state.
func (s *SearchService) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// rankMatches orders remote matches by name relevance to the query.
// Lower score = better match.
func rankMatches(records []domain.FileRecord, query string) {
	query = strings.ToLower(query)
	sort.SliceStable(records, func(i, j int) bool {
		return matchScore(strings.ToLower(records[i].Name), query) <
			matchScore(strings.ToLower(records[j].Name), query)
	})
}

func matchScore(name, query string) int {
	switch {
	case name == query:
		return 0
	case strings.HasPrefix(name, query):
		return 10
	case strings.Contains(name, query):
		return 50
	default:
		return 100 + fuzzy.LevenshteinDistance(query, name)
	}
}
