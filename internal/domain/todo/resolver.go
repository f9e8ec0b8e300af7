package todo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"taskmind/internal/textmatch"
)

// DefaultSearchThreshold is the minimum similarity score for ResolveAll hits.
const DefaultSearchThreshold = 0.6

// Resolver maps free text to stored todos using staged matching:
// exact title/description equality, then substring candidates, then a fuzzy
// similarity ranking over the candidates.
type Resolver struct {
	repo Repository
}

// NewResolver creates a resolver over the given repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveOne returns the single best-matching todo for query, or ErrNoMatch.
//
// An exact (case-insensitive) match on title or description wins immediately
// without fetching substring candidates. Otherwise all todos containing query
// as a substring are scored and the highest-scoring one is returned; ties keep
// store order. An empty query substring-matches every todo; that permissive
// behavior is intentional.
func (r *Resolver) ResolveOne(ctx context.Context, query string) (*Todo, error) {
	exact, err := r.repo.FindExact(ctx, query)
	if err == nil {
		return exact, nil
	}
	if !errors.Is(err, ErrTodoNotFound) {
		return nil, fmt.Errorf("exact match lookup: %w", err)
	}

	candidates, err := r.repo.FindContaining(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("candidate lookup: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	best := 0
	bestScore := -1.0
	for i := range candidates {
		if score := similarity(query, &candidates[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return &candidates[best], nil
}

// ResolveAll returns every todo whose similarity to query is at least
// threshold, ordered by descending score. Ties keep their relative store
// order. Unlike ResolveOne there is no exact-match short circuit: all
// substring candidates are scored.
func (r *Resolver) ResolveAll(ctx context.Context, query string, threshold float64) ([]Todo, error) {
	candidates, err := r.repo.FindContaining(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("candidate lookup: %w", err)
	}

	type scored struct {
		todo  Todo
		score float64
	}
	var hits []scored
	for _, t := range candidates {
		if score := similarity(query, &t); score >= threshold {
			hits = append(hits, scored{todo: t, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	results := make([]Todo, 0, len(hits))
	for _, h := range hits {
		results = append(results, h.todo)
	}
	return results, nil
}

// similarity scores a todo against the query: the max of the title ratio and
// the description ratio, case-insensitively. A missing description scores as
// the empty string.
func similarity(query string, t *Todo) float64 {
	q := normalize(query)
	score := textmatch.Ratio(q, normalize(t.Title))
	if desc := textmatch.Ratio(q, normalize(t.Description)); desc > score {
		score = desc
	}
	return score
}

func normalize(s string) string {
	return strings.ToLower(s)
}
