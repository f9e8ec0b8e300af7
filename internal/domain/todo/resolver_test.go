package todo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmind/internal/domain/todo"
	"taskmind/internal/domain/todo/mocks"
)

func TestResolver_ResolveOne_ExactShortCircuits(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	want := &todo.Todo{ID: 3, Title: "Buy milk"}
	repo.On("FindExact", ctx, "buy milk").Return(want, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveOne(ctx, "buy milk")
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The fuzzy candidate stage must not run on an exact hit.
	repo.AssertNotCalled(t, "FindContaining", ctx, "buy milk")
}

func TestResolver_ResolveOne_FuzzyBestMatch(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	repo.On("FindExact", ctx, "grocery").Return(nil, todo.ErrTodoNotFound)
	repo.On("FindContaining", ctx, "grocery").Return([]todo.Todo{
		{ID: 1, Title: "weekly grocery planning session"},
		{ID: 2, Title: "grocery"},
		{ID: 3, Title: "grocery run", Description: "buy everything"},
	}, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveOne(ctx, "grocery")
	require.NoError(t, err)
	require.Equal(t, int64(2), got.ID)
}

func TestResolver_ResolveOne_DescriptionWins(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	repo.On("FindExact", ctx, "pick up the dry cleaning").Return(nil, todo.ErrTodoNotFound)
	repo.On("FindContaining", ctx, "pick up the dry cleaning").Return([]todo.Todo{
		{ID: 1, Title: "errands", Description: "pick up the dry cleaning today"},
		{ID: 2, Title: "pick up"},
	}, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveOne(ctx, "pick up the dry cleaning")
	require.NoError(t, err)
	require.Equal(t, int64(1), got.ID)
}

func TestResolver_ResolveOne_NoCandidates(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	repo.On("FindExact", ctx, "nothing here").Return(nil, todo.ErrTodoNotFound)
	repo.On("FindContaining", ctx, "nothing here").Return([]todo.Todo{}, nil)

	r := todo.NewResolver(repo)
	_, err := r.ResolveOne(ctx, "nothing here")
	require.ErrorIs(t, err, todo.ErrNoMatch)
}

func TestResolver_ResolveOne_TieKeepsStoreOrder(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	// Identical titles score identically; the first candidate wins.
	repo.On("FindExact", ctx, "dupe").Return(nil, todo.ErrTodoNotFound)
	repo.On("FindContaining", ctx, "dupe").Return([]todo.Todo{
		{ID: 7, Title: "dupe entry"},
		{ID: 9, Title: "dupe entry"},
	}, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveOne(ctx, "dupe")
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
}

func TestResolver_ResolveAll_ThresholdAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	repo.On("FindContaining", ctx, "report").Return([]todo.Todo{
		{ID: 1, Title: "report"},                        // score 1.0
		{ID: 2, Title: "quarterly report for finance"},  // low score, filtered
		{ID: 3, Title: "reports"},                       // score ~0.857
		{ID: 4, Title: "x", Description: "the reports"}, // below 0.6 on both
	}, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveAll(ctx, "report", 0.6)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(3), got[1].ID)
}

func TestResolver_ResolveAll_NeverCallsExactStage(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	repo.On("FindContaining", ctx, "report").Return([]todo.Todo{
		{ID: 1, Title: "report"},
	}, nil)

	r := todo.NewResolver(repo)
	_, err := r.ResolveAll(ctx, "report", 0.6)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "FindExact", ctx, "report")
}

func TestResolver_ResolveAll_StableTies(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	repo.On("FindContaining", ctx, "call mom").Return([]todo.Todo{
		{ID: 5, Title: "call mom"},
		{ID: 2, Title: "call mom"},
		{ID: 8, Title: "call mom"},
	}, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveAll(ctx, "call mom", 0.6)
	require.NoError(t, err)
	require.Equal(t, []int64{5, 2, 8}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestResolver_ResolveAll_EmptyQueryMatchesEverything(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository{}

	// An empty query is passed through; the substring stage matches all rows,
	// but scores against "" stay below any positive threshold.
	repo.On("FindContaining", ctx, "").Return([]todo.Todo{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
	}, nil)

	r := todo.NewResolver(repo)
	got, err := r.ResolveAll(ctx, "", 0.6)
	require.NoError(t, err)
	require.Empty(t, got)

	all, err := r.ResolveAll(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
