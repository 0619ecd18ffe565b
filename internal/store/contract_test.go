package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"gamerate/backend/internal/apperr"
	"gamerate/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// factory builds an empty store whose timestamps come from now.
type factory func(t *testing.T, now func() time.Time) Store

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// steppingClock advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	next := base
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return base }
}

func sampleGame(name string) NewGame {
	return NewGame{Name: name, Link: "https://example.com/" + name, Image: "https://img.example.com/" + name + ".png"}
}

func mustInsertGame(t *testing.T, s Store, name string) uint {
	t.Helper()
	id, err := s.InsertGame(context.Background(), sampleGame(name))
	require.NoError(t, err)
	return id
}

func mustRate(t *testing.T, s Store, gameID uint, music, art, gameplay int) {
	t.Helper()
	_, err := s.InsertRating(context.Background(), NewRating{GameID: gameID, Music: music, Art: art, Gameplay: gameplay})
	require.NoError(t, err)
}

func findGame(t *testing.T, games []models.GameSummary, id uint) models.GameSummary {
	t.Helper()
	for _, g := range games {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("game %d not in list", id)
	return models.GameSummary{}
}

func runStoreContract(t *testing.T, newStore factory) {
	ctx := context.Background()

	t.Run("ids are strictly increasing", func(t *testing.T) {
		s := newStore(t, steppingClock())
		var last uint
		for _, name := range []string{"a", "b", "c"} {
			id := mustInsertGame(t, s, name)
			assert.Greater(t, id, last)
			last = id
		}
		assert.Equal(t, uint(3), last)
	})

	t.Run("required game fields", func(t *testing.T) {
		s := newStore(t, steppingClock())
		cases := map[string]NewGame{
			"missing name":     {Link: "l", Image: "i"},
			"missing link":     {Name: "n", Image: "i"},
			"missing image":    {Name: "n", Link: "l"},
			"whitespace name":  {Name: "   ", Link: "l", Image: "i"},
			"everything empty": {},
		}
		for name, in := range cases {
			_, err := s.InsertGame(ctx, in)
			assert.ErrorIs(t, err, apperr.ErrValidation, name)
		}

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("description defaults to empty", func(t *testing.T) {
		s := newStore(t, steppingClock())
		id := mustInsertGame(t, s, "plain")

		got, err := s.GetGame(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "", got.Description)
		assert.Equal(t, "plain", got.Name)
		assert.True(t, got.CreatedAt.Equal(base))
	})

	t.Run("rating for unknown game", func(t *testing.T) {
		s := newStore(t, steppingClock())
		_, err := s.InsertRating(ctx, NewRating{GameID: 42, Music: 3})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("rating out of range", func(t *testing.T) {
		s := newStore(t, steppingClock())
		id := mustInsertGame(t, s, "g")

		for _, bad := range []NewRating{
			{GameID: id, Music: 6},
			{GameID: id, Music: -1},
			{GameID: id, Art: 9},
			{GameID: id, Gameplay: -3},
		} {
			_, err := s.InsertRating(ctx, bad)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		}

		got, err := s.GetGame(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, got.Aggregate.RatingCount)
	})

	t.Run("single perfect rating", func(t *testing.T) {
		s := newStore(t, steppingClock())
		id := mustInsertGame(t, s, "g")
		mustRate(t, s, id, 5, 5, 5)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		agg := findGame(t, games, id).Aggregate
		assert.Equal(t, models.Aggregate{AvgMusic: 5, AvgArt: 5, AvgGameplay: 5, RatingCount: 1, Overall: 5}, agg)
	})

	t.Run("zeros count toward the divisor", func(t *testing.T) {
		s := newStore(t, steppingClock())
		id := mustInsertGame(t, s, "g")
		mustRate(t, s, id, 5, 0, 0)
		mustRate(t, s, id, 1, 0, 0)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		agg := findGame(t, games, id).Aggregate
		assert.Equal(t, 3.0, agg.AvgMusic)
		assert.Equal(t, int64(2), agg.RatingCount)
		assert.Equal(t, 1.0, agg.Overall)
	})

	t.Run("unrated game reports zeros", func(t *testing.T) {
		s := newStore(t, steppingClock())
		rated := mustInsertGame(t, s, "rated")
		unrated := mustInsertGame(t, s, "unrated")
		mustRate(t, s, rated, 4, 4, 4)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.Aggregate{}, findGame(t, games, unrated).Aggregate)
		assert.Equal(t, 4.0, findGame(t, games, rated).Aggregate.Overall)
	})

	t.Run("ratings stay with their game", func(t *testing.T) {
		s := newStore(t, steppingClock())
		a := mustInsertGame(t, s, "a")
		b := mustInsertGame(t, s, "b")
		mustRate(t, s, a, 5, 5, 5)
		mustRate(t, s, b, 1, 2, 3)
		mustRate(t, s, b, 3, 2, 1)

		ga, err := s.GetGame(ctx, a)
		require.NoError(t, err)
		gb, err := s.GetGame(ctx, b)
		require.NoError(t, err)

		assert.Equal(t, int64(1), ga.Aggregate.RatingCount)
		assert.Equal(t, int64(2), gb.Aggregate.RatingCount)
		assert.Equal(t, 2.0, gb.Aggregate.AvgMusic)
		assert.Equal(t, 2.0, gb.Aggregate.Overall)
	})

	t.Run("newest first", func(t *testing.T) {
		s := newStore(t, steppingClock())
		first := mustInsertGame(t, s, "first")
		second := mustInsertGame(t, s, "second")
		third := mustInsertGame(t, s, "third")

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 3)
		assert.Equal(t, []uint{third, second, first}, []uint{games[0].ID, games[1].ID, games[2].ID})
	})

	t.Run("ties broken by id descending", func(t *testing.T) {
		s := newStore(t, fixedClock())
		a := mustInsertGame(t, s, "a")
		b := mustInsertGame(t, s, "b")

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, b, games[0].ID)
		assert.Equal(t, a, games[1].ID)
	})

	t.Run("get unknown game", func(t *testing.T) {
		s := newStore(t, steppingClock())
		_, err := s.GetGame(ctx, 7)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("delete cascades and ids are not reused", func(t *testing.T) {
		s := newStore(t, steppingClock())
		keep := mustInsertGame(t, s, "keep")
		drop := mustInsertGame(t, s, "drop")
		mustRate(t, s, keep, 2, 2, 2)
		mustRate(t, s, drop, 5, 5, 5)

		require.NoError(t, s.DeleteGame(ctx, drop))
		assert.ErrorIs(t, s.DeleteGame(ctx, drop), apperr.ErrNotFound)

		_, err := s.InsertRating(ctx, NewRating{GameID: drop, Music: 1})
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, keep, games[0].ID)
		assert.Equal(t, int64(1), games[0].Aggregate.RatingCount)

		next := mustInsertGame(t, s, "next")
		assert.Greater(t, next, drop)

		got, err := s.GetGame(ctx, next)
		require.NoError(t, err)
		assert.Zero(t, got.Aggregate.RatingCount)
	})

	t.Run("concurrent ratings on one game", func(t *testing.T) {
		s := newStore(t, steppingClock())
		id := mustInsertGame(t, s, "busy")

		const n = 40
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.InsertRating(ctx, NewRating{GameID: id, Music: i%5 + 1, Art: 3, Gameplay: 0})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := s.GetGame(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(n), got.Aggregate.RatingCount)
		assert.Equal(t, 3.0, got.Aggregate.AvgMusic)
		assert.Equal(t, 3.0, got.Aggregate.AvgArt)
		assert.Equal(t, 0.0, got.Aggregate.AvgGameplay)
	})

	t.Run("seed demo only when empty", func(t *testing.T) {
		s := newStore(t, steppingClock())

		seeded, err := SeedDemo(ctx, s)
		require.NoError(t, err)
		assert.True(t, seeded)

		seeded, err = SeedDemo(ctx, s)
		require.NoError(t, err)
		assert.False(t, seeded)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, DemoGame.Name, games[0].Name)
		assert.Zero(t, games[0].Aggregate.RatingCount)
	})
}
