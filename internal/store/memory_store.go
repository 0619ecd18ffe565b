package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"gamerate/backend/internal/aggregate"
	"gamerate/backend/internal/models"
)

// MemoryStore keeps games and ratings in process memory behind a RWMutex.
// It is not durable: state lives from construction until the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	games   []models.Game
	ratings []models.Rating

	lastGameID   uint
	lastRatingID uint
	now          func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock lets tests control created_at timestamps.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

// InsertGame appends a game with the next id.
func (s *MemoryStore) InsertGame(_ context.Context, in NewGame) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastGameID++
	s.games = append(s.games, models.Game{
		ID:          s.lastGameID,
		Name:        in.Name,
		Link:        in.Link,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   s.now(),
	})
	return s.lastGameID, nil
}

// InsertRating checks the game exists and appends the rating in one critical section.
func (s *MemoryStore) InsertRating(_ context.Context, in NewRating) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(in.GameID) < 0 {
		return 0, gameNotFound(in.GameID)
	}

	s.lastRatingID++
	s.ratings = append(s.ratings, models.Rating{
		ID:        s.lastRatingID,
		GameID:    in.GameID,
		Music:     in.Music,
		Art:       in.Art,
		Gameplay:  in.Gameplay,
		CreatedAt: s.now(),
	})
	return s.lastRatingID, nil
}

// ListGames returns every game, newest first, with aggregates recomputed
// from the current ratings.
func (s *MemoryStore) ListGames(_ context.Context) ([]models.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tally := aggregate.Tally(s.ratings)
	result := make([]models.GameSummary, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, models.GameSummary{Game: g, Aggregate: aggregate.For(tally, g.ID)})
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return result, nil
}

// GetGame returns a single game with its aggregate.
func (s *MemoryStore) GetGame(_ context.Context, id uint) (models.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.GameSummary{}, gameNotFound(id)
	}

	var totals aggregate.Totals
	for _, r := range s.ratings {
		if r.GameID == id {
			totals.Add(r.Music, r.Art, r.Gameplay)
		}
	}
	return models.GameSummary{Game: s.games[idx], Aggregate: totals.Aggregate()}, nil
}

// DeleteGame removes a game and all of its ratings.
func (s *MemoryStore) DeleteGame(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return gameNotFound(id)
	}
	s.games = append(s.games[:idx], s.games[idx+1:]...)

	kept := s.ratings[:0]
	for _, r := range s.ratings {
		if r.GameID != id {
			kept = append(kept, r)
		}
	}
	s.ratings = kept
	return nil
}

// indexOf must be called with s.mu held.
func (s *MemoryStore) indexOf(id uint) int {
	for i, g := range s.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}
