// Package store holds games and ratings and joins each game with its
// aggregate on read.
package store

import (
	"context"
	"strings"

	"gamerate/backend/internal/apperr"
	"gamerate/backend/internal/models"
)

// NewGame is the input to InsertGame.
type NewGame struct {
	Name        string
	Link        string
	Description string
	Image       string
}

// NewRating is the input to InsertRating. A score of 0 means not rated.
type NewRating struct {
	GameID   uint
	Music    int
	Art      int
	Gameplay int
}

// Store is implemented by MemoryStore and GormStore.
type Store interface {
	InsertGame(ctx context.Context, in NewGame) (uint, error)
	InsertRating(ctx context.Context, in NewRating) (uint, error)
	ListGames(ctx context.Context) ([]models.GameSummary, error)
	GetGame(ctx context.Context, id uint) (models.GameSummary, error)
	DeleteGame(ctx context.Context, id uint) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)

func (in NewGame) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperr.Validation("name is required")
	case strings.TrimSpace(in.Link) == "":
		return apperr.Validation("link is required")
	case strings.TrimSpace(in.Image) == "":
		return apperr.Validation("image is required")
	}
	return nil
}

func (in NewRating) validate() error {
	scores := []struct {
		name  string
		value int
	}{
		{"music", in.Music},
		{"art", in.Art},
		{"gameplay", in.Gameplay},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > models.MaxScore {
			return apperr.Validation("%s must be between 0 and %d", s.name, models.MaxScore)
		}
	}
	return nil
}

func gameNotFound(id uint) error {
	return apperr.NotFound("game %d not found", id)
}
