package store

import (
	"context"
	"fmt"
)

// DemoGame is the catalog entry inserted by SeedDemo.
var DemoGame = NewGame{
	Name:        "Sample Game: Star Trails",
	Link:        "https://example.com",
	Description: "A fantasy adventure with lush visuals and a moving soundtrack.",
	Image:       "https://images.unsplash.com/photo-1550745165-9bc0b252726f?auto=format&fit=crop&w=600&q=80",
}

// SeedDemo inserts DemoGame when the store is empty. It reports whether a
// game was inserted.
func SeedDemo(ctx context.Context, s Store) (bool, error) {
	games, err := s.ListGames(ctx)
	if err != nil {
		return false, fmt.Errorf("seed demo: %w", err)
	}
	if len(games) > 0 {
		return false, nil
	}
	if _, err := s.InsertGame(ctx, DemoGame); err != nil {
		return false, fmt.Errorf("seed demo: %w", err)
	}
	return true, nil
}
