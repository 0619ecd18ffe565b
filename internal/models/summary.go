package models

// Aggregate holds the statistics derived from every rating of a game.
// It is never persisted.
type Aggregate struct {
	AvgMusic    float64 `json:"avg_music"`
	AvgArt      float64 `json:"avg_art"`
	AvgGameplay float64 `json:"avg_gameplay"`
	RatingCount int64   `json:"rating_count"`
	Overall     float64 `json:"overall"`
}

// GameSummary is the read-only view of a game joined with its aggregate.
type GameSummary struct {
	Game
	Aggregate Aggregate
}
