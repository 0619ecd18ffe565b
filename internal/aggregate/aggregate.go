// Package aggregate computes per-game rating statistics.
//
// Every rating counts toward the divisor of each category, including ratings
// that left a category at 0. The overall score is the mean of the three
// category means.
package aggregate

import "gamerate/backend/internal/models"

// Totals accumulates the rating sums of a single game.
type Totals struct {
	Count    int64
	Music    int64
	Art      int64
	Gameplay int64
}

// Add folds one rating into the totals.
func (t *Totals) Add(music, art, gameplay int) {
	t.Count++
	t.Music += int64(music)
	t.Art += int64(art)
	t.Gameplay += int64(gameplay)
}

// Aggregate derives the means. A game without ratings reports zeros.
func (t Totals) Aggregate() models.Aggregate {
	if t.Count <= 0 {
		return models.Aggregate{}
	}

	n := float64(t.Count)
	agg := models.Aggregate{
		AvgMusic:    float64(t.Music) / n,
		AvgArt:      float64(t.Art) / n,
		AvgGameplay: float64(t.Gameplay) / n,
		RatingCount: t.Count,
	}
	agg.Overall = (agg.AvgMusic + agg.AvgArt + agg.AvgGameplay) / 3
	return agg
}

// Tally groups ratings by game id.
func Tally(ratings []models.Rating) map[uint]*Totals {
	byGame := make(map[uint]*Totals)
	for _, r := range ratings {
		t, ok := byGame[r.GameID]
		if !ok {
			t = &Totals{}
			byGame[r.GameID] = t
		}
		t.Add(r.Music, r.Art, r.Gameplay)
	}
	return byGame
}

// For returns the aggregate of gameID from a tally. Missing games get zeros.
func For(tally map[uint]*Totals, gameID uint) models.Aggregate {
	if t, ok := tally[gameID]; ok {
		return t.Aggregate()
	}
	return models.Aggregate{}
}
