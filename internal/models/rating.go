package models

import "time"

// MaxScore is the highest value a rating category accepts.
// A score of 0 means the category was left unrated.
const MaxScore = 5

// Rating is one three-category score submission for a game.
type Rating struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"not null;index"`
	Music     int       `gorm:"type:smallint;not null;check:chk_ratings_music,music >= 0 AND music <= 5"`
	Art       int       `gorm:"type:smallint;not null;check:chk_ratings_art,art >= 0 AND art <= 5"`
	Gameplay  int       `gorm:"type:smallint;not null;check:chk_ratings_gameplay,gameplay >= 0 AND gameplay <= 5"`
	CreatedAt time.Time `gorm:"not null"`
}
