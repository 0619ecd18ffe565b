package store

import (
	"context"
	"errors"
	"time"

	"gamerate/backend/internal/aggregate"
	"gamerate/backend/internal/apperr"
	"gamerate/backend/internal/models"

	"gorm.io/gorm"
)

// GormStore persists games and ratings in a relational database.
// Aggregates are computed by the database with COUNT/SUM and turned into
// means by the aggregate package.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an opened and migrated *gorm.DB.
func NewGormStore(db *gorm.DB) *GormStore {
	return NewGormStoreWithClock(db, time.Now)
}

// NewGormStoreWithClock lets tests control created_at timestamps.
func NewGormStoreWithClock(db *gorm.DB, now func() time.Time) *GormStore {
	if now == nil {
		now = time.Now
	}
	return &GormStore{db: db, now: now}
}

// gameTotalsRow is the scan target of the aggregate query.
type gameTotalsRow struct {
	ID          uint
	Name        string
	Link        string
	Description string
	Image       string
	CreatedAt   time.Time
	RatingCount int64
	MusicSum    int64
	ArtSum      int64
	GameplaySum int64
}

func (r gameTotalsRow) summary() models.GameSummary {
	totals := aggregate.Totals{
		Count:    r.RatingCount,
		Music:    r.MusicSum,
		Art:      r.ArtSum,
		Gameplay: r.GameplaySum,
	}
	return models.GameSummary{
		Game: models.Game{
			ID:          r.ID,
			Name:        r.Name,
			Link:        r.Link,
			Description: r.Description,
			Image:       r.Image,
			CreatedAt:   r.CreatedAt,
		},
		Aggregate: totals.Aggregate(),
	}
}

const gameColumns = "games.id, games.name, games.link, games.description, games.image, games.created_at"

// InsertGame creates a game row and returns its autoincrement id.
func (s *GormStore) InsertGame(ctx context.Context, in NewGame) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	game := models.Game{
		Name:        in.Name,
		Link:        in.Link,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return 0, apperr.Store(err, "failed to create game")
	}
	return game.ID, nil
}

// InsertRating checks the game and inserts the rating in one transaction.
func (s *GormStore) InsertRating(ctx context.Context, in NewRating) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	rating := models.Rating{
		GameID:    in.GameID,
		Music:     in.Music,
		Art:       in.Art,
		Gameplay:  in.Gameplay,
		CreatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Game{}).Where("id = ?", in.GameID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gameNotFound(in.GameID)
		}
		return tx.Create(&rating).Error
	})
	// The game can be deleted between the count and the insert.
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return 0, gameNotFound(in.GameID)
	}
	if err != nil {
		return 0, apperr.Store(err, "failed to save rating")
	}
	return rating.ID, nil
}

// ListGames returns every game, newest first, joined with its rating totals.
func (s *GormStore) ListGames(ctx context.Context) ([]models.GameSummary, error) {
	var rows []gameTotalsRow
	if err := s.totalsQuery(ctx).
		Order("games.created_at DESC, games.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Store(err, "failed to list games")
	}

	result := make([]models.GameSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.summary())
	}
	return result, nil
}

// GetGame returns one game joined with its rating totals.
func (s *GormStore) GetGame(ctx context.Context, id uint) (models.GameSummary, error) {
	var rows []gameTotalsRow
	if err := s.totalsQuery(ctx).
		Where("games.id = ?", id).
		Scan(&rows).Error; err != nil {
		return models.GameSummary{}, apperr.Store(err, "failed to load game")
	}
	if len(rows) == 0 {
		return models.GameSummary{}, gameNotFound(id)
	}
	return rows[0].summary(), nil
}

// DeleteGame removes a game together with its ratings.
func (s *GormStore) DeleteGame(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gameNotFound(id)
			}
			return err
		}
		return tx.Select("Ratings").Delete(&game).Error
	})
	return apperr.Store(err, "failed to delete game")
}

func (s *GormStore) totalsQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("games").
		Select(gameColumns + ", " +
			"COUNT(ratings.id) AS rating_count, " +
			"COALESCE(SUM(ratings.music), 0) AS music_sum, " +
			"COALESCE(SUM(ratings.art), 0) AS art_sum, " +
			"COALESCE(SUM(ratings.gameplay), 0) AS gameplay_sum").
		Joins("LEFT JOIN ratings ON ratings.game_id = games.id").
		Group(gameColumns)
}
