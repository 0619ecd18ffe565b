// Package service validates requests and turns store results into the
// contract used by the HTTP handlers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"gamerate/backend/internal/apperr"
	"gamerate/backend/internal/hub"
	"gamerate/backend/internal/logging"
	"gamerate/backend/internal/metrics"
	"gamerate/backend/internal/models"
	"gamerate/backend/internal/store"
)

// CreateGameInput is the payload of CreateGame.
type CreateGameInput struct {
	Name        string
	Link        string
	Description string
	Image       string
}

// RatingInput is the payload of SubmitRating. A nil or zero score skips
// that category.
type RatingInput struct {
	Music    *int
	Art      *int
	Gameplay *int
}

// RatingEvent is the payload broadcast after a rating is stored.
type RatingEvent struct {
	GameID uint `json:"game_id"`
	models.Aggregate
}

// GameService is the single entry point for game and rating operations.
type GameService struct {
	store   store.Store
	hub     *hub.Hub
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewGameService wires a service. hub and recorder may be nil.
func NewGameService(st store.Store, h *hub.Hub, recorder *metrics.Recorder, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{store: st, hub: h, metrics: recorder, logger: logger}
}

// ListGames returns every game with its aggregate, newest first.
func (s *GameService) ListGames(ctx context.Context) ([]models.GameSummary, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, s.fail(err, "failed to list games")
	}
	return games, nil
}

// GetGame returns one game with its aggregate.
func (s *GameService) GetGame(ctx context.Context, id int64) (models.GameSummary, error) {
	gameID, err := validGameID(id)
	if err != nil {
		return models.GameSummary{}, err
	}
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return models.GameSummary{}, s.fail(err, "failed to load game", logging.FieldGameID, gameID)
	}
	return game, nil
}

// CreateGame validates the required fields and stores a new game.
func (s *GameService) CreateGame(ctx context.Context, in CreateGameInput) (uint, error) {
	id, err := s.store.InsertGame(ctx, store.NewGame{
		Name:        in.Name,
		Link:        in.Link,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		return 0, s.fail(err, "failed to create game")
	}

	s.metrics.GameCreated()
	s.logger.Info("game created", logging.FieldGameID, id)
	return id, nil
}

// SubmitRating validates and stores a rating, then publishes the game's
// fresh aggregate to subscribers.
func (s *GameService) SubmitRating(ctx context.Context, gameID int64, in RatingInput) error {
	id, err := validGameID(gameID)
	if err != nil {
		return err
	}

	rating := store.NewRating{GameID: id}
	scores := []struct {
		name  string
		value *int
		dst   *int
	}{
		{"music", in.Music, &rating.Music},
		{"art", in.Art, &rating.Art},
		{"gameplay", in.Gameplay, &rating.Gameplay},
	}
	for _, sc := range scores {
		v, err := normalizeScore(sc.name, sc.value)
		if err != nil {
			return err
		}
		*sc.dst = v
	}

	ratingID, err := s.store.InsertRating(ctx, rating)
	if err != nil {
		return s.fail(err, "failed to save rating", logging.FieldGameID, id)
	}

	s.metrics.RatingSubmitted()
	s.logger.Info("rating submitted", logging.FieldGameID, id, logging.FieldRatingID, ratingID)
	s.publish(ctx, id)
	return nil
}

// DeleteGame removes a game and its ratings.
func (s *GameService) DeleteGame(ctx context.Context, id int64) error {
	gameID, err := validGameID(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGame(ctx, gameID); err != nil {
		return s.fail(err, "failed to delete game", logging.FieldGameID, gameID)
	}
	s.logger.Info("game deleted", logging.FieldGameID, gameID)
	return nil
}

func (s *GameService) publish(ctx context.Context, gameID uint) {
	if s.hub == nil || s.hub.Subscribers(gameID) == 0 {
		return
	}
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		logging.Warn(s.logger, "skip rating broadcast", logging.FieldGameID, gameID, "error", err)
		return
	}
	event := hub.Event{
		Type:    hub.EventRatingSubmitted,
		Payload: RatingEvent{GameID: gameID, Aggregate: game.Aggregate},
	}
	if err := s.hub.Broadcast(gameID, event); err != nil {
		logging.Warn(s.logger, "rating broadcast failed", logging.FieldGameID, gameID, "error", err)
	}
}

// fail classifies err and logs persistence failures. Validation and
// not-found errors pass through untouched.
func (s *GameService) fail(err error, message string, args ...any) error {
	classified := apperr.Store(err, message)
	if errors.Is(classified, apperr.ErrStore) {
		logging.Error(s.logger, message, err, args...)
	}
	return classified
}

func validGameID(id int64) (uint, error) {
	if id <= 0 {
		return 0, apperr.Validation("invalid game id")
	}
	return uint(id), nil
}

// normalizeScore maps an absent or zero score to 0 and requires 1..5 otherwise.
func normalizeScore(name string, v *int) (int, error) {
	if v == nil || *v == 0 {
		return 0, nil
	}
	if *v < 1 || *v > models.MaxScore {
		return 0, apperr.Validation("%s must be between 1 and %d", name, models.MaxScore)
	}
	return *v, nil
}
