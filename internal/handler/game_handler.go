package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"gamerate/backend/internal/apperr"
	"gamerate/backend/internal/hub"
	"gamerate/backend/internal/models"
	"gamerate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Name        string `json:"name" binding:"required" example:"Star Trails"`
	Link        string `json:"link" binding:"required" example:"https://example.com"`
	Description string `json:"description" example:"A fantasy adventure"`
	Image       string `json:"image" binding:"required" example:"https://example.com/cover.png"`
}

// RatingInput scores are 1-5. Omitted, null or 0 skips the category.
type RatingInput struct {
	Music    *int `json:"music" example:"5"`
	Art      *int `json:"art" example:"4"`
	Gameplay *int `json:"gameplay" example:"3"`
}

type GameResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	AvgMusic    float64   `json:"avg_music"`
	AvgArt      float64   `json:"avg_art"`
	AvgGameplay float64   `json:"avg_gameplay"`
	RatingCount int64     `json:"rating_count"`
	Overall     float64   `json:"overall"`
}

func newGameResponse(game models.GameSummary) GameResponse {
	return GameResponse{
		ID:          game.ID,
		Name:        game.Name,
		Link:        game.Link,
		Description: game.Description,
		Image:       game.Image,
		CreatedAt:   game.CreatedAt,
		AvgMusic:    game.Aggregate.AvgMusic,
		AvgArt:      game.Aggregate.AvgArt,
		AvgGameplay: game.Aggregate.AvgGameplay,
		RatingCount: game.Aggregate.RatingCount,
		Overall:     game.Aggregate.Overall,
	}
}

type CreateGameResponse struct {
	ID      uint   `json:"id" example:"1"`
	Message string `json:"message" example:"Game added"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Rating submitted"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// GameHandler serves the game catalog and rating endpoints.
type GameHandler struct {
	service *service.GameService
	hub     *hub.Hub
}

func NewGameHandler(svc *service.GameService, h *hub.Hub) *GameHandler {
	return &GameHandler{service: svc, hub: h}
}

// region --- Public Handlers ---

// GetGames godoc
// @Summary      List games
// @Description  Returns every game with its rating averages, newest first.
// @Tags         games
// @Produce      json
// @Success      200 {array}  GameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	games, err := h.service.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Returns one game with its rating averages.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse "Invalid game ID"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	game, err := h.service.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(game))
}

// CreateGame godoc
// @Summary      Add a game
// @Description  Adds a game to the catalog. Name, link and image are required.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input body GameInput true "Game Info"
// @Success      201 {object} CreateGameResponse
// @Failure      400 {object} ErrorResponse "Missing required field"
// @Failure      500 {object} ErrorResponse
// @Router       /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, link and image"})
		return
	}

	id, err := h.service.CreateGame(c.Request.Context(), service.CreateGameInput{
		Name:        input.Name,
		Link:        input.Link,
		Description: input.Description,
		Image:       input.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateGameResponse{ID: id, Message: "Game added"})
}

// RateGame godoc
// @Summary      Rate a game
// @Description  Stores one rating. Each score is 1-5; omitted or 0 leaves the category unrated.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path int         true "Game ID"
// @Param        input body RatingInput true "Scores"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Invalid game ID or score"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      500 {object} ErrorResponse
// @Router       /games/{id}/rate [post]
func (h *GameHandler) RateGame(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	var input RatingInput
	// An empty body is a rating with every category skipped.
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scores must be whole numbers between 1 and 5"})
		return
	}

	err := h.service.SubmitRating(c.Request.Context(), id, service.RatingInput{
		Music:    input.Music,
		Art:      input.Art,
		Gameplay: input.Gameplay,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Rating submitted"})
}

// StreamGameEvents godoc
// @Summary      Follow a game's ratings
// @Description  Server-sent events: a "snapshot" of the game, then a "rating_submitted" event with fresh averages after every rating.
// @Tags         games
// @Produce      text/event-stream
// @Param        id path int true "Game ID"
// @Success      200 {string} string "event stream"
// @Failure      400 {object} ErrorResponse "Invalid game ID"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/events [get]
func (h *GameHandler) StreamGameEvents(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event stream not available"})
		return
	}

	id, ok := parseGameID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	game, err := h.service.GetGame(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	client := hub.NewClient()
	h.hub.Subscribe(game.ID, client)
	defer h.hub.Unsubscribe(game.ID, client)

	c.SSEvent("snapshot", newGameResponse(game))
	c.Writer.Flush()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent(hub.EventRatingSubmitted, string(msg))
			return true
		}
	})
}

// endregion

// region --- Admin Handlers ---

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game and all of its ratings. Only mounted when ENABLE_ADMIN_ROUTES is set.
// @Tags         admin-games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Invalid game ID"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Game deleted"})
}

// endregion

func parseGameID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return 0, false
	}
	return id, true
}

// respondError maps the error kinds onto status codes. Store failures are
// reported generically; their detail is already in the service log.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperr.Message(err, "Invalid request")})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperr.Message(err, "Not found")})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
