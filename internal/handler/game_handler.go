package handler

import (
	"net/http"

	"levelup/backend/internal/auth"
	"levelup/backend/internal/models"
	"levelup/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Name            string `json:"name" binding:"required,max=200" example:"Go"`
	Manufacturer    string `json:"manufacturer" binding:"required,max=200" example:"Nihon Ki-in"`
	NumberOfPlayers int    `json:"number_of_players" binding:"required,min=1" example:"2"`
	TypeID          uint   `json:"type" binding:"required" example:"1"` // ID of the game type
}

func (in GameInput) toStore() store.GameInput {
	return store.GameInput{
		Name:            in.Name,
		Manufacturer:    in.Manufacturer,
		NumberOfPlayers: in.NumberOfPlayers,
		TypeID:          in.TypeID,
	}
}

type GameResponse struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Manufacturer    string           `json:"manufacturer"`
	NumberOfPlayers int              `json:"number_of_players"`
	Type            GameTypeResponse `json:"type"`
	Creator         UserResponse     `json:"creator"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:              game.ID,
		Name:            game.Name,
		Manufacturer:    game.Manufacturer,
		NumberOfPlayers: game.NumberOfPlayers,
		Type:            newGameTypeResponse(game.Type),
		Creator:         newUserResponse(game.Creator),
	}
}

// endregion

// ListGames godoc
// @Summary      Get all games
// @Description  Retrieves every game with its type and creator.
// @Tags         games
// @Produce      json
// @Success      200 {array}  GameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.Store.ListGames(c.Request.Context())
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

// GetGame godoc
// @Summary      Get a single game by ID
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := parseID(c, "game")
	if !ok {
		return
	}

	game, err := h.Store.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game owned by the authenticated user.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game type not found"
// @Router       /games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	game, err := h.Store.CreateGame(c.Request.Context(), auth.CurrentUser(c), input.toStore())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGameResponse(*game))
}

// UpdateGame godoc
// @Summary      Update a game (creator only)
// @Description  Replaces a game's name, manufacturer, player count and type. The creator never changes.
// @Tags         games
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      204
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Only the creator can update the game"
// @Failure      404   {object}  ErrorResponse "Game or game type not found"
// @Router       /games/{id} [put]
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := parseID(c, "game")
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.Store.UpdateGame(c.Request.Context(), auth.CurrentUser(c), id, input.toStore()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
