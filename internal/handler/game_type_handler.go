package handler

import (
	"net/http"

	"levelup/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type GameTypeResponse struct {
	ID    uint   `json:"id" example:"1"`
	Label string `json:"label" example:"Board game"`
}

func newGameTypeResponse(gameType models.GameType) GameTypeResponse {
	return GameTypeResponse{
		ID:    gameType.ID,
		Label: gameType.Label,
	}
}

// ListGameTypes godoc
// @Summary      Get all game types
// @Description  Retrieves every game type.
// @Tags         gametypes
// @Produce      json
// @Success      200  {array}   GameTypeResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /gametypes [get]
func (h *Handler) ListGameTypes(c *gin.Context) {
	gameTypes, err := h.Store.ListGameTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]GameTypeResponse, 0, len(gameTypes))
	for _, gameType := range gameTypes {
		response = append(response, newGameTypeResponse(gameType))
	}
	c.JSON(http.StatusOK, response)
}

// GetGameType godoc
// @Summary      Get a game type by ID
// @Tags         gametypes
// @Produce      json
// @Param        id   path      int  true  "Game type ID"
// @Success      200  {object}  GameTypeResponse
// @Failure      404  {object}  ErrorResponse "Game type not found"
// @Router       /gametypes/{id} [get]
func (h *Handler) GetGameType(c *gin.Context) {
	id, ok := parseID(c, "game type")
	if !ok {
		return
	}

	gameType, err := h.Store.GetGameType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameTypeResponse(*gameType))
}
