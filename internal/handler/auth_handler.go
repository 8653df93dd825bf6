package handler

import (
	"net/http"

	"levelup/backend/internal/store"
	"levelup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email" example:"ada@example.com"`
	FirstName string `json:"first_name" binding:"required" example:"Ada"`
	LastName  string `json:"last_name" binding:"required" example:"Lovelace"`
	Username  string `json:"username" binding:"required,max=150" example:"ada"`
	Password  string `json:"password" binding:"required,max=72" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"ada"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse carries the bearer token issued at registration.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// LoginResponse reports whether the credentials were valid.
// A failed login is not an HTTP error: callers must check Valid.
type LoginResponse struct {
	Valid bool   `json:"valid" example:"true"`
	Token string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new gamer
// @Description  Creates a new user and returns the user's authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse "Missing fields or username already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /register [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.Store.RegisterUser(c.Request.Context(), store.Registration{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Password:  input.Password,
	}, func(userID uint) (string, error) {
		return jwt.GenerateToken(userID, h.Secret)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Token: token})
}

// LoginUser godoc
// @Summary      Log in a gamer
// @Description  Checks the credentials and returns the user's token. Bad credentials still answer 200 with valid=false.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      500  {object}  ErrorResponse
// @Router       /login [post]
func (h *Handler) LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	token, ok, err := h.Store.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, LoginResponse{Valid: false})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Valid: true, Token: token})
}

// endregion
