package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"levelup/backend/internal/hub"
	"levelup/backend/internal/models"
	"levelup/backend/internal/policy"
	"levelup/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

// Handler serves the HTTP API.
type Handler struct {
	Store  *store.Store
	Hub    *hub.Hub
	Secret []byte
}

// New creates a Handler.
func New(s *store.Store, h *hub.Hub, secret []byte) *Handler {
	return &Handler{Store: s, Hub: h, Secret: secret}
}

// region --- Shared DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Message string `json:"message" example:"An error message"`
}

// UserResponse is the nested representation of a user in every payload.
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	FullName string `json:"full_name" example:"Ada Lovelace"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		FullName: user.FullName(),
	}
}

// endregion

// region --- Helpers ---

var registerOnce sync.Once

// RegisterValidators adds the eventdate and eventtime binding tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
			return models.ValidDate(fl.Field().String())
		})
		_ = v.RegisterValidation("eventtime", func(fl validator.FieldLevel) bool {
			return models.ValidTime(fl.Field().String())
		})
	})
}

// RequestID tags every request with an id, reusing an incoming X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// parseID reads the :id path parameter. A malformed id names no record, so it answers 404.
func parseID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: resource + " not found"})
		return 0, false
	}
	return uint(id), true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
}

// respondError translates a store or policy error into its HTTP status.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrNotAttending):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, policy.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})
	case errors.Is(err, policy.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case errors.Is(err, store.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		// max=72 on the binding counts runes, bcrypt counts bytes.
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "password must be at most 72 bytes"})
	default:
		log.Printf("request %s: %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}

// endregion
