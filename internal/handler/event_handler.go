package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"levelup/backend/internal/auth"
	"levelup/backend/internal/hub"
	"levelup/backend/internal/models"
	"levelup/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type EventInput struct {
	Name     string `json:"name" binding:"required,max=200" example:"Friday board games"`
	Date     string `json:"date" binding:"required,eventdate" example:"2024-03-09"`
	Time     string `json:"time" binding:"required,eventtime" example:"07:00 PM"`
	Location string `json:"location" binding:"required,max=200" example:"The Game Shelf"`
	GameID   uint   `json:"game" binding:"required" example:"1"` // ID of the game being played
}

func (in EventInput) toStore() (store.EventInput, error) {
	dateTime, err := models.ParseDateTime(in.Date, in.Time)
	if err != nil {
		return store.EventInput{}, err
	}
	return store.EventInput{
		Name:     in.Name,
		DateTime: dateTime,
		Location: in.Location,
		GameID:   in.GameID,
	}, nil
}

// EventGameResponse is the short form of a game nested in an event.
type EventGameResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type EventResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Date      string            `json:"date" example:"2024-03-09"`
	Time      string            `json:"time" example:"07:00 PM"`
	Location  string            `json:"location"`
	Organizer UserResponse      `json:"organizer"`
	Game      EventGameResponse `json:"game"`
	Attendees []UserResponse    `json:"attendees"`
}

func newEventResponse(event models.Event) EventResponse {
	attendees := make([]UserResponse, 0, len(event.Attendees))
	for _, attendee := range event.Attendees {
		attendees = append(attendees, newUserResponse(attendee))
	}

	return EventResponse{
		ID:        event.ID,
		Name:      event.Name,
		Date:      event.Date(),
		Time:      event.Time(),
		Location:  event.Location,
		Organizer: newUserResponse(event.Organizer),
		Game:      EventGameResponse{ID: event.Game.ID, Name: event.Game.Name},
		Attendees: attendees,
	}
}

// endregion

// ListEvents godoc
// @Summary      Get all events
// @Description  Retrieves every event, optionally only those for one game.
// @Tags         events
// @Produce      json
// @Param        game query int false "Filter by Game ID"
// @Success      200 {array}  EventResponse
// @Failure      400 {object} ErrorResponse "Invalid game id"
// @Failure      500 {object} ErrorResponse
// @Router       /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	var gameID *uint
	if raw, ok := c.GetQuery("game"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case errors.Is(err, strconv.ErrRange), err == nil && id <= 0:
			// An integer no game id can have matches nothing.
			c.JSON(http.StatusOK, []EventResponse{})
			return
		case err != nil:
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid game id"})
			return
		}
		filter := uint(id)
		gameID = &filter
	}

	events, err := h.Store.ListEvents(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]EventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, newEventResponse(event))
	}
	c.JSON(http.StatusOK, response)
}

// GetEvent godoc
// @Summary      Get an event by ID
// @Description  Gets full details for a single event, attendees included.
// @Tags         events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} EventResponse
// @Failure      404 {object} ErrorResponse "Event not found"
// @Router       /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}

	event, err := h.Store.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(*event))
}

// CreateEvent godoc
// @Summary      Schedule a new event
// @Description  Creates an event, making the caller its organizer.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body EventInput true "Event Info"
// @Success      201  {object}  EventResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	input, ok := bindEvent(c)
	if !ok {
		return
	}

	event, err := h.Store.CreateEvent(c.Request.Context(), auth.CurrentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newEventResponse(*event))
}

// UpdateEvent godoc
// @Summary      Update an event (organizer only)
// @Description  Replaces an event's name, schedule, location and game. Subscribers of the event are notified.
// @Tags         events
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int        true  "Event ID"
// @Param        input body      EventInput true  "New Event Info"
// @Success      204
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Only the organizer can update the event"
// @Failure      404   {object}  ErrorResponse "Event or game not found"
// @Router       /events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}

	input, ok := bindEvent(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Store.UpdateEvent(ctx, auth.CurrentUser(c), id, input); err != nil {
		respondError(c, err)
		return
	}

	if event, err := h.Store.GetEvent(ctx, id); err == nil {
		h.Hub.Broadcast(id, hub.Message{Type: hub.TypeEventUpdated, Payload: newEventResponse(*event)})
	}
	c.Status(http.StatusNoContent)
}

// JoinEvent godoc
// @Summary      Sign up for an event
// @Description  Adds the caller to the event's attendees. Signing up twice changes nothing.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      201 {object} EventResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Event not found"
// @Router       /events/{id}/signup [post]
func (h *Handler) JoinEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}

	caller := auth.CurrentUser(c)
	event, joined, err := h.Store.JoinEvent(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if joined {
		h.Hub.Broadcast(id, hub.Message{Type: hub.TypeAttendeeJoined, Payload: newUserResponse(*caller)})
	}
	c.JSON(http.StatusCreated, newEventResponse(*event))
}

// LeaveEvent godoc
// @Summary      Leave an event
// @Description  Removes the caller from the event's attendees.
// @Tags         events
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Event not found or caller is not attending"
// @Router       /events/{id}/signup [delete]
func (h *Handler) LeaveEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}

	caller := auth.CurrentUser(c)
	if err := h.Store.LeaveEvent(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(id, hub.Message{Type: hub.TypeAttendeeLeft, Payload: newUserResponse(*caller)})
	c.Status(http.StatusNoContent)
}

// StreamEvent godoc
// @Summary      Follow an event
// @Description  Opens a Server-Sent Events feed of updates and attendance changes for one event.
// @Tags         events
// @Produce      text/event-stream
// @Param        id path int true "Event ID"
// @Success      200 {string} string "event stream"
// @Failure      404 {object} ErrorResponse "Event not found"
// @Router       /events/{id}/stream [get]
func (h *Handler) StreamEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}

	if _, err := h.Store.GetEvent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	client := make(hub.Client, 16)
	h.Hub.Subscribe(id, client)
	defer h.Hub.Unsubscribe(id, client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case data, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(data))
			return true
		}
	})
}

// bindEvent binds the request body and assembles the event's date and time.
func bindEvent(c *gin.Context) (store.EventInput, bool) {
	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return store.EventInput{}, false
	}

	parsed, err := input.toStore()
	if err != nil {
		badRequest(c, err)
		return store.EventInput{}, false
	}
	return parsed, true
}
