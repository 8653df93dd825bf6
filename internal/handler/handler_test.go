package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"levelup/backend/internal/auth"
	"levelup/backend/internal/hub"
	"levelup/backend/internal/policy"
	"levelup/backend/internal/store"
	"levelup/backend/internal/testutil"
	"levelup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testSecret = []byte("handler-test-secret")

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	hub    *hub.Hub
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	db := testutil.OpenDB(t)
	s := store.New(db)
	eventHub := hub.NewHub()
	h := New(s, eventHub, testSecret)

	router := gin.New()
	router.Use(RequestID())
	router.POST("/register", h.RegisterUser)
	router.POST("/login", h.LoginUser)

	api := router.Group("")
	api.Use(auth.IdentityMiddleware(s, testSecret))
	api.GET("/gametypes", h.ListGameTypes)
	api.GET("/gametypes/:id", h.GetGameType)
	api.GET("/games", h.ListGames)
	api.GET("/games/:id", h.GetGame)
	api.POST("/games", auth.RequireUser(), h.CreateGame)
	api.PUT("/games/:id", auth.RequireUser(), h.UpdateGame)
	api.GET("/events", h.ListEvents)
	api.GET("/events/:id", h.GetEvent)
	api.POST("/events", auth.RequireUser(), h.CreateEvent)
	api.PUT("/events/:id", auth.RequireUser(), h.UpdateEvent)
	api.POST("/events/:id/signup", auth.RequireUser(), h.JoinEvent)
	api.DELETE("/events/:id/signup", auth.RequireUser(), h.LeaveEvent)

	return &testAPI{router: router, db: db, hub: eventHub}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(t *testing.T, username, first, last string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/register", "", RegisterInput{
		Email:     username + "@example.com",
		FirstName: first,
		LastName:  last,
		Username:  username,
		Password:  username + "-pw",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", username, w.Code, w.Body)
	}
	var resp TokenResponse
	decode(t, w, &resp)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode %q: %v", w.Body.String(), err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "alice", "Alice", "Smith")

	if _, err := jwt.ParseToken(token, testSecret); err != nil {
		t.Fatalf("registration token does not verify: %v", err)
	}

	t.Run("duplicate username", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/register", "", RegisterInput{
			Email: "other@example.com", FirstName: "A", LastName: "B", Username: "alice", Password: "x",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		var resp ErrorResponse
		decode(t, w, &resp)
		if resp.Message != store.ErrUsernameTaken.Error() {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/register", "", map[string]string{"username": "bob"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	for name, password := range map[string]string{
		"password longer than 72 characters": strings.Repeat("p", 73),
		"password longer than 72 bytes":      strings.Repeat("é", 40),
	} {
		t.Run(name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/register", "", RegisterInput{
				Email: "carol@example.com", FirstName: "Carol", LastName: "King", Username: "carol", Password: password,
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body)
			}
		})
	}

	t.Run("password of exactly 72 bytes", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/register", "", RegisterInput{
			Email: "dave@example.com", FirstName: "Dave", LastName: "Gray", Username: "dave", Password: strings.Repeat("p", 72),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body = %s", w.Code, w.Body)
		}
	})

	tests := []struct {
		name      string
		username  string
		password  string
		wantValid bool
	}{
		{name: "valid credentials", username: "alice", password: "alice-pw", wantValid: true},
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "unknown user", username: "nobody", password: "alice-pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/login", "", LoginInput{Username: tt.username, Password: tt.password})
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var resp LoginResponse
			decode(t, w, &resp)
			if resp.Valid != tt.wantValid {
				t.Fatalf("valid = %v, want %v", resp.Valid, tt.wantValid)
			}
			if tt.wantValid && resp.Token != token {
				t.Errorf("token = %q, want the registration token", resp.Token)
			}
			if !tt.wantValid && resp.Token != "" {
				t.Errorf("failed login returned a token")
			}
		})
	}
}

func TestGameTypes(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/gametypes", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("empty list: status = %d, body = %s", w.Code, w.Body)
	}

	board := createGameType(t, api, "Board game")

	w = api.do(t, http.MethodGet, fmt.Sprintf("/gametypes/%d", board), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("retrieve: status = %d", w.Code)
	}
	var got GameTypeResponse
	decode(t, w, &got)
	if got.ID != board || got.Label != "Board game" {
		t.Errorf("got %+v", got)
	}

	for _, path := range []string{"/gametypes/999", "/gametypes/abc"} {
		if w := api.do(t, http.MethodGet, path, "", nil); w.Code != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want 404", path, w.Code)
		}
	}
}

func TestGameOwnership(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "alice", "Alice", "Smith")
	bob := api.register(t, "bob", "Bob", "Jones")
	boardGame := createGameType(t, api, "Board game")

	input := GameInput{Name: "Catan", Manufacturer: "Kosmos", NumberOfPlayers: 4, TypeID: boardGame}

	if w := api.do(t, http.MethodPost, "/games", "", input); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: status = %d, want 401", w.Code)
	}

	w := api.do(t, http.MethodPost, "/games", alice, input)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body)
	}
	var game GameResponse
	decode(t, w, &game)
	if game.Creator.FullName != "Alice Smith" || game.Type.Label != "Board game" {
		t.Fatalf("created game = %+v", game)
	}
	path := fmt.Sprintf("/games/%d", game.ID)

	t.Run("non-creator cannot update", func(t *testing.T) {
		w := api.do(t, http.MethodPut, path, bob, GameInput{Name: "Stolen", Manufacturer: "X", NumberOfPlayers: 2, TypeID: boardGame})
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
		var got GameResponse
		decode(t, api.do(t, http.MethodGet, path, "", nil), &got)
		if got.Name != "Catan" {
			t.Errorf("name = %q after rejected update", got.Name)
		}
	})

	t.Run("creator updates", func(t *testing.T) {
		w := api.do(t, http.MethodPut, path, alice, GameInput{Name: "Catan 5th", Manufacturer: "Kosmos", NumberOfPlayers: 6, TypeID: boardGame})
		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204, body = %s", w.Code, w.Body)
		}
		var got GameResponse
		decode(t, api.do(t, http.MethodGet, path, "", nil), &got)
		if got.Name != "Catan 5th" || got.NumberOfPlayers != 6 || got.Creator.FullName != "Alice Smith" {
			t.Errorf("updated game = %+v", got)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/games", alice, GameInput{Name: "X", Manufacturer: "Y", NumberOfPlayers: 1, TypeID: 999})
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/games", alice, map[string]any{"name": "X"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/games/999", alice, input)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestEvents(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "alice", "Alice", "Smith")
	bob := api.register(t, "bob", "Bob", "Jones")
	boardGame := createGameType(t, api, "Board game")
	catan := createGame(t, api, alice, "Catan", boardGame)
	chess := createGame(t, api, alice, "Chess", boardGame)

	input := EventInput{Name: "Game night", Date: "2024-03-09", Time: "07:00 PM", Location: "Library", GameID: catan}
	w := api.do(t, http.MethodPost, "/events", alice, input)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body)
	}
	var event EventResponse
	decode(t, w, &event)
	if event.Date != "2024-03-09" || event.Time != "07:00 PM" {
		t.Fatalf("date/time = %q %q, want the submitted values", event.Date, event.Time)
	}
	if event.Organizer.FullName != "Alice Smith" || event.Game.Name != "Catan" || len(event.Attendees) != 0 {
		t.Fatalf("created event = %+v", event)
	}

	chessNight := input
	chessNight.GameID = chess
	if w := api.do(t, http.MethodPost, "/events", alice, chessNight); w.Code != http.StatusCreated {
		t.Fatalf("create second event: status = %d", w.Code)
	}

	path := fmt.Sprintf("/events/%d", event.ID)

	t.Run("filter by game", func(t *testing.T) {
		var all, filtered []EventResponse
		decode(t, api.do(t, http.MethodGet, "/events", "", nil), &all)
		decode(t, api.do(t, http.MethodGet, fmt.Sprintf("/events?game=%d", catan), "", nil), &filtered)
		if len(all) != 2 || len(filtered) != 1 || filtered[0].ID != event.ID {
			t.Fatalf("all = %d events, filtered = %+v", len(all), filtered)
		}
	})

	t.Run("non-numeric filter", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/events?game=catan", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		var resp ErrorResponse
		decode(t, w, &resp)
		if resp.Message != "Invalid game id" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("integer filters never match a game", func(t *testing.T) {
		for _, raw := range []string{"-1", "0", "4294967296", "99999999999999999999"} {
			w := api.do(t, http.MethodGet, "/events?game="+raw, "", nil)
			if w.Code != http.StatusOK || w.Body.String() != "[]" {
				t.Errorf("game=%s: status = %d, body = %s, want 200 []", raw, w.Code, w.Body)
			}
		}
	})

	t.Run("signed filter", func(t *testing.T) {
		var filtered []EventResponse
		w := api.do(t, http.MethodGet, fmt.Sprintf("/events?game=%%2B%d", catan), "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		decode(t, w, &filtered)
		if len(filtered) != 1 || filtered[0].ID != event.ID {
			t.Fatalf("filtered = %+v", filtered)
		}
	})

	t.Run("bad date or time", func(t *testing.T) {
		for _, bad := range []EventInput{
			{Name: "x", Date: "03/09/2024", Time: "07:00 PM", Location: "y", GameID: catan},
			{Name: "x", Date: "2024-03-09", Time: "19:00", Location: "y", GameID: catan},
		} {
			if w := api.do(t, http.MethodPost, "/events", alice, bad); w.Code != http.StatusBadRequest {
				t.Errorf("%s %s: status = %d, want 400", bad.Date, bad.Time, w.Code)
			}
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		bad := input
		bad.GameID = 999
		if w := api.do(t, http.MethodPost, "/events", alice, bad); w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("non-organizer cannot update", func(t *testing.T) {
		changed := input
		changed.Name = "Hijacked"
		if w := api.do(t, http.MethodPut, path, bob, changed); w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})

	t.Run("organizer updates and subscribers hear it", func(t *testing.T) {
		client := make(hub.Client, 4)
		api.hub.Subscribe(event.ID, client)
		defer api.hub.Unsubscribe(event.ID, client)

		changed := input
		changed.Time = "08:30 PM"
		if w := api.do(t, http.MethodPut, path, alice, changed); w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204, body = %s", w.Code, w.Body)
		}

		var got EventResponse
		decode(t, api.do(t, http.MethodGet, path, "", nil), &got)
		if got.Time != "08:30 PM" || got.Organizer.ID != event.Organizer.ID {
			t.Errorf("updated event = %+v", got)
		}

		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(<-client, &msg); err != nil || msg.Type != hub.TypeEventUpdated {
			t.Errorf("message type = %q, err = %v", msg.Type, err)
		}
	})

	t.Run("signup and leave", func(t *testing.T) {
		client := make(hub.Client, 4)
		api.hub.Subscribe(event.ID, client)
		defer api.hub.Unsubscribe(event.ID, client)

		signup := path + "/signup"
		for i := 0; i < 2; i++ {
			w := api.do(t, http.MethodPost, signup, bob, nil)
			if w.Code != http.StatusCreated {
				t.Fatalf("signup #%d: status = %d", i+1, w.Code)
			}
			var got EventResponse
			decode(t, w, &got)
			if len(got.Attendees) != 1 || got.Attendees[0].FullName != "Bob Jones" {
				t.Fatalf("attendees after signup #%d = %+v", i+1, got.Attendees)
			}
		}
		if n := len(client); n != 1 {
			t.Fatalf("subscriber got %d join messages for one new attendee, want 1", n)
		}

		if w := api.do(t, http.MethodDelete, signup, bob, nil); w.Code != http.StatusNoContent {
			t.Fatalf("leave: status = %d, want 204", w.Code)
		}
		if w := api.do(t, http.MethodDelete, signup, bob, nil); w.Code != http.StatusNotFound {
			t.Fatalf("second leave: status = %d, want 404", w.Code)
		}
		if w := api.do(t, http.MethodPost, "/events/999/signup", bob, nil); w.Code != http.StatusNotFound {
			t.Fatalf("signup to unknown event: status = %d, want 404", w.Code)
		}
	})
}

func TestInvalidToken(t *testing.T) {
	api := newTestAPI(t)
	forged, err := jwt.GenerateToken(1, testSecret)
	if err != nil {
		t.Fatal(err)
	}

	// Signed correctly but never persisted.
	if w := api.do(t, http.MethodGet, "/games", forged, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: &store.NotFoundError{Resource: "game", ID: 3}, want: http.StatusNotFound},
		{name: "not attending", err: store.ErrNotAttending, want: http.StatusNotFound},
		{name: "forbidden", err: policy.ErrForbidden, want: http.StatusForbidden},
		{name: "unauthenticated", err: policy.ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "username taken", err: fmt.Errorf("register: %w", store.ErrUsernameTaken), want: http.StatusBadRequest},
		{name: "password too long", err: fmt.Errorf("hash password: %w", bcrypt.ErrPasswordTooLong), want: http.StatusBadRequest},
		{name: "anything else", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func createGameType(t *testing.T, api *testAPI, label string) uint {
	t.Helper()
	return testutil.CreateGameType(t, api.db, label).ID
}

func createGame(t *testing.T, api *testAPI, token, name string, typeID uint) uint {
	t.Helper()
	w := api.do(t, http.MethodPost, "/games", token, GameInput{Name: name, Manufacturer: "Acme", NumberOfPlayers: 2, TypeID: typeID})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game %s: status = %d, body = %s", name, w.Code, w.Body)
	}
	var game GameResponse
	decode(t, w, &game)
	return game.ID
}
