// Package docs holds the Swagger description served at /swagger.
// It follows the layout swag init writes; keep it in step with the godoc
// annotations in internal/handler when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new gamer",
                "parameters": [
                    {"description": "Registration Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Missing fields or username already exists", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in a gamer",
                "parameters": [
                    {"description": "Login Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/gametypes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["gametypes"],
                "summary": "Get all game types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.GameTypeResponse"}}}
                }
            }
        },
        "/gametypes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["gametypes"],
                "summary": "Get a game type by ID",
                "parameters": [
                    {"type": "integer", "description": "Game type ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameTypeResponse"}},
                    "404": {"description": "Game type not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get all games",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.GameResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Create a new game",
                "parameters": [
                    {"description": "Game Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game type not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get a single game by ID",
                "parameters": [
                    {"type": "integer", "description": "Game ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["games"],
                "summary": "Update a game (creator only)",
                "parameters": [
                    {"type": "integer", "description": "Game ID", "name": "id", "in": "path", "required": true},
                    {"description": "New Game Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Only the creator can update the game", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game or game type not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get all events",
                "parameters": [
                    {"type": "integer", "description": "Filter by Game ID", "name": "game", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.EventResponse"}}},
                    "400": {"description": "Invalid game id", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Schedule a new event",
                "parameters": [
                    {"description": "Event Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.EventInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.EventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event by ID",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.EventResponse"}},
                    "404": {"description": "Event not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["events"],
                "summary": "Update an event (organizer only)",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "New Event Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.EventInput"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Only the organizer can update the event", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Event or game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/events/{id}/signup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Sign up for an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.EventResponse"}},
                    "404": {"description": "Event not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Leave an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Event not found or caller is not attending", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/events/{id}/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["events"],
                "summary": "Follow an event",
                "parameters": [
                    {"type": "integer", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}},
                    "404": {"description": "Event not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "An error message"}}
        },
        "handler.RegisterInput": {
            "type": "object",
            "required": ["email", "first_name", "last_name", "password", "username"],
            "properties": {
                "email": {"type": "string", "example": "ada@example.com"},
                "first_name": {"type": "string", "example": "Ada"},
                "last_name": {"type": "string", "example": "Lovelace"},
                "password": {"type": "string", "example": "password123"},
                "username": {"type": "string", "maxLength": 150, "example": "ada"}
            }
        },
        "handler.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "password123"},
                "username": {"type": "string", "example": "ada"}
            }
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "valid": {"type": "boolean", "example": true}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string", "example": "Ada Lovelace"},
                "id": {"type": "integer", "example": 1}
            }
        },
        "handler.GameTypeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "label": {"type": "string", "example": "Board game"}
            }
        },
        "handler.GameInput": {
            "type": "object",
            "required": ["manufacturer", "name", "number_of_players", "type"],
            "properties": {
                "manufacturer": {"type": "string", "example": "Nihon Ki-in"},
                "name": {"type": "string", "example": "Go"},
                "number_of_players": {"type": "integer", "minimum": 1, "example": 2},
                "type": {"type": "integer", "example": 1}
            }
        },
        "handler.GameResponse": {
            "type": "object",
            "properties": {
                "creator": {"$ref": "#/definitions/handler.UserResponse"},
                "id": {"type": "integer"},
                "manufacturer": {"type": "string"},
                "name": {"type": "string"},
                "number_of_players": {"type": "integer"},
                "type": {"$ref": "#/definitions/handler.GameTypeResponse"}
            }
        },
        "handler.EventInput": {
            "type": "object",
            "required": ["date", "game", "location", "name", "time"],
            "properties": {
                "date": {"type": "string", "example": "2024-03-09"},
                "game": {"type": "integer", "example": 1},
                "location": {"type": "string", "example": "The Game Shelf"},
                "name": {"type": "string", "example": "Friday board games"},
                "time": {"type": "string", "example": "07:00 PM"}
            }
        },
        "handler.EventGameResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "handler.EventResponse": {
            "type": "object",
            "properties": {
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/handler.UserResponse"}},
                "date": {"type": "string", "example": "2024-03-09"},
                "game": {"$ref": "#/definitions/handler.EventGameResponse"},
                "id": {"type": "integer"},
                "location": {"type": "string"},
                "name": {"type": "string"},
                "organizer": {"$ref": "#/definitions/handler.UserResponse"},
                "time": {"type": "string", "example": "07:00 PM"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Levelup API",
	Description:      "This is the API for the Levelup gamer events service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
