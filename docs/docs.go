// Package docs is regenerated by swag init; keep the annotations in handlers current.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {"post": {"tags": ["auth"], "summary": "Register a mentor or mentee", "consumes": ["multipart/form-data"], "produces": ["application/json"],
            "parameters": [
                {"type": "string", "name": "type", "in": "formData", "required": true},
                {"type": "string", "name": "name", "in": "formData", "required": true},
                {"type": "string", "name": "email", "in": "formData", "required": true},
                {"type": "string", "name": "mobile", "in": "formData", "required": true},
                {"type": "string", "name": "password", "in": "formData", "required": true},
                {"type": "string", "name": "skills", "in": "formData", "required": true},
                {"type": "string", "name": "experience", "in": "formData"},
                {"type": "string", "name": "availability", "in": "formData"},
                {"type": "file", "name": "photo", "in": "formData", "required": true}
            ],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.AuthResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}}, "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/login": {"post": {"tags": ["auth"], "summary": "Log in with email or mobile", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.AuthResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/me": {"get": {"security": [{"Bearer": []}], "tags": ["auth"], "summary": "Get current user", "produces": ["application/json"],
            "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/allmentors": {"get": {"tags": ["directory"], "summary": "List all mentors", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accounts.Mentor"}}}}}},
        "/allmentees": {"get": {"tags": ["directory"], "summary": "List all mentees", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accounts.Mentee"}}}}}},
        "/mentor": {"get": {"tags": ["directory"], "summary": "Search mentors", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "id", "in": "query"}, {"type": "string", "name": "skill", "in": "query"}, {"type": "string", "name": "name", "in": "query"}, {"type": "string", "name": "email", "in": "query"}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accounts.Mentor"}}}}}},
        "/mentee": {"get": {"tags": ["directory"], "summary": "Search mentees", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "id", "in": "query"}, {"type": "string", "name": "skill", "in": "query"}, {"type": "string", "name": "name", "in": "query"}, {"type": "string", "name": "email", "in": "query"}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/accounts.Mentee"}}}}}},
        "/user/{id}": {
            "put": {"tags": ["directory"], "summary": "Update a profile", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperr.E"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}}},
            "delete": {"tags": ["directory"], "summary": "Delete a profile", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/syncdata": {"post": {"tags": ["directory"], "summary": "Sync profile by email", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.SyncRequest"}}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/requestMentorship": {"post": {"tags": ["mentorship"], "summary": "Request a mentor", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notifications.RequestMentorshipRequest"}}],
            "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/acceptMentorshipRequest": {"post": {"tags": ["mentorship"], "summary": "Accept a mentorship request", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notifications.ActionRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/notifications.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/declineMentorshipRequest": {"post": {"tags": ["mentorship"], "summary": "Decline a mentorship request", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notifications.ActionRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/notifications.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperr.E"}}}}},
        "/healthz": {"get": {"tags": ["health"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}}
    },
    "definitions": {
        "httperr.E": {"type": "object", "properties": {"error": {"type": "string", "example": "Bad Request"}}},
        "auth.LoginRequest": {"type": "object", "properties": {"identifier": {"type": "string", "example": "a@x.com"}, "password": {"type": "string"}}},
        "auth.AuthResponse": {"type": "object", "properties": {"user": {"type": "object"}, "auth": {"type": "string"}}},
        "accounts.Mentor": {"type": "object", "properties": {"_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "mobile": {"type": "string"}, "skills": {"type": "string"}, "photo": {"type": "string"}, "role": {"type": "string", "example": "mentor"}, "experience": {"type": "string"}, "availability": {"type": "string"}, "mentees": {"type": "array", "items": {"type": "string"}}}},
        "accounts.Mentee": {"type": "object", "properties": {"_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "mobile": {"type": "string"}, "skills": {"type": "string"}, "photo": {"type": "string"}, "role": {"type": "string", "example": "mentee"}, "mentors": {"type": "array", "items": {"type": "string"}}}},
        "accounts.SyncRequest": {"type": "object", "properties": {"email": {"type": "string", "example": "a@x.com"}}},
        "accounts.MessageResponse": {"type": "object", "properties": {"message": {"type": "string", "example": "User deleted successfully"}}},
        "notifications.RequestMentorshipRequest": {"type": "object", "properties": {"menteeId": {"type": "string"}, "mentorId": {"type": "string"}, "message": {"type": "string"}}},
        "notifications.ActionRequest": {"type": "object", "properties": {"userId": {"type": "string"}, "notificationId": {"type": "string"}, "isMentor": {"type": "boolean"}}},
        "notifications.MessageResponse": {"type": "object", "properties": {"message": {"type": "string", "example": "Mentorship request accepted"}}}
    },
    "securityDefinitions": {
        "Bearer": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "MentorMatch API",
	Description:      "Mentor and mentee registration, directory search and mentorship requests with live notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
