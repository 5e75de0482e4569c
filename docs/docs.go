// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}}
        },
        "/documents": {
            "get": {
                "tags": ["documents"],
                "summary": "List documents",
                "parameters": [
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["documents"],
                "summary": "Upload a document",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Document"}}}
            }
        },
        "/documents/{id}": {
            "get": {
                "tags": ["documents"],
                "summary": "Get a document",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["documents"],
                "summary": "Delete a document",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/documents/{id}/preview": {
            "get": {
                "tags": ["documents"],
                "summary": "Preview a document",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/viewer.Directive"}}}
            }
        },
        "/viewer": {
            "get": {
                "tags": ["documents"],
                "summary": "Render a document locator",
                "parameters": [
                    {"type": "string", "name": "src", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/viewer.Directive"}}}
            }
        },
        "/messages/{peerID}": {
            "get": {
                "tags": ["messages"],
                "summary": "Conversation with a user",
                "parameters": [{"type": "string", "name": "peerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["messages"],
                "summary": "Send a message",
                "parameters": [
                    {"type": "string", "name": "peerID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.sendMessageRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Message"}}}
            }
        },
        "/chat": {
            "get": {"tags": ["messages"], "summary": "Advocate chat inbox", "responses": {"200": {"description": "OK"}}}
        },
        "/profile/posts": {
            "get": {"tags": ["posts"], "summary": "My profile posts", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["posts"],
                "summary": "Create a profile post",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createPostRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Post"}}}
            }
        },
        "/users/{id}/posts": {
            "get": {
                "tags": ["posts"],
                "summary": "A user's profile posts",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/geo/locate": {
            "get": {
                "tags": ["geo"],
                "summary": "Locate the caller",
                "responses": {
                    "200": {"description": "[longitude, latitude]", "schema": {"type": "array", "items": {"type": "number"}}},
                    "501": {"description": "Not Implemented"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        }
    },
    "definitions": {
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.sendMessageRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {"body": {"type": "string", "maxLength": 4000}}
        },
        "handler.createPostRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {"content": {"type": "string", "maxLength": 10000}}
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "filename": {"type": "string"},
                "storage_path": {"type": "string"},
                "size": {"type": "integer"},
                "content_type": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "user_type": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sender_id": {"type": "string"},
                "recipient_id": {"type": "string"},
                "body": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "author_id": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "viewer.Directive": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["noop", "embed_document", "embed_image", "link_out"]},
                "locator": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Advocate Hub API",
	Description:      "Advocate and client portal: documents, messaging, profile posts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
