// Package docs holds the OpenAPI description served at /swagger. Regenerate with
// swag init -g cmd/api/main.go -o cmd/api/docs.
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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List quiz categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryResponse"}}}
                }
            }
        },
        "/quizzes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List published quizzes",
                "parameters": [
                    {"type": "string", "description": "Category ID or all", "name": "category_id", "in": "query"},
                    {"type": "string", "description": "easy, medium, hard or all", "name": "difficulty", "in": "query"},
                    {"type": "string", "description": "Case-insensitive search over title and description", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}}
                }
            }
        },
        "/quizzes/slug/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a quiz by slug",
                "parameters": [{"type": "string", "description": "Quiz slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/id/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a quiz by id",
                "parameters": [{"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizDetailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Create a quiz session",
                "parameters": [{"description": "Quiz to play", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateSessionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreateSessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get the current state of a session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["sessions"],
                "summary": "Discard a session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/sessions/{id}/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Question count", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StartSessionRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}}
            }
        },
        "/sessions/{id}/answers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Answer the current question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Option id or free text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitAnswerRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SubmitAnswerResponse"}}}
            }
        },
        "/sessions/{id}/advance": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Move to the next question",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}}
            }
        },
        "/sessions/{id}/restart": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Return a completed session to setup",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}}
            }
        },
        "/sessions/{id}/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get the score of a session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ResultResponse"}}}
            }
        },
        "/sessions/{id}/review": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Review a completed session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReviewResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.CategoryResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "color": {"type": "string"}, "icon": {"type": "string"}}},
        "dto.QuestionCountOption": {"type": "object", "properties": {"count": {"type": "integer"}, "time_limit_seconds": {"type": "integer"}, "time_limit": {"type": "string"}}},
        "dto.QuizSummaryResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "slug": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"},
            "category": {"$ref": "#/definitions/dto.CategoryResponse"}, "difficulty": {"type": "string"}, "thumbnail_image": {"type": "string"},
            "question_count": {"type": "integer"}, "time_limit_seconds": {"type": "integer"}, "time_limit": {"type": "string"},
            "pass_score": {"type": "integer"}, "attempt_count": {"type": "integer"}, "created_at": {"type": "string"}}},
        "dto.QuizListResponse": {"type": "object", "properties": {"quizzes": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizSummaryResponse"}}, "total": {"type": "integer"}}},
        "dto.QuizDetailResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "slug": {"type": "string"}, "title": {"type": "string"},
            "show_correct_answer": {"type": "boolean"}, "allow_review": {"type": "boolean"},
            "count_options": {"type": "array", "items": {"$ref": "#/definitions/dto.QuestionCountOption"}}}},
        "dto.CreateSessionRequest": {"type": "object", "properties": {"quiz_slug": {"type": "string"}, "quiz_id": {"type": "string"}}},
        "dto.CreateSessionResponse": {"type": "object", "properties": {"session_id": {"type": "string"}, "token": {"type": "string"}, "expires_at": {"type": "string"}, "session": {"$ref": "#/definitions/dto.SessionResponse"}}},
        "dto.StartSessionRequest": {"type": "object", "properties": {"count": {"type": "integer"}}},
        "dto.SubmitAnswerRequest": {"type": "object", "properties": {"answer": {"type": "string"}}},
        "dto.OptionResponse": {"type": "object", "properties": {"id": {"type": "string"}, "text": {"type": "string"}}},
        "dto.QuestionResponse": {"type": "object", "properties": {"id": {"type": "string"}, "type": {"type": "string"}, "text": {"type": "string"}, "image": {"type": "string"}, "points": {"type": "integer"}, "options": {"type": "array", "items": {"$ref": "#/definitions/dto.OptionResponse"}}}},
        "dto.AnswerRecordResponse": {"type": "object", "properties": {"answer": {"type": "string"}, "is_correct": {"type": "boolean"}, "points_earned": {"type": "integer"}, "answered_at": {"type": "string"}}},
        "dto.SummaryResponse": {"type": "object", "properties": {
            "earned_points": {"type": "integer"}, "total_points": {"type": "integer"}, "percentage": {"type": "integer"}, "passed": {"type": "boolean"},
            "pass_score": {"type": "integer"}, "correct_count": {"type": "integer"}, "wrong_count": {"type": "integer"},
            "answered_count": {"type": "integer"}, "question_count": {"type": "integer"}}},
        "dto.SessionResponse": {"type": "object", "properties": {
            "session_id": {"type": "string"}, "quiz_id": {"type": "string"}, "quiz_title": {"type": "string"}, "state": {"type": "string"},
            "reason": {"type": "string"}, "current_index": {"type": "integer"}, "question_count": {"type": "integer"},
            "question": {"$ref": "#/definitions/dto.QuestionResponse"}, "answer": {"$ref": "#/definitions/dto.AnswerRecordResponse"},
            "timed": {"type": "boolean"}, "duration_seconds": {"type": "integer"}, "remaining_seconds": {"type": "integer"},
            "remaining": {"type": "string"}, "progress": {"$ref": "#/definitions/dto.SummaryResponse"}}},
        "dto.SubmitAnswerResponse": {"type": "object", "properties": {
            "accepted": {"type": "boolean"}, "question_id": {"type": "string"}, "index": {"type": "integer"}, "is_correct": {"type": "boolean"},
            "points_earned": {"type": "integer"}, "explanation": {"type": "string"}, "correct_answer": {"type": "string"}, "is_last": {"type": "boolean"}}},
        "dto.ResultResponse": {"type": "object", "properties": {
            "session_id": {"type": "string"}, "quiz_id": {"type": "string"}, "state": {"type": "string"}, "reason": {"type": "string"},
            "summary": {"$ref": "#/definitions/dto.SummaryResponse"}, "time_spent_seconds": {"type": "integer"}, "time_spent": {"type": "string"}}},
        "dto.ReviewItemResponse": {"type": "object", "properties": {
            "index": {"type": "integer"}, "question": {"$ref": "#/definitions/dto.QuestionResponse"}, "answer": {"$ref": "#/definitions/dto.AnswerRecordResponse"},
            "correct_answer": {"type": "string"}, "explanation": {"type": "string"}}},
        "dto.ReviewResponse": {"type": "object", "properties": {"session_id": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/dto.ReviewItemResponse"}}}},
        "middleware.ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "middleware.ValidationErrorResponse": {"type": "object", "properties": {
            "code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"},
            "errors": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type 'Bearer SESSION_TOKEN' to authorize.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Quiz Master API",
	Description:      "Timed, randomized quiz sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
