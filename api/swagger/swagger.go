package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "NeuroLearn AMEP API",
        "description": "Adaptive learning platform backend: accounts, password reset, course catalog, adaptive quiz, dashboards, and exports",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Accounts, sessions, and password reset"},
        {"name": "Courses", "description": "Course and topic catalog"},
        {"name": "Contents", "description": "Learning materials and PDF uploads"},
        {"name": "Quiz", "description": "Question bank and adaptive quiz flow"},
        {"name": "Dashboard", "description": "Student progress summary"},
        {"name": "Export", "description": "Course quiz-result exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created successfully", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "400": {"description": "Validation error or duplicate account", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/forgot-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Request password reset",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Generic acknowledgement regardless of account existence", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Email is required", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/validate-reset-token": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Validate a reset token without consuming it",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token is valid", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/reset-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Consume a reset token and set a new password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password reset successfully", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserInfo"}},
                    "401": {"description": "Missing or invalid bearer token", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course (teacher)",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Teacher role required"}}
            }
        },
        "/api/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Course not found"}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete a course and everything under it (teacher)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "403": {"description": "Not the owner"}}
            }
        },
        "/api/courses/{id}/results/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export course quiz results as CSV or PDF (teacher)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": false, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File download"}, "403": {"description": "Not the owner"}}
            }
        },
        "/api/topics": {
            "get": {
                "tags": ["Courses"],
                "summary": "List topics",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "course_id", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Add a topic to a course (teacher)",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/contents": {
            "get": {
                "tags": ["Contents"],
                "summary": "List learning materials",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "topic_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Contents"],
                "summary": "Create content with an optional PDF upload (teacher)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad upload"}}
            }
        },
        "/api/contents/{id}/url": {
            "get": {
                "tags": ["Contents"],
                "summary": "Issue a short-lived signed download link",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Content or file not found"}}
            }
        },
        "/api/files/contents": {
            "get": {
                "tags": ["Contents"],
                "summary": "Serve an uploaded PDF behind a signed token",
                "parameters": [{"name": "token", "in": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "PDF stream"}, "403": {"description": "Invalid or expired link"}}
            }
        },
        "/api/questions": {
            "get": {
                "tags": ["Quiz"],
                "summary": "List bank questions with answers (teacher)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "difficulty", "in": "query", "type": "string", "enum": ["easy", "medium", "hard"]}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Quiz"],
                "summary": "Add a question to the bank (teacher)",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/quiz/next": {
            "get": {
                "tags": ["Quiz"],
                "summary": "Next adaptive question for the calling student",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "course_id", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "Question without the correct answer"}, "404": {"description": "No questions available"}}
            }
        },
        "/api/quiz/attempts": {
            "post": {
                "tags": ["Quiz"],
                "summary": "Submit an answer for server-side grading (student)",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Graded attempt with the correct answer"}}
            }
        },
        "/api/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Student progress summary (cached)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "SignupRequest": {
            "type": "object",
            "required": ["email", "password", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["student", "teacher"]}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ForgotPasswordRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"}
            }
        },
        "TokenRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {
                "token": {"type": "string"}
            }
        },
        "ResetPasswordRequest": {
            "type": "object",
            "required": ["token", "newPassword"],
            "properties": {
                "token": {"type": "string"},
                "newPassword": {"type": "string", "minLength": 6}
            }
        },
        "UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/UserInfo"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
