package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IDU Staffing Board API",
        "description": "Staffing assignment board for IDU blocks with DP conflict detection.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Board", "description": "Teacher and location assignments per slot"},
        {"name": "Availability", "description": "Double-booking and DP conflict checks"},
        {"name": "Roster", "description": "Year groups, sidebar chips and locations"},
        {"name": "Sync", "description": "Backing store synchronisation"},
        {"name": "Exports", "description": "Printable day boards"}
    ],
    "paths": {
        "/board": {
            "get": {
                "tags": ["Board"],
                "summary": "Full assignment board",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/board/slot": {
            "get": {
                "tags": ["Board"],
                "summary": "Single slot with teachers, locations and DP conflicts",
                "parameters": [
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "block", "in": "query", "type": "string", "required": true},
                    {"name": "year", "in": "query", "type": "string", "required": true},
                    {"name": "class", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown year group or class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/assignments": {
            "post": {
                "tags": ["Board"],
                "summary": "Drop a teacher onto a slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Teacher already scheduled in this block", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Board"],
                "summary": "Remove a teacher from a slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherAssignmentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/board/locations": {
            "put": {
                "tags": ["Board"],
                "summary": "Set the location a teacher uses in a slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LocationAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Location already booked in this block", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/teacher": {
            "get": {
                "tags": ["Availability"],
                "summary": "Teacher busy state and DP conflict",
                "parameters": [
                    {"name": "teacher", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "block", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/availability/location": {
            "get": {
                "tags": ["Availability"],
                "summary": "Location busy state",
                "parameters": [
                    {"name": "location", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "block", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roster/year-groups": {
            "get": {
                "tags": ["Roster"],
                "summary": "Year groups with classes and teacher rosters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roster/sidebar": {
            "get": {
                "tags": ["Roster"],
                "summary": "Teacher chips for a year group",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "block", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "view", "in": "query", "type": "string", "enum": ["byBlock", "byClass"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/locations": {
            "get": {
                "tags": ["Roster"],
                "summary": "Location catalogue grouped by floor",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/sync/refresh": {
            "post": {
                "tags": ["Sync"],
                "summary": "Reload the board from the backing store",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "No Script URL configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sync/status": {
            "get": {
                "tags": ["Sync"],
                "summary": "Per-slot delivery state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/sync/settings": {
            "get": {
                "tags": ["Sync"],
                "summary": "Active sync settings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Sync"],
                "summary": "Replace the spreadsheet web app URL and reload",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SyncSettingsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/board": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a day board",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        }
    },
    "definitions": {
        "TeacherAssignmentRequest": {
            "type": "object",
            "required": ["day", "block", "year", "class", "teacher"],
            "properties": {
                "day": {"type": "string", "example": "Day 1"},
                "block": {"type": "string", "example": "Block 1"},
                "year": {"type": "string", "example": "Year 7"},
                "class": {"type": "string", "example": "7.1"},
                "teacher": {"type": "string", "example": "Tod Baker"}
            }
        },
        "LocationAssignmentRequest": {
            "type": "object",
            "required": ["day", "block", "year", "class", "teacher", "location"],
            "properties": {
                "day": {"type": "string"},
                "block": {"type": "string"},
                "year": {"type": "string"},
                "class": {"type": "string"},
                "teacher": {"type": "string"},
                "location": {"type": "string", "example": "Theatre"}
            }
        },
        "SyncSettingsRequest": {
            "type": "object",
            "properties": {
                "scriptUrl": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
