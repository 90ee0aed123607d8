package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClubSync API",
        "description": "Offline-first session dashboard for volunteer children's clubs",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sync", "description": "Pull and push pipelines"},
        {"name": "Class", "description": "Locally cached class snapshot"},
        {"name": "Sessions", "description": "Session close and outcome capture"},
        {"name": "Planner", "description": "Ahead-of-time session planning"},
        {"name": "Exports", "description": "Attendance sheet downloads"},
        {"name": "Auth", "description": "Device-side tenant lifecycle"},
        {"name": "Events", "description": "Reactive change feed"}
    ],
    "paths": {
        "/sync/prefetch": {
            "post": {
                "tags": ["Sync"],
                "summary": "Pull the class snapshot from the remote backend",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/PrefetchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class unknown on remote"},
                    "412": {"description": "No class identity available"},
                    "502": {"description": "Remote backend failure"}
                }
            }
        },
        "/sync/push": {
            "post": {
                "tags": ["Sync"],
                "summary": "Upload pending progress records",
                "responses": {
                    "200": {"description": "Uploaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "202": {"description": "Remote unreachable, records stay pending"}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["Sync"],
                "summary": "Connectivity and backlog status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class": {
            "get": {
                "tags": ["Class"],
                "summary": "Cached class profile",
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not cached, run prefetch first"}
                }
            }
        },
        "/roster": {
            "get": {
                "tags": ["Class"],
                "summary": "Cached active roster",
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plan": {
            "get": {
                "tags": ["Class"],
                "summary": "Cached upcoming session plan",
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No plan cached"}
                }
            }
        },
        "/sessions/close": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Close a session and record per-child outcomes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CloseSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Outcome already recorded for a child on this date"}
                }
            }
        },
        "/plans": {
            "post": {
                "tags": ["Planner"],
                "summary": "Author a future session plan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePlanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Remote backend failure"}
                }
            }
        },
        "/planner/month": {
            "get": {
                "tags": ["Planner"],
                "summary": "Linear month grid for planner rendering",
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/progress.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Attendance sheet as CSV",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV download"}
                }
            }
        },
        "/exports/progress.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Attendance sheet as PDF",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF download"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out and wipe the tenant from the local store",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/LogoutRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Pending records would be lost"}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "Table-change feed for reactive dashboard reads",
                "responses": {
                    "200": {"description": "text/event-stream"}
                }
            }
        }
    },
    "definitions": {
        "PrefetchRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"}
            }
        },
        "CloseSessionRequest": {
            "type": "object",
            "properties": {
                "activity_id": {"type": "string"},
                "date": {"type": "string"},
                "outcomes": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ChildOutcome"}
                }
            },
            "required": ["outcomes"]
        },
        "ChildOutcome": {
            "type": "object",
            "properties": {
                "child_id": {"type": "string"},
                "present": {"type": "boolean"},
                "brought_materials": {"type": "boolean"},
                "evidence_complete": {"type": "boolean"}
            },
            "required": ["child_id"]
        },
        "CreatePlanRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"},
                "session_date": {"type": "string"},
                "requirement_id": {"type": "string"},
                "lead": {"type": "string"},
                "materials": {"type": "array", "items": {"type": "string"}},
                "teaching_instruction": {"type": "string"},
                "teaching_note": {"type": "string"},
                "practice_instruction": {"type": "string"},
                "practice_note": {"type": "string"}
            },
            "required": ["class_id", "session_date", "teaching_instruction", "practice_instruction"]
        },
        "LogoutRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"},
                "force": {"type": "boolean"}
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
