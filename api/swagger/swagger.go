package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Study Scheduler API",
        "description": "Constraint-based study-hour allocation for academic activities",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scheduler", "description": "Activity hour allocation and proposal export"}
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
        "/scheduler/logic/activity": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Assign an activity's estimated hours to calendar days",
                "description": "Searches the requested end date plus a bounded neighbourhood of alternate end dates for up to five feasible hour assignments under the chosen strategy.",
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ScheduleActivityRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Assigned with the requested end date"},
                    "201": {"description": "Assigned with a shifted end date"},
                    "400": {"description": "Validation error"},
                    "401": {"description": "No feasible assignment"},
                    "505": {"description": "Unknown strategy"}
                }
            }
        },
        "/scheduler/proposals/{id}": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Fetch a retained scheduling proposal",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Proposal not found or expired"}
                }
            }
        },
        "/scheduler/proposals/{id}/export": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Export one solution of a retained proposal",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"in": "query", "name": "solution", "type": "integer", "default": 0}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "404": {"description": "Proposal not found or expired"}
                }
            }
        }
    },
    "definitions": {
        "Activity": {
            "type": "object",
            "properties": {
                "estimatedHours": {"type": "integer", "minimum": 1},
                "strategy": {"type": "string", "enum": ["Agresiva", "Calmada", "Completa"]},
                "startOfActivity": {"type": "string", "format": "date"},
                "endOfActivity": {"type": "string", "format": "date"}
            },
            "required": ["estimatedHours", "strategy", "endOfActivity"]
        },
        "CalendarDay": {
            "type": "object",
            "properties": {
                "calendarDate": {"type": "string", "format": "date"},
                "dayType": {"type": "string", "enum": ["Normal", "Festivo"]},
                "totalHoursBusy": {"type": "integer", "minimum": 0}
            },
            "required": ["calendarDate", "dayType"]
        },
        "ScheduleActivityRequest": {
            "type": "object",
            "properties": {
                "activity": {"$ref": "#/definitions/Activity"},
                "calendar": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CalendarDay"}
                }
            },
            "required": ["activity", "calendar"]
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
