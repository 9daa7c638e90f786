package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FS Courses API",
        "description": "Lists the courses currently taught at the caller's institution, as registered in FS.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Courses", "description": "Currently taught courses"},
        {"name": "Health", "description": "Liveness and readiness probes"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A backing dependency is unavailable"}
                }
            }
        },
        "/api/v1/courses/current": {
            "get": {
                "tags": ["Courses"],
                "summary": "Courses currently taught at the caller's institution",
                "description": "After June the window is the autumn and winter terms of this year plus the spring and summer terms of next year; otherwise every term of this year. Callers whose institution has no FS integration get an empty list.",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {"$ref": "#/definitions/CourseList"},
                                "meta": {"$ref": "#/definitions/CourseListMeta"}
                            }
                        }
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "FS unavailable (strict failure policy only)", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Course": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ABC123"},
                "term": {"type": "string", "enum": ["VÅR", "SOM", "HØST", "VIT"]},
                "year": {"type": "integer", "example": 2023}
            }
        },
        "CourseList": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "CourseList"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}}
            }
        },
        "CourseListMeta": {
            "type": "object",
            "properties": {
                "cache_hit": {"type": "boolean"},
                "count": {"type": "integer"},
                "processing_time_ms": {"type": "integer"}
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
