// Package docs holds the OpenAPI description served under /swagger.
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
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/navigation/{role}": {
            "get": {
                "tags": ["navigation"],
                "summary": "Sidebar navigation for a role",
                "parameters": [
                    {"type": "string", "description": "buyer, seller or admin", "name": "role", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sidebarResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/verifications": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["verification"],
                "summary": "Open a verification checklist",
                "parameters": [
                    {"description": "seller", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.startRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.Session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/verifications/{id}": {
            "get": {
                "tags": ["verification"],
                "summary": "Current checklist state",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["verification"],
                "summary": "Close a checklist session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/verifications/{id}/documents/{documentId}": {
            "post": {
                "description": "Only the file name is used; the content is not read or stored.",
                "consumes": ["multipart/form-data"],
                "tags": ["verification"],
                "summary": "Record the chosen file for a document",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "document id", "name": "documentId", "in": "path", "required": true},
                    {"type": "file", "description": "document file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/verification.Upload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/verifications/{id}/documents/{documentId}/select": {
            "post": {
                "tags": ["verification"],
                "summary": "Open the file picker for a document",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "document id", "name": "documentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Picker"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/verifications/{id}/notifications": {
            "get": {
                "tags": ["verification"],
                "summary": "Drain pending notifications",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Notification"}}}
                }
            }
        },
        "/verifications/{id}/submit": {
            "post": {
                "tags": ["verification"],
                "summary": "Submit the checklist for review",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/service.Session"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "missing_documents": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "handler.sidebarResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/navigation.NavItem"}},
                "role": {"type": "string"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/navigation.MenuSection"}}
            }
        },
        "handler.startRequest": {
            "type": "object",
            "properties": {
                "seller_id": {"type": "string"}
            }
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "file_name": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "required": {"type": "boolean"},
                "trust_score_value": {"type": "number"},
                "uploaded": {"type": "boolean"}
            }
        },
        "model.Notification": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "duration": {"type": "integer"},
                "title": {"type": "string"},
                "variant": {"type": "string"}
            }
        },
        "navigation.MenuSection": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/navigation.NavItem"}},
                "title": {"type": "string"}
            }
        },
        "navigation.NavItem": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "highlight": {"type": "boolean"},
                "icon": {"type": "string"},
                "label": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "service.Picker": {
            "type": "object",
            "properties": {
                "accept": {"type": "array", "items": {"type": "string"}},
                "document_id": {"type": "string"},
                "upload_path": {"type": "string"}
            }
        },
        "service.Session": {
            "type": "object",
            "properties": {
                "can_submit": {"type": "boolean"},
                "closed": {"type": "boolean"},
                "created_at": {"type": "string"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}},
                "id": {"type": "string"},
                "score_label": {"type": "string"},
                "score_popup_visible": {"type": "boolean"},
                "seller_id": {"type": "string"},
                "trust_score_gained": {"type": "number"},
                "verifying": {"type": "boolean"}
            }
        },
        "verification.Upload": {
            "type": "object",
            "properties": {
                "delta": {"type": "number"},
                "document": {"$ref": "#/definitions/model.Document"},
                "first_upload": {"type": "boolean"},
                "trust_score_gained": {"type": "number"}
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
	Title:            "Seller Verification API",
	Description:      "Role-based sidebar navigation and the seller document-verification checklist.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
