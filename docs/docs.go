// Package docs holds the OpenAPI description served by gin-swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag/v2"

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
        "/branches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "List branches in creation order",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Create a branch",
                "parameters": [
                    {"description": "Branch", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateBranchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/branches/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Get a branch by id",
                "parameters": [{"type": "string", "description": "Branch ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Partially update a branch",
                "parameters": [
                    {"type": "string", "description": "Branch ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.UpdateBranchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Delete a branch; referencing SKUs are kept",
                "parameters": [{"type": "string", "description": "Branch ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/skus": {
            "get": {
                "produces": ["application/json"],
                "tags": ["skus"],
                "summary": "Search and filter the catalog",
                "parameters": [
                    {"type": "string", "description": "Substring of code or item name", "name": "q", "in": "query"},
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Exact brand", "name": "brand_name", "in": "query"},
                    {"type": "string", "description": "Exact branch id", "name": "branch_id", "in": "query"},
                    {"type": "boolean", "description": "Active state", "name": "is_active", "in": "query"},
                    {"type": "integer", "description": "Page, 1-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["skus"],
                "summary": "Register a SKU, generating its code when asked",
                "parameters": [
                    {"description": "SKU", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateSKURequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/skus/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["skus"],
                "summary": "Get a SKU by id",
                "parameters": [{"type": "string", "description": "SKU ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["skus"],
                "summary": "Partially update a SKU's descriptive fields",
                "parameters": [
                    {"type": "string", "description": "SKU ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.UpdateSKURequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/skus/{id}/deactivate": {
            "post": {
                "produces": ["application/json"],
                "tags": ["skus"],
                "summary": "Deactivate a SKU (idempotent)",
                "parameters": [{"type": "string", "description": "SKU ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/encodings/barcode": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["encodings"],
                "summary": "Build a CODE128 descriptor from a SKU or a literal payload",
                "parameters": [{"description": "Payload or SKU id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.EncodeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/encodings/qr": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["encodings"],
                "summary": "Build a QR descriptor from a SKU or a literal payload",
                "parameters": [{"description": "Payload or SKU id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.EncodeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/decodings/barcode": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["encodings"],
                "summary": "Simulate scanning a barcode",
                "parameters": [{"description": "Scanned data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DecodeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/decodings/qr": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["encodings"],
                "summary": "Simulate scanning a QR code",
                "parameters": [{"description": "Scanned data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DecodeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Branch and SKU counts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}}
            }
        },
        "/taxonomy": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Reference categories and brands",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}}
            }
        },
        "/references/dangling": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "SKUs whose branch no longer exists",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}}
            }
        }
    },
    "definitions": {
        "catalog.ContactDetailsRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "maxLength": 500},
                "email": {"type": "string", "maxLength": 200},
                "phone": {"type": "string", "maxLength": 50}
            }
        },
        "catalog.CreateBranchRequest": {
            "type": "object",
            "required": ["location", "name"],
            "properties": {
                "contactDetails": {"$ref": "#/definitions/catalog.ContactDetailsRequest"},
                "location": {"type": "string", "maxLength": 200},
                "name": {"type": "string", "maxLength": 200}
            }
        },
        "catalog.UpdateContactDetailsRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "maxLength": 500},
                "email": {"type": "string", "maxLength": 200},
                "phone": {"type": "string", "maxLength": 50}
            }
        },
        "catalog.UpdateBranchRequest": {
            "type": "object",
            "properties": {
                "contactDetails": {"$ref": "#/definitions/catalog.UpdateContactDetailsRequest"},
                "location": {"type": "string", "maxLength": 200},
                "name": {"type": "string", "maxLength": 200}
            }
        },
        "catalog.CreateSKURequest": {
            "type": "object",
            "required": ["branchId", "brandName", "category", "itemName", "subcategory"],
            "properties": {
                "autoGenerateCode": {"type": "boolean"},
                "branchId": {"type": "string"},
                "brandName": {"type": "string", "maxLength": 100},
                "category": {"type": "string", "maxLength": 100},
                "code": {"type": "string", "maxLength": 50},
                "itemName": {"type": "string", "maxLength": 200},
                "subcategory": {"type": "string", "maxLength": 100}
            }
        },
        "catalog.UpdateSKURequest": {
            "type": "object",
            "properties": {
                "branchId": {"type": "string"},
                "brandName": {"type": "string", "maxLength": 100},
                "category": {"type": "string", "maxLength": 100},
                "itemName": {"type": "string", "maxLength": 200},
                "subcategory": {"type": "string", "maxLength": 100}
            }
        },
        "handler.EncodeRequest": {
            "type": "object",
            "properties": {
                "payload": {"type": "string"},
                "skuId": {"type": "string"}
            }
        },
        "handler.DecodeRequest": {
            "type": "object",
            "properties": {
                "data": {"type": "string"}
            }
        },
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "dto.Meta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "dto.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"},
                "meta": {"$ref": "#/definitions/dto.Meta"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SKU Catalog API",
	Description:      "In-memory inventory SKU catalog: branches, SKUs, code generation and barcode descriptors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
