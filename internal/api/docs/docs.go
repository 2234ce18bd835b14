// Package docs registers the gateway's OpenAPI document with swag so that
// http-swagger can serve it at /swagger/doc.json.
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
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Match against name, description or category", "name": "search", "in": "query"},
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"},
                    {"type": "string", "description": "name|price|stock|date with -asc or -desc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}},
                    "400": {"description": "Unknown sort key", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Connectivity not resolved", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "Product details", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Invalid JSON or validation error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Connectivity not resolved", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Get a product",
                "parameters": [{"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Products"],
                "summary": "Delete a product",
                "parameters": [{"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/products/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["Interchange"],
                "summary": "Export the catalog",
                "parameters": [{"type": "string", "description": "csv (default) or xlsx", "name": "format", "in": "query"}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/products/import": {
            "post": {
                "consumes": ["text/csv"],
                "produces": ["application/json"],
                "tags": ["Interchange"],
                "summary": "Import products from CSV or XLSX",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportResponse"}},
                    "400": {"description": "Empty or unreadable file", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Connectivity not resolved", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Distinct categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Inventory dashboard figures",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DashboardResponse"}}}
            }
        },
        "/mode": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Connectivity mode of this session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ModeResponse"}}}
            }
        }
    },
    "definitions": {
        "models.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "productName": {"type": "string"},
                "productDescription": {"type": "string"},
                "productPrice": {"type": "number"},
                "productCategory": {"type": "string"},
                "productStock": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.CreateProductRequest": {
            "type": "object",
            "required": ["productName", "productPrice", "productCategory"],
            "properties": {
                "productName": {"type": "string", "maxLength": 100, "minLength": 1},
                "productDescription": {"type": "string", "maxLength": 300},
                "productPrice": {"type": "number"},
                "productCategory": {"type": "string"},
                "productStock": {"type": "integer", "minimum": 0}
            }
        },
        "models.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "productName": {"type": "string", "maxLength": 100, "minLength": 1},
                "productDescription": {"type": "string", "maxLength": 300},
                "productPrice": {"type": "number"},
                "productCategory": {"type": "string"},
                "productStock": {"type": "integer", "minimum": 0}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "interchange.RowError": {
            "type": "object",
            "properties": {
                "row": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "handlers.ImportResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "imported": {"type": "integer"},
                "failed": {"type": "array", "items": {"$ref": "#/definitions/interchange.RowError"}},
                "message": {"type": "string"}
            }
        },
        "inventory.CategoryCount": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "handlers.DashboardResponse": {
            "type": "object",
            "properties": {
                "totalProducts": {"type": "integer"},
                "totalValue": {"type": "number"},
                "lowStockCount": {"type": "integer"},
                "topCategories": {"type": "array", "items": {"$ref": "#/definitions/inventory.CategoryCount"}},
                "lowStockProducts": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "categories": {"type": "array", "items": {"type": "string"}},
                "mode": {"type": "string", "enum": ["unknown", "online", "offline"]}
            }
        },
        "handlers.ModeResponse": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["unknown", "online", "offline"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Inventory Client API",
	Description:      "Product gateway over the upstream products API with an offline fallback store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
