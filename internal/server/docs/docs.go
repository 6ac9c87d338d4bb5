// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
        "/uploads/sales": {"post": {"tags": ["uploads"], "summary": "Upload Sales Ledger", "consumes": ["multipart/form-data"], "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "413": {"description": "Payload Too Large", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/uploads/proposals": {"post": {"tags": ["uploads"], "summary": "Upload Proposal Ledger", "consumes": ["multipart/form-data"], "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}, "413": {"description": "Payload Too Large", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/uploads": {"get": {"tags": ["uploads"], "summary": "List Uploads", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/ledgers/clear": {"post": {"tags": ["uploads"], "summary": "Clear Ledgers", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/commissions/sellers": {"get": {"tags": ["commissions"], "summary": "Seller Summary", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/commissions/cities": {"get": {"tags": ["commissions"], "summary": "City Summary", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataWithWarningsResponse"}}}}},
        "/commissions/sellers/{name}/orders": {"get": {"tags": ["commissions"], "summary": "Seller Orders", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataWithWarningsResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/commissions/rate": {"post": {"tags": ["commissions"], "summary": "Resolve Rate", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataWithWarningsResponse"}}}}},
        "/commissions/calculate": {"post": {"tags": ["commissions"], "summary": "Calculate Commission", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataWithWarningsResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/commissions/process": {"post": {"tags": ["commissions"], "summary": "Process Commissions", "produces": ["application/pdf"], "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/commissions/runs": {"get": {"tags": ["commissions"], "summary": "List Runs", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/commissions/runs/{id}": {"get": {"tags": ["commissions"], "summary": "Get Run", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/commissions/runs/{id}/export": {"get": {"tags": ["commissions"], "summary": "Export Run", "produces": ["text/csv", "application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "format", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}}},
        "/commissions/records": {"get": {"tags": ["commissions"], "summary": "Commission Records", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/present-value/simulate": {"post": {"tags": ["present-value"], "summary": "Simulate Present Value", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/sellers": {"get": {"tags": ["sellers"], "summary": "List Sellers", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "post": {"tags": ["sellers"], "summary": "Create Seller", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/sellers/{id}": {"get": {"tags": ["sellers"], "summary": "Get Seller", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "put": {"tags": ["sellers"], "summary": "Update Seller", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "delete": {"tags": ["sellers"], "summary": "Delete Seller", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/vehicle_models": {"get": {"tags": ["vehicle_models"], "summary": "List Vehicle Models", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "post": {"tags": ["vehicle_models"], "summary": "Create Vehicle Model", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/vehicle_models/{id}": {"get": {"tags": ["vehicle_models"], "summary": "Get Vehicle Model", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "put": {"tags": ["vehicle_models"], "summary": "Update Vehicle Model", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "delete": {"tags": ["vehicle_models"], "summary": "Delete Vehicle Model", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/payment_methods": {"get": {"tags": ["payment_methods"], "summary": "List Payment Methods", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "post": {"tags": ["payment_methods"], "summary": "Create Payment Method", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/payment_methods/{id}": {"get": {"tags": ["payment_methods"], "summary": "Get Payment Method", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "delete": {"tags": ["payment_methods"], "summary": "Delete Payment Method", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/payment_methods/{id}/present_value": {"put": {"tags": ["payment_methods"], "summary": "Update Present Value Settings", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/payment_methods/{id}/deactivate": {"post": {"tags": ["payment_methods"], "summary": "Deactivate Payment Method", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/progressive_tables": {"get": {"tags": ["progressive_tables"], "summary": "List Progressive Tables", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "post": {"tags": ["progressive_tables"], "summary": "Create Progressive Table", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/progressive_tables/{id}": {"delete": {"tags": ["progressive_tables"], "summary": "Delete Progressive Table", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}},
        "/rate_tiers": {"get": {"tags": ["rate_tiers"], "summary": "List Rate Tiers", "parameters": [{"type": "string", "name": "scope", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "post": {"tags": ["rate_tiers"], "summary": "Create Rate Tier", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}},
        "/rate_tiers/{id}": {"get": {"tags": ["rate_tiers"], "summary": "Get Rate Tier", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "put": {"tags": ["rate_tiers"], "summary": "Update Rate Tier", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}, "delete": {"tags": ["rate_tiers"], "summary": "Delete Rate Tier", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DataResponse"}}}}}
    },
    "definitions": {
        "DataResponse": {"type": "object", "properties": {"data": {}}},
        "DataWithWarningsResponse": {"type": "object", "properties": {"data": {}, "warnings": {"type": "array", "items": {"type": "string"}}}},
        "ErrorResponse": {"type": "object", "properties": {"error": {"type": "object", "properties": {"type": {"type": "string"}, "code": {"type": "string"}, "field": {"type": "string"}, "message": {"type": "string"}}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Commissions API",
	Description:      "Sales commission engine for motorcycle dealerships.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
