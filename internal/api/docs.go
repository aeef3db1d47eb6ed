// Package api holds the HTTP contract of the gateway: the OpenAPI document,
// the wire types and the routing wrapper that binds request parameters.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/checkout/{orderID}": {
            "get": {
                "operationId": "GetCheckout",
                "summary": "Build the hosted payment page hand-off for an order",
                "tags": ["checkout"],
                "parameters": [
                    {
                        "name": "orderID",
                        "in": "path",
                        "required": true,
                        "schema": {"type": "integer", "format": "int64", "minimum": 1}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Form fields to post to Cornerstone",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HandoffResponse"}}}
                    },
                    "404": {"$ref": "#/components/responses/Error"},
                    "409": {"$ref": "#/components/responses/Error"},
                    "422": {"$ref": "#/components/responses/Error"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/orders/{orderID}": {
            "get": {
                "operationId": "GetOrder",
                "summary": "Order payment status for the receipt page",
                "tags": ["orders"],
                "parameters": [
                    {
                        "name": "orderID",
                        "in": "path",
                        "required": true,
                        "schema": {"type": "integer", "format": "int64", "minimum": 1}
                    },
                    {
                        "name": "notes",
                        "in": "query",
                        "required": false,
                        "schema": {"type": "boolean"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "The order",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/OrderResponse"}}}
                    },
                    "404": {"$ref": "#/components/responses/Error"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        }
    },
    "components": {
        "responses": {
            "Error": {
                "description": "Error envelope",
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}
            }
        },
        "schemas": {
            "ErrorResponse": {
                "type": "object",
                "required": ["success", "error"],
                "properties": {
                    "success": {"type": "boolean"},
                    "error": {
                        "type": "object",
                        "required": ["code", "message"],
                        "properties": {
                            "code": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
            },
            "HandoffField": {
                "type": "object",
                "required": ["name", "value"],
                "properties": {
                    "name": {"type": "string"},
                    "value": {"type": "string"}
                }
            },
            "Handoff": {
                "type": "object",
                "required": ["order_id", "action_url", "method", "fields"],
                "properties": {
                    "order_id": {"type": "integer", "format": "int64"},
                    "action_url": {"type": "string", "format": "uri"},
                    "method": {"type": "string", "enum": ["POST"]},
                    "fields": {"type": "array", "items": {"$ref": "#/components/schemas/HandoffField"}}
                }
            },
            "HandoffResponse": {
                "type": "object",
                "required": ["success", "data"],
                "properties": {
                    "success": {"type": "boolean"},
                    "data": {"$ref": "#/components/schemas/Handoff"}
                }
            },
            "Note": {
                "type": "object",
                "required": ["body", "created_at"],
                "properties": {
                    "body": {"type": "string"},
                    "created_at": {"type": "string", "format": "date-time"}
                }
            },
            "Order": {
                "type": "object",
                "required": ["id", "status", "amount", "currency", "created_at", "updated_at"],
                "properties": {
                    "id": {"type": "integer", "format": "int64"},
                    "status": {
                        "type": "string",
                        "enum": ["pending", "on-hold", "processing", "completed", "failed", "cancelled", "refunded"]
                    },
                    "amount": {"type": "string", "example": "49.99"},
                    "currency": {"type": "string"},
                    "paid": {"type": "boolean"},
                    "paid_at": {"type": "string", "format": "date-time"},
                    "created_at": {"type": "string", "format": "date-time"},
                    "updated_at": {"type": "string", "format": "date-time"},
                    "notes": {"type": "array", "items": {"$ref": "#/components/schemas/Note"}}
                }
            },
            "OrderResponse": {
                "type": "object",
                "required": ["success", "data"],
                "properties": {
                    "success": {"type": "boolean"},
                    "data": {"$ref": "#/components/schemas/Order"}
                }
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
	Title:            "Cornerstone Payment Gateway",
	Description:      "Hand-off to the Cornerstone hosted payment page and order status for the shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
