package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Runway Simulation API",
        "description": "What-if runway queue scheduling over imported flight schedules",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Flights", "description": "Flight schedule import and listing"},
        {"name": "Disruptions", "description": "Suspension and efficiency periods"},
        {"name": "Simulations", "description": "Simulation run lifecycle and results"},
        {"name": "Peaks", "description": "Peak-period load table"}
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
        "/flights/import": {
            "post": {
                "tags": ["Flights"],
                "summary": "Import an XLSX or CSV flight schedule",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed file", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/flights": {
            "get": {
                "tags": ["Flights"],
                "summary": "List imported flights",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "kind", "in": "query", "type": "string", "enum": ["DEPARTURE", "ARRIVAL"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "sortOrder", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/disruptions": {
            "get": {
                "tags": ["Disruptions"],
                "summary": "List disruption periods in a date range",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Disruptions"],
                "summary": "Register a disruption period",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDisruptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/disruptions/{id}": {
            "delete": {
                "tags": ["Disruptions"],
                "summary": "Remove a disruption period",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Unknown period", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/simulations": {
            "post": {
                "tags": ["Simulations"],
                "summary": "Create and enqueue a simulation run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSimulationRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/simulations/{id}": {
            "get": {
                "tags": ["Simulations"],
                "summary": "Run status and summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown run", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/simulations/{id}/operations": {
            "get": {
                "tags": ["Simulations"],
                "summary": "Paginated simulated operations of a finished run",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Run not finished", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/simulations/{id}/backlog": {
            "get": {
                "tags": ["Simulations"],
                "summary": "Backlog periods of a finished run",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Run not finished", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/simulations/{id}/export": {
            "get": {
                "tags": ["Simulations"],
                "summary": "Download a finished run as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "409": {"description": "Run not finished", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/peaks/rebuild": {
            "post": {
                "tags": ["Peaks"],
                "summary": "Rebuild the peak table from historical delays",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RebuildPeaksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/peaks": {
            "get": {
                "tags": ["Peaks"],
                "summary": "Current peak table entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateDisruptionRequest": {
            "type": "object",
            "required": ["kind", "date", "startTime", "endTime"],
            "properties": {
                "kind": {"type": "string", "enum": ["SUSPENSION", "EFFICIENCY"]},
                "date": {"type": "string", "format": "date"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "efficiencyFactor": {"type": "number"},
                "policy": {"type": "string", "enum": ["ALL", "SEQUENTIAL", "PRIORITY_BY_SIZE"]}
            }
        },
        "CreateSimulationRequest": {
            "type": "object",
            "required": ["fromDate", "toDate"],
            "properties": {
                "fromDate": {"type": "string", "format": "date"},
                "toDate": {"type": "string", "format": "date"},
                "runwayCount": {"type": "integer"},
                "serviceOffsetMinutes": {"type": "integer"},
                "usePeakModulator": {"type": "boolean"},
                "tieBreakSeed": {"type": "integer"}
            }
        },
        "RebuildPeaksRequest": {
            "type": "object",
            "required": ["fromDate", "toDate"],
            "properties": {
                "fromDate": {"type": "string", "format": "date"},
                "toDate": {"type": "string", "format": "date"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
