// Package docs registers the OpenAPI description of the agent surface.
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
				"summary": "Liveness probe",
				"tags": [
					"health"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/health/ready": {
			"get": {
				"summary": "Readiness probe",
				"tags": [
					"health"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Ready"
					},
					"503": {
						"description": "Degraded"
					}
				}
			}
		},
		"/v1/session": {
			"get": {
				"summary": "Current session state",
				"tags": [
					"session"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/v1/session/login": {
			"post": {
				"summary": "Log in against the backend",
				"tags": [
					"session"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request"
					},
					"401": {
						"description": "Invalid credentials"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/session/logout": {
			"post": {
				"summary": "Log out",
				"tags": [
					"session"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/notifications": {
			"get": {
				"summary": "Notification snapshot",
				"tags": [
					"notifications"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			},
			"delete": {
				"summary": "Clear all notifications",
				"tags": [
					"notifications"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "boolean",
						"name": "confirm",
						"in": "query",
						"description": "accept the confirmation prompt"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"428": {
						"description": "Confirmation required"
					},
					"502": {
						"description": "Backend failure"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/notifications/refresh": {
			"post": {
				"summary": "Fetch notifications now",
				"tags": [
					"notifications"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"429": {
						"description": "Too many requests"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/notifications/read-all": {
			"post": {
				"summary": "Mark all notifications read",
				"tags": [
					"notifications"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK, possibly with a warning"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/notifications/{id}/read": {
			"post": {
				"summary": "Mark one notification read",
				"tags": [
					"notifications"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"schema": {
							"$ref": "#/definitions/markReadRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/attendance": {
			"post": {
				"summary": "Mark today's attendance",
				"tags": [
					"attendance"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/markAttendanceRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid request"
					},
					"409": {
						"description": "Already marked today"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/attendance/today": {
			"get": {
				"summary": "Today's attendance",
				"tags": [
					"attendance"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/attendance/history": {
			"get": {
				"summary": "Recent attendance",
				"tags": [
					"attendance"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/attendance/stats": {
			"get": {
				"summary": "Attendance counters",
				"tags": [
					"attendance"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/attendance/export": {
			"get": {
				"summary": "Export attendance as CSV",
				"tags": [
					"attendance"
				],
				"produces": [
					"text/csv"
				],
				"parameters": [
					{
						"type": "string",
						"name": "date",
						"in": "query",
						"description": "YYYY-MM-DD"
					}
				],
				"responses": {
					"200": {
						"description": "CSV attachment"
					},
					"404": {
						"description": "No attendance data"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/leaves": {
			"get": {
				"summary": "List leave requests",
				"tags": [
					"leaves"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			},
			"post": {
				"summary": "Submit a leave request",
				"tags": [
					"leaves"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/submitLeaveRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid request"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/leaves/{id}": {
			"delete": {
				"summary": "Cancel a leave request",
				"tags": [
					"leaves"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/users": {
			"post": {
				"summary": "Register a user",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/registerUserRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid request"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			},
			"delete": {
				"summary": "Delete all employee accounts",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "boolean",
						"name": "confirm",
						"in": "query",
						"description": "accept the confirmation prompt"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"428": {
						"description": "Confirmation required"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/users/{id}/image": {
			"post": {
				"summary": "Upload a profile image",
				"tags": [
					"admin"
				],
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"name": "profileImage",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Invalid image"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/password/strength": {
			"post": {
				"summary": "Grade a password",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/passwordRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/password/generate": {
			"post": {
				"summary": "Generate a password",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/attendance": {
			"delete": {
				"summary": "Delete all attendance records",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "boolean",
						"name": "confirm",
						"in": "query",
						"description": "accept the confirmation prompt"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"428": {
						"description": "Confirmation required"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/leaves": {
			"delete": {
				"summary": "Delete all leave requests",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "boolean",
						"name": "confirm",
						"in": "query",
						"description": "accept the confirmation prompt"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"428": {
						"description": "Confirmation required"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		},
		"/v1/admin/reset-system": {
			"post": {
				"summary": "Reset the whole system",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "boolean",
						"name": "confirm",
						"in": "query",
						"description": "accept the confirmation prompt"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"428": {
						"description": "Confirmation required"
					},
					"403": {
						"description": "Admin role required"
					},
					"401": {
						"description": "No active session"
					},
					"503": {
						"description": "Session bootstrap in progress"
					}
				}
			}
		}
	},
	"definitions": {
		"loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"rememberMe": {
					"type": "boolean"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"markReadRequest": {
			"type": "object",
			"properties": {
				"link": {
					"type": "string"
				}
			}
		},
		"markAttendanceRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				}
			},
			"required": [
				"status"
			]
		},
		"submitLeaveRequest": {
			"type": "object",
			"properties": {
				"reason": {
					"type": "string"
				},
				"startDate": {
					"type": "string"
				},
				"endDate": {
					"type": "string"
				}
			},
			"required": [
				"reason",
				"startDate",
				"endDate"
			]
		},
		"registerUserRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"position": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"email",
				"password"
			]
		},
		"passwordRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:7420",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "WorkSync session agent",
	Description:      "Local API holding the WorkSync session and notification state for the desktop UI.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
