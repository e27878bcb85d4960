// Package docs registers the OpenAPI document served at /docs.
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
        "/api/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Liveness probe. Does not contact the upstream provider."
            }
        },
        "/api/live-matches": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Live matches",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Normalized in-progress matches, at most 20, in upstream order."
            }
        },
        "/api/match-details/{match_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Match details",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Upstream match ID",
                        "name": "match_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/match-stats/{match_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Match statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Upstream match ID",
                        "name": "match_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/match-history/{match_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Match point-by-point history",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Upstream match ID",
                        "name": "match_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/match-h2h/{match_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "matches"
                ],
                "summary": "Match head-to-head",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Upstream match ID",
                        "name": "match_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/player-history/{player_ref}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "players"
                ],
                "summary": "Player history",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Up to 15 past matches of the player, in upstream order.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Player name or upstream ID",
                        "name": "player_ref",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/h2h/{player1_ref}/{player2_ref}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "players"
                ],
                "summary": "Head-to-head",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "First player",
                        "name": "player1_ref",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Second player",
                        "name": "player2_ref",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/player-news/{player_ref}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "players"
                ],
                "summary": "Player news",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                },
                "description": "Up to 5 articles with an injury flag. Source failures yield an empty list.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Player name or upstream ID",
                        "name": "player_ref",
                        "in": "path",
                        "required": true
                    }
                ]
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
	Title:            "Painel de Monitoramento de Tênis API",
	Description:      "Live tennis matches, player history, head-to-head and news aggregated from a RapidAPI tennis provider.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
