// Package main Tap Reflex API
//
// Tap Reflex is the backend for a mobile tap-reflex game. It owns the
// authoritative round engine and scoring, aggregates finished rounds into
// per-player profiles, and serves ranked leaderboard and player search views:
//
//  1. Running rounds server-side so scores cannot be forged by the client.
//
//  2. Folding every finished round into a single profile document per player,
//     with per-difficulty bests and lifetime totals.
//
//     Schemes: http, https
//     Host: localhost:8080
//     BasePath: /api/v1
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
package main

import (
	"context"

	_ "github.com/nbagirov/tapreflex/docs"
	"github.com/nbagirov/tapreflex/internal/app"
)

// @title Tap Reflex API Service
// @version 1.0
// @description Tap Reflex is the scoring, profile aggregation and leaderboard backend for a mobile tap-reflex game.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
