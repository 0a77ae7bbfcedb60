// Package main runs the recovery MCP server over stdio (for local AI client
// use). The same MCP server is also mounted on the main backend at /mcp over
// HTTP, so you can use either: stdio (this cmd) or the backend URL (no extra
// deploy).
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/repready/backend/internal/config"
	"github.com/repready/backend/internal/db"
	"github.com/repready/backend/internal/recovery"
	recoverymcp "github.com/repready/backend/internal/recovery/mcp"
	"github.com/repready/backend/internal/settings"
	"github.com/repready/backend/internal/sleep"
	"github.com/repready/backend/internal/telemetry/metrics"
	"github.com/repready/backend/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     os.Getenv("REPREADY_POSTGRES_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	workoutsRepo := workouts.NewRepo(dbPool)
	recoveryService := recovery.NewService(
		workoutsRepo,
		sleep.NewRepo(dbPool),
		settings.NewRepo(dbPool),
		cfg.RecoveryWindowDays,
		metrics.NewManager("backend", "mcp", prometheus.NewRegistry()),
	)
	server := recoverymcp.NewServer(recoveryService, workoutsRepo)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
