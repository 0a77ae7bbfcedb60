package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/repready/backend/internal/config"
	"github.com/repready/backend/tools"
)

// fill a development database with a plausible training history
func main() {
	fmt.Println("starting dev data seeder ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	days := flag.Int("days", 120, "how many days of history to generate")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	dbPassword := os.Getenv("REPREADY_POSTGRES_PASS")

	if err := tools.SeedWorkoutHistory(
		context.Background(),
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDBName,
		dbPassword, *days,
	); err != nil {
		fmt.Printf("seeding failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("\nseeding completed")
}
