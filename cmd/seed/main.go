package main

import (
	"context"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/reachskyline/crm-api/internal/core/service"
	mongodb "github.com/reachskyline/crm-api/internal/infrastructure/db/mongo"
	"github.com/reachskyline/crm-api/internal/seed"
	"github.com/reachskyline/crm-api/pkg/logger"
)

// seedConfig reads only the storage settings; JWT_SECRET is not required here.
type seedConfig struct {
	MongoURI string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB,  default=reach_skyline_crm"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// File replaces the built-in accounts.
	File string `env:"SEED_FILE"`
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cfg seedConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	employees, err := loadEmployees(cfg.File)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed data")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	svc := service.NewEmployeeService(mongodb.NewEmployeeRepository(db), log)
	res, err := seed.Run(ctx, svc, employees, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("seeding completed")
}

func loadEmployees(path string) ([]seed.Employee, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
