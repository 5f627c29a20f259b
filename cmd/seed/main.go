package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nbagirov/tapreflex/internal/config"
	"github.com/nbagirov/tapreflex/internal/infrastructure/database"
	"github.com/nbagirov/tapreflex/internal/infrastructure/lock"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"github.com/nbagirov/tapreflex/internal/infrastructure/repository"
	"github.com/nbagirov/tapreflex/internal/infrastructure/seeder"
	profileuc "github.com/nbagirov/tapreflex/internal/usecase/profile"
	"github.com/spf13/viper"
)

func main() {
	var (
		configPath = flag.String("config", "./config", "Path to config directory")
		configFile = flag.String("env", "development", "Environment")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(&database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db.DB)
	historyRepo := repository.NewHistoryRepository(db.DB)
	appLogger := logger.NewLogger(config.GetEnvironment(), cfg.Log.Level)
	lockManager := lock.NewPlayerLockManager()
	profileUC := profileuc.NewProfileUseCase(profileRepo, historyRepo, db.DB, appLogger, lockManager)
	newSeeder := seeder.NewSeeder(profileUC)

	log.Println("Starting database seeding...")
	if err := newSeeder.SeedPlayers(); err != nil {
		log.Fatalf("Failed to seed players: %v", err)
	}
	log.Println("Database seeding completed successfully")
}

// loadConfig loads configuration from file
func loadConfig(configPath, configFile string) (*config.Config, error) {
	viper.SetConfigName(fmt.Sprintf("config.%s", configFile))
	viper.SetConfigType("yml")
	viper.AddConfigPath(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &cfg, nil
}
