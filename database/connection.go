package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mentorlink/mentorlink-backend/internal/config"
	"github.com/mentorlink/mentorlink-backend/internal/models"
)

// Connect opens the Postgres connection described by cfg and runs the
// schema migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("database connected")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Expert{},
		&models.ExpertProfile{},
		&models.Tag{},
		&models.Session{},
		&models.SessionEvent{},
		&models.Activity{},
		&models.Notification{},
		&models.Device{},
		&models.UserMedia{},
		&models.Content{},
		&models.Card{},
		&models.Charge{},
	)
}
