package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/xylem-api/internal/config"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Representatives can be deleted while fabricators and distributors
		// still reference them.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.MarketingRepresentative{},
		&entity.Distributor{},
		&entity.Fabricator{},
		&entity.Report{},
		&entity.Task{},
		&entity.RecentActivity{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// EnsureAdmin creates an administrator unless a user with the same username
// or email already exists. It reports whether a user was created.
func EnsureAdmin(db *gorm.DB, cfg config.AdminConfig) (bool, error) {
	username := strings.TrimSpace(cfg.Username)
	if username == "" || cfg.Password == "" {
		return false, errors.New("admin username and password are required")
	}
	email := strings.TrimSpace(cfg.Email)
	if email == "" {
		email = username
	}

	var existing entity.User
	err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		log.Info().Str("username", existing.Username).Msg("admin user already exists")
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		FirstName: "Admin",
		IsAdmin:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("username", username).Msg("admin user created")
	return true, nil
}
