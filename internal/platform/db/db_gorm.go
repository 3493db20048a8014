// Package db opens the PostgreSQL connection used by the repositories.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	contactentity "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/domain/entity"
)

// Config holds the database connection settings.
type Config struct {
	URL      string // DATABASE_URL: full connection string, takes precedence
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfig loads the database configuration from environment variables.
func LoadConfig() Config {
	return Config{
		URL:      os.Getenv("DATABASE_URL"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Name:     os.Getenv("POSTGRES_DB"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
	}
}

// BuildDSN returns the connection string for the given config. A full
// DATABASE_URL takes precedence over the discrete variables.
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, cfg.User, cfg.Password, cfg.Name, port)
}

// OpenDB connects to PostgreSQL, retrying for up to a minute while the
// database comes up. When RUN_MIGRATIONS=true it also auto-migrates the
// schema.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfig())

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&contactentity.Contact{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
