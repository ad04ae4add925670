// Package testing provides database setup and fixtures shared by package tests
package testing

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	gotesting "testing"
	"time"

	"github.com/amirphl/email-feedback/migrations"
	"github.com/amirphl/email-feedback/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDBConfig holds configuration for PostgreSQL test connections
type TestDBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	SSLMode  string
}

// GetTestDBConfig loads PostgreSQL test settings. ok is false when TEST_DB_HOST is unset.
func GetTestDBConfig() (cfg *TestDBConfig, ok bool) {
	if os.Getenv("TEST_DB_HOST") == "" {
		return nil, false
	}
	return &TestDBConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		SSLMode:  getEnv("TEST_DB_SSL_MODE", "disable"),
	}, true
}

func (c *TestDBConfig) dsn(dbName string) string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.SSLMode)
	if dbName != "" {
		dsn += " dbname=" + dbName
	}
	return dsn
}

// SetupTestDB opens an isolated in-memory SQLite database with the
// email_ratings schema. The database lives as long as the test.
func SetupTestDB(t gotesting.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sqlite handle: %v", err)
	}
	// every pooled connection to :memory: would be a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.EmailRating{}); err != nil {
		t.Fatalf("failed to migrate sqlite test database: %v", err)
	}
	return db
}

// SetupPostgresTestDB creates a throwaway PostgreSQL database, applies the
// goose migrations and drops it when the test ends. The test is skipped when
// TEST_DB_HOST is not configured.
func SetupPostgresTestDB(t gotesting.TB) *gorm.DB {
	t.Helper()

	cfg, ok := GetTestDBConfig()
	if !ok {
		t.Skip("TEST_DB_HOST not set; skipping PostgreSQL integration test")
	}

	dbName := fmt.Sprintf("email_feedback_test_%d_%d", time.Now().Unix(), rand.Intn(10000))

	adminDB, err := gorm.Open(postgres.Open(cfg.dsn("")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	if err := adminDB.Exec("CREATE DATABASE " + dbName).Error; err != nil {
		t.Fatalf("failed to create test database %s: %v", dbName, err)
	}

	ctx := context.Background()
	if err := migrations.Up(ctx, cfg.dsn(dbName)); err != nil {
		adminDB.Exec("DROP DATABASE IF EXISTS " + dbName)
		t.Fatalf("failed to run migrations on %s: %v", dbName, err)
	}

	testDB, err := gorm.Open(postgres.Open(cfg.dsn(dbName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database %s: %v", dbName, err)
	}

	t.Cleanup(func() {
		if sqlDB, err := testDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		adminDB.Exec(fmt.Sprintf(
			"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = '%s' AND pid <> pg_backend_pid()", dbName))
		adminDB.Exec("DROP DATABASE IF EXISTS " + dbName)
		if sqlDB, err := adminDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return testDB
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
