package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/shipscope/shipment-tracker/internal/config"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// Database represents a database connection
type Database struct {
	DB     *sqlx.DB
	logger logger.Logger
}

// New creates a new database connection
func New(cfg *config.Config, logger logger.Logger) (*Database, error) {
	db, err := sqlx.Connect("postgres", cfg.GetDBConnString())

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("Connected to database", "host", cfg.DB.Host, "database", cfg.DB.Name)

	return &Database{
		DB:     db,
		logger: logger,
	}, nil
}

// Ping checks the database connection
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.DB.Close()
}

// RunMigrations runs database migrations
func (d *Database) RunMigrations() error {
	// For initial setup, just create tables directly
	// In a real project, you'd want to use a migration tool
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(50) PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS shipping_providers (
		id VARCHAR(50) PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		display_name VARCHAR(255),
		tracking_url TEXT,
		contact_email VARCHAR(255),
		phone VARCHAR(50),
		created_by VARCHAR(50) NOT NULL REFERENCES users(id)
	);

	-- provider_id carries no foreign key: providers may be deleted while
	-- shipments still reference them
	CREATE TABLE IF NOT EXISTS shipments (
		id VARCHAR(50) PRIMARY KEY,
		shipment_id VARCHAR(50) UNIQUE NOT NULL,
		tracking_id VARCHAR(50) UNIQUE NOT NULL,
		external_tracking_id VARCHAR(100),
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		estimated_delivery TIMESTAMP,
		weight_kg DECIMAL(10, 2) NOT NULL,
		dimensions VARCHAR(100) NOT NULL,
		description TEXT,
		provider_id VARCHAR(50) NOT NULL,
		created_by VARCHAR(50) NOT NULL REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_shipments_created_by ON shipments(created_by);
	CREATE INDEX IF NOT EXISTS idx_shipments_provider_id ON shipments(provider_id);
	CREATE INDEX IF NOT EXISTS idx_shipments_status ON shipments(status);
	CREATE INDEX IF NOT EXISTS idx_shipments_external_tracking_id ON shipments(external_tracking_id);

	CREATE TABLE IF NOT EXISTS status_history (
		id VARCHAR(50) PRIMARY KEY,
		shipment_id VARCHAR(50) NOT NULL REFERENCES shipments(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL,
		recorded_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_status_history_shipment_id ON status_history(shipment_id);
	`

	_, err := d.DB.Exec(schema)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.logger.Info("Database migrations completed successfully")
	return nil
}
