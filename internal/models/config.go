package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Policy   PolicyConfig
}

// DatabaseConfig holds SQLite connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// AuthConfig holds password hashing settings
type AuthConfig struct {
	BcryptCost int
}

// PolicyConfig holds account limit policy settings
type PolicyConfig struct {
	File string
}
