// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging level); AppConfig is
// everything specific to Questhub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret string        // Signing secret for bearer tokens (must be strong in production)
	JWTExpiry time.Duration // Token lifetime (default 24h)

	// Domain limits
	TeamMaxSize int // Member cap for new teams, 1..4 (default 4)

	// CORS
	CORSAllowedOrigins []string // Origins allowed to call the API (the SPA)
}
