// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles the
// framework-level settings (HTTP ports, TLS, log level, timeouts); AppConfig
// is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// API key authentication for all /api routes. The dashboard UI and the
	// activity sync job both present this key as a Bearer token. Leave empty
	// to reject all API requests (safe default for misconfiguration).
	APIKey string
}
