// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like HTTP ports, TLS, logging level, and CORS;
// AppConfig is everything specific to HopeHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWT configuration
	JWTSecret        string        // Signing key for access and reset tokens
	JWTRefreshSecret string        // Signing key for refresh tokens
	AccessExpiry     time.Duration // Access token lifetime
	RefreshExpiry    time.Duration // Refresh token lifetime
	ResetExpiry      time.Duration // Password-reset token lifetime

	// Password hashing
	BcryptCost int // bcrypt cost factor (0 means the library default)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (blank disables outbound mail)
	MailSMTPPort int    // SMTP server port
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address

	// Site identity and links
	SiteName       string // Display name used in outbound email
	ResetUIBaseURL string // Frontend page password-reset links point at

	// Defaults for new accounts
	DefaultProfileImage string // Profile image applied when signup omits one

	// SuperAdmin bootstrap seed (both must be set to take effect)
	SuperAdminEmail    string
	SuperAdminPassword string
}
