// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HopeHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: HOPEHUB_MONGO_URI, HOPEHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hope_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// JWT configuration
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT access token signing key (must be strong in production)"},
	{Name: "jwt_refresh_secret", Default: "dev-only-refresh-change-me-9876543210FEDCBA", Desc: "JWT refresh token signing key (must be strong in production)"},
	{Name: "jwt_access_expiry", Default: "1h", Desc: "Access token lifetime (e.g., 1h, 30m)"},
	{Name: "jwt_refresh_expiry", Default: "720h", Desc: "Refresh token lifetime (e.g., 720h for 30 days)"},
	{Name: "jwt_reset_expiry", Default: "10m", Desc: "Password-reset token lifetime"},

	// Password hashing
	{Name: "bcrypt_cost", Default: 0, Desc: "bcrypt cost factor (0 uses the library default)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank disables outbound mail)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@hopehub.org", Desc: "From email address"},

	// Site identity and links
	{Name: "site_name", Default: "HopeHub", Desc: "Display name used in outbound email"},
	{Name: "reset_ui_base_url", Default: "http://localhost:3000/reset-password", Desc: "Frontend page password-reset links point at"},

	// Defaults for new accounts
	{Name: "default_profile_image", Default: "https://hopehub.org/assets/default-avatar.png", Desc: "Profile image applied when signup omits one"},

	// SuperAdmin bootstrap (created on startup if absent; both required)
	{Name: "superadmin_email", Default: "", Desc: "Email of the super-admin account to seed on startup"},
	{Name: "superadmin_password", Default: "", Desc: "Password for the seeded super-admin account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, HOPEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HOPEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:        appValues.String("jwt_secret"),
		JWTRefreshSecret: appValues.String("jwt_refresh_secret"),
		AccessExpiry:     appValues.Duration("jwt_access_expiry", time.Hour),
		RefreshExpiry:    appValues.Duration("jwt_refresh_expiry", 720*time.Hour),
		ResetExpiry:      appValues.Duration("jwt_reset_expiry", 10*time.Minute),

		BcryptCost: appValues.Int("bcrypt_cost"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),

		SiteName:       appValues.String("site_name"),
		ResetUIBaseURL: appValues.String("reset_ui_base_url"),

		DefaultProfileImage: appValues.String("default_profile_image"),

		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// HopeHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" || appCfg.JWTRefreshSecret == "" {
		return fmt.Errorf("jwt_secret and jwt_refresh_secret must be set")
	}
	if appCfg.JWTSecret == appCfg.JWTRefreshSecret {
		return fmt.Errorf("jwt_secret and jwt_refresh_secret must differ")
	}

	if (appCfg.SuperAdminEmail == "") != (appCfg.SuperAdminPassword == "") {
		return fmt.Errorf("superadmin_email and superadmin_password must be set together")
	}

	return nil
}
