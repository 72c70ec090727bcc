// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "TANNERY"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: TANNERY_MONGO_URI, TANNERY_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tannery", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Site identity
	{Name: "site_name", Default: "The Tannery Workspace", Desc: "Site display name"},
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Canonical site origin"},

	// Admin session
	{Name: "session_key", Default: "", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "tannery-admin", Desc: "Admin session cookie name"},
	{Name: "session_max_age", Default: "12h", Desc: "Admin session cookie max age (e.g., 12h, 24h)"},
	{Name: "admin_passphrase_hash", Default: "", Desc: "bcrypt hash of the admin passphrase (empty disables admin login)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Notion CMS integration
	{Name: "notion_token", Default: "", Desc: "Notion integration token (empty disables the CMS)"},
	{Name: "notion_pages_db", Default: "", Desc: "Notion database ID for pages"},
	{Name: "notion_posts_db", Default: "", Desc: "Notion database ID for blog posts"},
	{Name: "notion_events_db", Default: "", Desc: "Notion database ID for events"},
	{Name: "content_cache_ttl", Default: "5m", Desc: "CMS content cache TTL (e.g., 5m, 15m)"},

	// Video storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded videos"},
	{Name: "storage_local_url", Default: "/media", Desc: "URL prefix for serving local files"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "hello@tanneryworkspace.co.uk", Desc: "From email address"},
	{Name: "mail_from_name", Default: "The Tannery Workspace", Desc: "From display name"},

	// Contact form configuration
	{Name: "contact_notify_to", Default: "", Desc: "Inbox for contact-form notifications (empty disables mail)"},
	{Name: "contact_retention", Default: "2160h", Desc: "How long stored enquiries are kept (default 90 days)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TANNERY_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SiteName: appValues.String("site_name"),
		BaseURL:  appValues.String("base_url"),

		SessionKey:          appValues.String("session_key"),
		SessionName:         appValues.String("session_name"),
		SessionMaxAge:       appValues.Duration("session_max_age", 12*time.Hour),
		AdminPassphraseHash: appValues.String("admin_passphrase_hash"),

		CSRFKey: appValues.String("csrf_key"),

		// Notion CMS
		NotionToken:     appValues.String("notion_token"),
		NotionPagesDB:   appValues.String("notion_pages_db"),
		NotionPostsDB:   appValues.String("notion_posts_db"),
		NotionEventsDB:  appValues.String("notion_events_db"),
		ContentCacheTTL: appValues.Duration("content_cache_ttl", 5*time.Minute),

		// Video storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		// Contact form
		ContactNotifyTo:  appValues.String("contact_notify_to"),
		ContactRetention: appValues.Duration("contact_retention", 90*24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.NotionToken != "" {
		if appCfg.NotionPagesDB == "" && appCfg.NotionPostsDB == "" && appCfg.NotionEventsDB == "" {
			return fmt.Errorf("notion_token is set but no notion database IDs are configured")
		}
	}

	return nil
}
