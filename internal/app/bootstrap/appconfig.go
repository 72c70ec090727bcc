// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to this site lives: the CMS
// integration, video storage, the contact mailbox, and the admin login.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Site identity
	SiteName string // Display name used in titles and emails
	BaseURL  string // Canonical origin, e.g. "https://www.tanneryworkspace.co.uk"

	// Admin session configuration
	SessionKey          string        // Secret key for signing session cookies (must be strong in production)
	SessionName         string        // Cookie name for the admin session
	SessionMaxAge       time.Duration // Maximum session cookie lifetime (default: 12h)
	AdminPassphraseHash string        // bcrypt hash of the admin passphrase; empty disables admin login

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Notion CMS integration. An empty token disables the integration and
	// the site serves with empty CMS collections.
	NotionToken     string        // Notion internal integration token
	NotionPagesDB   string        // Database ID for informational pages
	NotionPostsDB   string        // Database ID for blog posts
	NotionEventsDB  string        // Database ID for events
	ContentCacheTTL time.Duration // How long fetched CMS collections are reused (default: 5m)

	// Video storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/media")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "uploads/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., hello@tanneryworkspace.co.uk)
	MailFromName string // From display name

	// Contact form configuration
	ContactNotifyTo  string        // Inbox that receives enquiry notifications; empty disables mail
	ContactRetention time.Duration // How long stored enquiries are kept (default: 2160h / 90 days)
}
