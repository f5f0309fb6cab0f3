// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request limits. AppConfig is
// everything specific to GenetHub: where the remote membership API lives,
// how the CSRF exchange is named, and the flash cookie secret.
type AppConfig struct {
	// Remote membership API
	APIBaseURL string        // Base URL of the remote API (e.g., https://api.genet.example)
	APITimeout time.Duration // Per-request timeout against the remote API

	// CSRF double-submit settings (must match the remote API's conventions)
	CSRFCookieName string // Cookie the API sets on GET /auth/csrf/
	CSRFHeaderName string // Header the API expects on mutating requests

	// Legacy token support: some deployments still honor a bearer token
	// alongside the cookie session. Blank disables it.
	LegacyTokenFile string // Path to a file holding the legacy bearer token

	// Flash cookie signing key (blank means a random per-process key)
	FlashKey string
}
