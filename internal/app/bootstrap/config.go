// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for GenetHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, csrf_cookie_name, etc.
//   - Environment variables: GENETHUB_API_BASE_URL, GENETHUB_CSRF_COOKIE_NAME, etc.
//   - Command-line flags: --api_base_url, --csrf_cookie_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8000", Desc: "Base URL of the remote membership API"},
	{Name: "api_timeout", Default: "15s", Desc: "Per-request timeout against the remote API (e.g., 15s, 1m)"},

	{Name: "csrf_cookie_name", Default: "csrftoken", Desc: "CSRF cookie set by the remote API"},
	{Name: "csrf_header_name", Default: "X-CSRFToken", Desc: "CSRF header expected by the remote API on mutating requests"},

	{Name: "legacy_token_file", Default: "", Desc: "Path to a legacy bearer-token file (blank disables)"},

	{Name: "flash_key", Default: "", Desc: "Flash cookie signing key (blank means random per-process)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GENETHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GENETHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),

		CSRFCookieName: appValues.String("csrf_cookie_name"),
		CSRFHeaderName: appValues.String("csrf_header_name"),

		LegacyTokenFile: appValues.String("legacy_token_file"),

		FlashKey: appValues.String("flash_key"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// GenetHub validates the remote API base URL early so that a typo fails
// startup rather than surfacing as an operational error on the first
// dashboard load.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil {
		logger.Error("invalid api_base_url", zap.Error(err))
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", appCfg.APIBaseURL)
	}

	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", appCfg.APITimeout)
	}

	if appCfg.CSRFCookieName == "" || appCfg.CSRFHeaderName == "" {
		return fmt.Errorf("csrf_cookie_name and csrf_header_name must not be blank")
	}

	return nil
}
