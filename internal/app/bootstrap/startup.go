// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"sync"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/genet-ke/genethub/internal/app/resources"
	"github.com/genet-ke/genethub/internal/app/system/timeouts"
)

var sessionBootstrapOnce sync.Once

// Startup runs one-time application initialization after the gateway is
// connected but before the HTTP handler is built. It loads the shared
// templates and kicks off the session bootstrap in the background so an
// unreachable API delays the first page, not the listener.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	sessionBootstrapOnce.Do(func() {
		go bootstrapSession(context.Background(), deps, logger)
	})
	return nil
}

// bootstrapSession primes the remote session: establish the CSRF cookie,
// then restore any existing signed-in session. Both steps are best-effort;
// the app serves its public pages regardless, and a missing session simply
// means the user signs in through /login.
func bootstrapSession(ctx context.Context, deps Deps, logger *zap.Logger) {
	csrfCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	err := deps.Gateway.EstablishCSRF(csrfCtx)
	cancel()
	if err != nil {
		logger.Warn("csrf bootstrap failed", zap.Error(err))
	}

	userCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	if err := deps.Sessions.FetchCurrentUser(userCtx); err != nil {
		logger.Debug("no existing session", zap.Error(err))
	}
}
