// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	financestore "github.com/genet-ke/genethub/internal/app/store/finance"
	memberstore "github.com/genet-ke/genethub/internal/app/store/members"
	orgstore "github.com/genet-ke/genethub/internal/app/store/org"
	projectstore "github.com/genet-ke/genethub/internal/app/store/projects"
	sessionstore "github.com/genet-ke/genethub/internal/app/store/session"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
)

// Deps holds the remote-API gateway and the resource stores built on it.
// GenetHub keeps no database of its own; the remote membership API is the
// only backend, and the stores are this process's mirror of it.
type Deps struct {
	Gateway *gateway.Client

	Sessions *sessionstore.Store
	Members  *memberstore.Store
	Finance  *financestore.Store
	Projects *projectstore.Store
	Org      *orgstore.Store

	Flash *flash.Store
}

// ConnectDB builds the gateway client and the stores that share it. The
// name comes from WAFFLE's lifecycle; for GenetHub "the database" is the
// remote API connection.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	gw, err := gateway.New(gateway.Config{
		BaseURL:         appCfg.APIBaseURL,
		Timeout:         appCfg.APITimeout,
		CSRFCookie:      appCfg.CSRFCookieName,
		CSRFHeader:      appCfg.CSRFHeaderName,
		LegacyTokenFile: appCfg.LegacyTokenFile,
	}, logger)
	if err != nil {
		logger.Error("gateway init failed", zap.Error(err))
		return Deps{}, err
	}

	deps := Deps{
		Gateway:  gw,
		Sessions: sessionstore.New(gw, logger),
		Members:  memberstore.New(gw, logger),
		Finance:  financestore.New(gw, logger),
		Projects: projectstore.New(gw, logger),
		Org:      orgstore.New(gw, logger),
		Flash:    flash.New(appCfg.FlashKey, logger),
	}
	return deps, nil
}

// EnsureSchema is a no-op: all durable state lives behind the remote API.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
