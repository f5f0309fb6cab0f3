// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountfeature "github.com/genet-ke/genethub/internal/app/features/account"
	announcementsfeature "github.com/genet-ke/genethub/internal/app/features/announcements"
	blessedmindfeature "github.com/genet-ke/genethub/internal/app/features/blessedmind"
	dashboardfeature "github.com/genet-ke/genethub/internal/app/features/dashboard"
	errorsfeature "github.com/genet-ke/genethub/internal/app/features/errors"
	eventsfeature "github.com/genet-ke/genethub/internal/app/features/events"
	financefeature "github.com/genet-ke/genethub/internal/app/features/finance"
	healthfeature "github.com/genet-ke/genethub/internal/app/features/health"
	homefeature "github.com/genet-ke/genethub/internal/app/features/home"
	loginfeature "github.com/genet-ke/genethub/internal/app/features/login"
	logoutfeature "github.com/genet-ke/genethub/internal/app/features/logout"
	membersfeature "github.com/genet-ke/genethub/internal/app/features/members"
	"github.com/genet-ke/genethub/internal/app/system/auth"

	// Feature view sets register themselves with the template engine in init().
	_ "github.com/genet-ke/genethub/internal/app/features/account/views"
	_ "github.com/genet-ke/genethub/internal/app/features/announcements/views"
	_ "github.com/genet-ke/genethub/internal/app/features/blessedmind/views"
	_ "github.com/genet-ke/genethub/internal/app/features/dashboard/views"
	_ "github.com/genet-ke/genethub/internal/app/features/errors/views"
	_ "github.com/genet-ke/genethub/internal/app/features/events/views"
	_ "github.com/genet-ke/genethub/internal/app/features/finance/views"
	_ "github.com/genet-ke/genethub/internal/app/features/home/views"
	_ "github.com/genet-ke/genethub/internal/app/features/login/views"
	_ "github.com/genet-ke/genethub/internal/app/features/members/views"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the gateway connection, and the
// Startup hook have completed. It boots the template engine, applies the
// session middleware, and mounts feature routers for all application
// areas: home/join/contact, login, and the signed-in pages (dashboard,
// members, finance, Blessed Mind, announcements, events).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()

	// Global session middleware: makes the signed-in user available to all
	// handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser(deps.Sessions))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Gateway, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages: landing, join, contact
	homeHandler := homefeature.NewHandler(deps.Members, deps.Org, deps.Flash, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Sessions, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(deps.Sessions, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Account: settings behind sign-in, password reset public
	accountHandler := accountfeature.NewHandler(deps.Sessions, deps.Flash, logger)
	r.Mount("/settings", accountfeature.SettingsRoutes(accountHandler))
	r.Mount("/forgot-password", accountfeature.ForgotPasswordRoutes(accountHandler))
	r.Mount("/reset-password", accountfeature.ResetPasswordRoutes(accountHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)

	// Signed-in area
	dashboardHandler := dashboardfeature.NewHandler(deps.Members, deps.Finance, deps.Org, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	membersHandler := membersfeature.NewHandler(deps.Members, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler))

	financeHandler := financefeature.NewHandler(deps.Finance, deps.Flash, logger)
	r.Mount("/finance", financefeature.Routes(financeHandler))

	blessedMindHandler := blessedmindfeature.NewHandler(deps.Projects, deps.Flash, logger)
	r.Mount("/blessedmind", blessedmindfeature.Routes(blessedMindHandler))

	announcementsHandler := announcementsfeature.NewHandler(deps.Org, logger)
	r.Mount("/announcements", announcementsfeature.Routes(announcementsHandler))

	eventsHandler := eventsfeature.NewHandler(deps.Org, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	return r, nil
}
