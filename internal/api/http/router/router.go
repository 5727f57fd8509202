package router

import (
	"net/http"

	"github.com/dtroode/sleeptracker-server/internal/api/http/handler"
	"github.com/dtroode/sleeptracker-server/internal/api/http/middleware"
	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
)

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	onboardingService handler.OnboardingService
	analyticsService  handler.AnalyticsService
	authService       handler.AuthService
	tokenManager      model.TokenManager
	contextManager    model.ContextManager
	logger            *logger.Logger
}

// New creates a new Router instance.
func New(
	onboardingService handler.OnboardingService,
	analyticsService handler.AnalyticsService,
	authService handler.AuthService,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		onboardingService: onboardingService,
		analyticsService:  analyticsService,
		authService:       authService,
		tokenManager:      tokenManager,
		contextManager:    contextManager,
		logger:            logger,
	}
}

// Register builds the route table. Onboarding and auth endpoints are public;
// analytics endpoints require an authenticated admin.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(r.contextManager, r.logger)

	onboardingHandler := handler.NewOnboarding(r.onboardingService, r.logger)
	analyticsHandler := handler.NewAnalytics(r.analyticsService, r.logger)
	authHandler := handler.NewAuth(r.authService, r.logger)

	admin := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(authorize.Require(h, model.RoleAdmin))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/onboarding/step", onboardingHandler.SubmitStep)
	mux.HandleFunc("POST /api/auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /api/auth/signin", authHandler.SignIn)
	mux.Handle("GET /api/analytics/average-screen-time", admin(analyticsHandler.AverageScreenTime))
	mux.Handle("GET /api/analytics/screen-drop-off", admin(analyticsHandler.DropOffs))
	mux.Handle("POST /api/analytics/export", admin(analyticsHandler.Export))
	mux.Handle("GET /api/analytics/export/{key...}", admin(analyticsHandler.DownloadReport))
	mux.Handle("DELETE /api/analytics/export/{key...}", admin(analyticsHandler.DeleteReport))

	return logging.Handle(mux)
}
