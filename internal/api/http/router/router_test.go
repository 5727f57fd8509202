package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/sleeptracker-server/internal/api/http/context"
	"github.com/dtroode/sleeptracker-server/internal/model"
	"github.com/dtroode/sleeptracker-server/internal/service"
	"github.com/dtroode/sleeptracker-server/internal/testutil"
	"github.com/dtroode/sleeptracker-server/internal/token"
)

type stubOnboardingService struct{}

func (stubOnboardingService) SubmitStep(context.Context, service.SubmitStepParams) (service.SubmitStepResult, error) {
	return service.SubmitStepResult{NextScreen: model.ScreenDone, Message: "ok"}, nil
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) AverageDwellPerScreen(context.Context) ([]model.ScreenDwell, error) {
	return []model.ScreenDwell{}, nil
}

func (stubAnalyticsService) DropOffs(context.Context, int) ([]model.DropOff, error) {
	return []model.DropOff{}, nil
}

func (stubAnalyticsService) ExportFunnelReport(context.Context, int) (string, error) {
	return "funnel-reports/r.json", nil
}

func (stubAnalyticsService) FetchFunnelReport(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(`{"key":"` + key + `"}`)), nil
}

func (stubAnalyticsService) DeleteFunnelReport(context.Context, string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) SignUp(context.Context, service.SignUpParams) (service.SignUpResult, error) {
	return service.SignUpResult{}, nil
}

func (stubAuthService) SignIn(context.Context, string, string) (service.SignInResult, error) {
	return service.SignInResult{Token: "t"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, model.TokenManager) {
	t.Helper()
	tokenManager := token.NewJWT("test-secret", time.Hour)
	r := New(
		stubOnboardingService{},
		stubAnalyticsService{},
		stubAuthService{},
		tokenManager,
		httpctx.NewManager(),
		testutil.MakeNoopLogger(),
	)
	return r.Register(), tokenManager
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodPost, path: "/api/onboarding/step", body: `{}`},
		{method: http.MethodPost, path: "/api/auth/signup", body: `{}`},
		{method: http.MethodPost, path: "/api/auth/signin", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.NotEqual(t, http.StatusNotFound, w.Code)
			assert.NotEqual(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_AnalyticsRequiresAdmin(t *testing.T) {
	h, tokenManager := newTestRouter(t)

	adminToken, err := tokenManager.Generate(model.TokenClaims{Nickname: "ops@sleeptracker.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	userToken, err := tokenManager.Generate(model.TokenClaims{Nickname: "alice", Role: model.RoleUser})
	require.NoError(t, err)

	routes := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/analytics/average-screen-time"},
		{method: http.MethodGet, path: "/api/analytics/screen-drop-off?idleMinutes=30"},
		{method: http.MethodPost, path: "/api/analytics/export?idleMinutes=30"},
		{method: http.MethodGet, path: "/api/analytics/export/funnel-reports/r.json"},
		{method: http.MethodDelete, path: "/api/analytics/export/funnel-reports/r.json"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			t.Run("no token", func(t *testing.T) {
				req := httptest.NewRequest(rt.method, rt.path, nil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			})

			t.Run("user token", func(t *testing.T) {
				req := httptest.NewRequest(rt.method, rt.path, nil)
				req.Header.Set("Authorization", "Bearer "+userToken)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				assert.Equal(t, http.StatusForbidden, w.Code)
			})

			t.Run("admin token", func(t *testing.T) {
				req := httptest.NewRequest(rt.method, rt.path, nil)
				req.Header.Set("Authorization", "Bearer "+adminToken)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				assert.Equal(t, http.StatusOK, w.Code)
			})
		})
	}
}

func TestRouter_ReportKeyWithSlashes(t *testing.T) {
	// Report keys carry a path prefix, so the route must capture the full
	// remainder of the URL, not a single segment.
	h, tokenManager := newTestRouter(t)

	adminToken, err := tokenManager.Generate(model.TokenClaims{Nickname: "ops@sleeptracker.com", Role: model.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/export/funnel-reports/20250601T220000Z-abc.json", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"funnel-reports/20250601T220000Z-abc.json"}`, w.Body.String())
}

func TestRouter_MethodMismatch(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding/step", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
