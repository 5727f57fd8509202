package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
)

// AnalyticsService answers funnel queries and exports reports.
type AnalyticsService interface {
	AverageDwellPerScreen(ctx context.Context) ([]model.ScreenDwell, error)
	DropOffs(ctx context.Context, idleMinutes int) ([]model.DropOff, error)
	ExportFunnelReport(ctx context.Context, idleMinutes int) (string, error)
	FetchFunnelReport(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFunnelReport(ctx context.Context, key string) error
}

// Analytics handles HTTP endpoints for funnel analytics.
type Analytics struct {
	service AnalyticsService
	logger  *logger.Logger
}

// NewAnalytics creates a new Analytics handler.
func NewAnalytics(service AnalyticsService, logger *logger.Logger) *Analytics {
	return &Analytics{
		service: service,
		logger:  logger,
	}
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// AverageScreenTime handles GET /api/analytics/average-screen-time.
func (h *Analytics) AverageScreenTime(w http.ResponseWriter, r *http.Request) {
	dwells, err := h.service.AverageDwellPerScreen(r.Context())
	if err != nil {
		h.logger.Error("Analytics handler: average screen time failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dataResponse{Success: true, Data: dwells})
}

// DropOffs handles GET /api/analytics/screen-drop-off?idleMinutes=N.
func (h *Analytics) DropOffs(w http.ResponseWriter, r *http.Request) {
	idleMinutes, err := idleMinutesParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	dropOffs, err := h.service.DropOffs(r.Context(), idleMinutes)
	if err != nil {
		h.logger.Error("Analytics handler: drop-offs failed",
			"idle_minutes", idleMinutes,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dataResponse{Success: true, Data: dropOffs})
}

type exportResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Export handles POST /api/analytics/export?idleMinutes=N.
func (h *Analytics) Export(w http.ResponseWriter, r *http.Request) {
	idleMinutes, err := idleMinutesParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	key, err := h.service.ExportFunnelReport(r.Context(), idleMinutes)
	if err != nil {
		h.logger.Error("Analytics handler: report export failed",
			"idle_minutes", idleMinutes,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, exportResponse{Success: true, Key: key})
}

// DownloadReport handles GET /api/analytics/export/{key...}.
func (h *Analytics) DownloadReport(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	reader, err := h.service.FetchFunnelReport(r.Context(), key)
	if err != nil {
		h.logger.Error("Analytics handler: report download failed",
			"key", key,
			"error", err.Error())
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Analytics handler: report stream interrupted",
			"key", key,
			"error", err.Error())
	}
}

// DeleteReport handles DELETE /api/analytics/export/{key...}.
func (h *Analytics) DeleteReport(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.service.DeleteFunnelReport(r.Context(), key); err != nil {
		h.logger.Error("Analytics handler: report delete failed",
			"key", key,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Report deleted."})
}

func idleMinutesParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("idleMinutes")
	if raw == "" {
		return 0, fmt.Errorf("%w: missing idleMinutes query parameter", model.ErrInvalidParameter)
	}

	idleMinutes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: idleMinutes must be an integer", model.ErrInvalidParameter)
	}
	if idleMinutes < 0 {
		return 0, fmt.Errorf("%w: idleMinutes must be non-negative", model.ErrInvalidParameter)
	}

	return idleMinutes, nil
}
