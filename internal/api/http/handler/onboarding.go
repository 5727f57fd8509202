package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
	"github.com/dtroode/sleeptracker-server/internal/service"
)

// OnboardingService submits one onboarding step.
type OnboardingService interface {
	SubmitStep(ctx context.Context, params service.SubmitStepParams) (service.SubmitStepResult, error)
}

// Onboarding handles HTTP endpoints for onboarding step submission.
type Onboarding struct {
	service OnboardingService
	logger  *logger.Logger
}

// NewOnboarding creates a new Onboarding handler.
func NewOnboarding(service OnboardingService, logger *logger.Logger) *Onboarding {
	return &Onboarding{
		service: service,
		logger:  logger,
	}
}

type stepMeta struct {
	EnteredAt time.Time `json:"enteredAt"`
	ExitedAt  time.Time `json:"exitedAt"`
}

type submitStepRequest struct {
	Identity string          `json:"identity"`
	StepKey  string          `json:"stepKey"`
	Data     json.RawMessage `json:"data"`
	Meta     *stepMeta       `json:"meta"`
}

type submitStepResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	NextScreen string `json:"nextScreen"`
}

// SubmitStep handles POST /api/onboarding/step.
func (h *Onboarding) SubmitStep(w http.ResponseWriter, r *http.Request) {
	var req submitStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Onboarding handler: malformed request body",
			"error", err.Error())
		handleError(w, model.ErrMalformedRequest)
		return
	}

	params := service.SubmitStepParams{
		Identity: req.Identity,
		Step:     model.Step(req.StepKey),
		Data:     req.Data,
	}
	if req.Meta != nil {
		params.Meta = &model.StepMeta{
			EnteredAt: req.Meta.EnteredAt,
			ExitedAt:  req.Meta.ExitedAt,
		}
	}

	result, err := h.service.SubmitStep(r.Context(), params)
	if err != nil {
		h.logger.Error("Onboarding handler: step submission failed",
			"identity", req.Identity,
			"step", req.StepKey,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, submitStepResponse{
		Success:    true,
		Message:    result.Message,
		NextScreen: result.NextScreen,
	})
}
