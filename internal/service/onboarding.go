package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
	"github.com/dtroode/sleeptracker-server/internal/task"
	"github.com/dtroode/sleeptracker-server/internal/validator"
)

// visitRecorder persists one screen dwell sample.
type visitRecorder interface {
	RecordVisit(ctx context.Context, identity string, screen model.Step, enteredAt, exitedAt time.Time) error
}

// Onboarding is the onboarding step state machine: it validates a submitted
// answer, computes the next screen and persists progress by identity.
type Onboarding struct {
	progressStore model.OnboardingStore
	recorder      visitRecorder
	tasks         *task.Runner
	logger        *logger.Logger
}

// NewOnboarding creates an Onboarding service.
func NewOnboarding(
	progressStore model.OnboardingStore,
	recorder visitRecorder,
	tasks *task.Runner,
	logger *logger.Logger,
) *Onboarding {
	return &Onboarding{
		progressStore: progressStore,
		recorder:      recorder,
		tasks:         tasks,
		logger:        logger,
	}
}

// SubmitStepParams contains one step submission. Data is the single-field
// object mapping the step identifier to the raw answer.
type SubmitStepParams struct {
	Identity string
	Step     model.Step
	Data     json.RawMessage
	Meta     *model.StepMeta
}

// SubmitStepResult is the outcome of a step submission.
type SubmitStepResult struct {
	NextScreen string
	Message    string
}

// SubmitStep validates and persists one onboarding answer. The returned next
// screen is always derived from the step just submitted, never from a
// previously read snapshot, so interleaved writes for the same identity
// cannot produce a stale transition.
func (s *Onboarding) SubmitStep(ctx context.Context, params SubmitStepParams) (SubmitStepResult, error) {
	s.logger.Debug("Onboarding service: processing step submission",
		"identity", params.Identity,
		"step", string(params.Step))

	if params.Identity == "" || params.Step == "" || len(params.Data) == 0 || params.Meta == nil {
		s.logger.Warn("Onboarding service: step submission missing required fields",
			"identity", params.Identity,
			"step", string(params.Step))
		return SubmitStepResult{}, model.ErrMalformedRequest
	}

	if !params.Step.Valid() {
		s.logger.Warn("Onboarding service: invalid step",
			"step", string(params.Step))
		return SubmitStepResult{}, fmt.Errorf("%w: %s", model.ErrUnknownStep, params.Step)
	}

	step, answer, err := validator.ValidateStep(params.Data)
	if err != nil {
		return SubmitStepResult{}, err
	}

	if step != params.Step {
		return SubmitStepResult{}, &validator.Error{
			Field:   string(step),
			Message: fmt.Sprintf("onboarding data holds %q but step %q was submitted", step, params.Step),
			Raw:     params.Data,
		}
	}

	nextScreen := params.Step.Next()

	saved, err := s.progressStore.UpsertStep(ctx, params.Identity, params.Step, answer, nextScreen)
	if err != nil {
		s.logger.Error("Onboarding service: failed to save step",
			"identity", params.Identity,
			"step", string(params.Step),
			"error", err.Error())
		return SubmitStepResult{}, fmt.Errorf("failed to save onboarding step: %w", err)
	}

	s.logger.Info("Onboarding service: step saved",
		"identity", params.Identity,
		"step", string(params.Step),
		"next_screen", saved.NextScreen)

	// Dwell recording is best effort: it runs off the request path and its
	// failure never fails the submission.
	if !params.Meta.EnteredAt.IsZero() && !params.Meta.ExitedAt.IsZero() {
		identity, step, meta := params.Identity, params.Step, *params.Meta
		s.tasks.Go("screen-analytics", func(ctx context.Context) error {
			return s.recorder.RecordVisit(ctx, identity, step, meta.EnteredAt, meta.ExitedAt)
		})
	}

	return SubmitStepResult{
		NextScreen: saved.NextScreen,
		Message:    progressMessage(params.Step, saved),
	}, nil
}

func progressMessage(step model.Step, saved model.Progress) string {
	if saved.Done() {
		return "All responses recorded. Generating your sleep profile."
	}
	return fmt.Sprintf("Response recorded for %s. Proceed to %s screen.", step, saved.NextScreen)
}
