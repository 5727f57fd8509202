package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
)

// Analytics records screen dwell samples and answers funnel queries.
type Analytics struct {
	visitStore    model.VisitStore
	progressStore model.OnboardingStore
	storage       model.Storage
	logger        *logger.Logger
}

// NewAnalytics creates an Analytics service.
func NewAnalytics(
	visitStore model.VisitStore,
	progressStore model.OnboardingStore,
	storage model.Storage,
	logger *logger.Logger,
) *Analytics {
	return &Analytics{
		visitStore:    visitStore,
		progressStore: progressStore,
		storage:       storage,
		logger:        logger,
	}
}

// RecordVisit persists one immutable dwell sample. The stored duration is the
// floor of the elapsed seconds; a visit whose exit precedes its entry is
// rejected, not clamped.
func (s *Analytics) RecordVisit(ctx context.Context, identity string, screen model.Step, enteredAt, exitedAt time.Time) error {
	if identity == "" || screen == "" || enteredAt.IsZero() || exitedAt.IsZero() {
		return fmt.Errorf("%w: missing screen analytics parameters", model.ErrInvalidInterval)
	}

	elapsed := exitedAt.Sub(enteredAt)
	if elapsed < 0 {
		return fmt.Errorf("%w: screen exited before it was entered", model.ErrInvalidInterval)
	}

	visit := model.ScreenVisit{
		ID:          uuid.New(),
		Identity:    identity,
		Screen:      screen,
		StartTime:   enteredAt,
		EndTime:     exitedAt,
		DurationSec: int64(elapsed / time.Second),
		CreatedAt:   time.Now(),
	}

	if err := s.visitStore.Create(ctx, visit); err != nil {
		return fmt.Errorf("failed to save screen visit: %w", err)
	}

	s.logger.Debug("Analytics service: visit recorded",
		"identity", identity,
		"screen", string(screen),
		"duration_sec", visit.DurationSec)

	return nil
}

// AverageDwellPerScreen returns the mean dwell time and sample count per
// screen, ordered by screen name.
func (s *Analytics) AverageDwellPerScreen(ctx context.Context) ([]model.ScreenDwell, error) {
	dwells, err := s.visitStore.AverageDwellPerScreen(ctx)
	if err != nil {
		s.logger.Error("Analytics service: failed to aggregate dwell times",
			"error", err.Error())
		return nil, fmt.Errorf("failed to aggregate dwell times: %w", err)
	}

	return dwells, nil
}

// DropOffs counts participants stalled short of completion for at least
// idleMinutes, grouped by the screen they never reached.
func (s *Analytics) DropOffs(ctx context.Context, idleMinutes int) ([]model.DropOff, error) {
	if idleMinutes < 0 {
		return nil, fmt.Errorf("%w: idleMinutes must be non-negative", model.ErrInvalidParameter)
	}

	dropOffs, err := s.progressStore.DropOffs(ctx, time.Duration(idleMinutes)*time.Minute)
	if err != nil {
		s.logger.Error("Analytics service: failed to aggregate drop-offs",
			"idle_minutes", idleMinutes,
			"error", err.Error())
		return nil, fmt.Errorf("failed to aggregate drop-offs: %w", err)
	}

	return dropOffs, nil
}

// FunnelReport is the exported snapshot of both funnel aggregations.
type FunnelReport struct {
	GeneratedAt  time.Time           `json:"generatedAt"`
	IdleMinutes  int                 `json:"idleMinutes"`
	AverageDwell []model.ScreenDwell `json:"averageDwell"`
	DropOffs     []model.DropOff     `json:"dropOffs"`
}

// ExportFunnelReport snapshots the funnel aggregations and uploads them as a
// JSON object. It returns the object key.
func (s *Analytics) ExportFunnelReport(ctx context.Context, idleMinutes int) (string, error) {
	s.logger.Debug("Analytics service: exporting funnel report",
		"idle_minutes", idleMinutes)

	dwells, err := s.AverageDwellPerScreen(ctx)
	if err != nil {
		return "", err
	}

	dropOffs, err := s.DropOffs(ctx, idleMinutes)
	if err != nil {
		return "", err
	}

	report := FunnelReport{
		GeneratedAt:  time.Now().UTC(),
		IdleMinutes:  idleMinutes,
		AverageDwell: dwells,
		DropOffs:     dropOffs,
	}

	encoded, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode funnel report: %w", err)
	}

	key := fmt.Sprintf("funnel-reports/%s-%s.json",
		report.GeneratedAt.Format("20060102T150405Z"), uuid.NewString())

	if err := s.storage.Upload(ctx, key, bytes.NewReader(encoded)); err != nil {
		s.logger.Error("Analytics service: failed to upload funnel report",
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("failed to upload funnel report: %w", err)
	}

	s.logger.Info("Analytics service: funnel report exported",
		"key", key)

	return key, nil
}

// FetchFunnelReport streams back a previously exported report. An unknown key
// yields ErrNotFound.
func (s *Analytics) FetchFunnelReport(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: report key is required", model.ErrInvalidParameter)
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Analytics service: failed to check funnel report",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to check funnel report: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: funnel report %q", model.ErrNotFound, key)
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		s.logger.Error("Analytics service: failed to download funnel report",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to download funnel report: %w", err)
	}

	return reader, nil
}

// DeleteFunnelReport removes a previously exported report. An unknown key
// yields ErrNotFound.
func (s *Analytics) DeleteFunnelReport(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: report key is required", model.ErrInvalidParameter)
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Analytics service: failed to check funnel report",
			"key", key,
			"error", err.Error())
		return fmt.Errorf("failed to check funnel report: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: funnel report %q", model.ErrNotFound, key)
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error("Analytics service: failed to delete funnel report",
			"key", key,
			"error", err.Error())
		return fmt.Errorf("failed to delete funnel report: %w", err)
	}

	s.logger.Info("Analytics service: funnel report deleted",
		"key", key)

	return nil
}
