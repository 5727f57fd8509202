package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VisitStore defines persistence operations for screen analytics samples.
type VisitStore interface {
	Create(ctx context.Context, visit ScreenVisit) error
	// AverageDwellPerScreen computes the mean dwell time and sample count per
	// screen, ordered by screen name ascending.
	AverageDwellPerScreen(ctx context.Context) ([]ScreenDwell, error)
}

// ScreenVisit is one immutable dwell-time sample for a screen.
type ScreenVisit struct {
	ID          uuid.UUID
	Identity    string
	Screen      Step
	StartTime   time.Time
	EndTime     time.Time
	DurationSec int64
	CreatedAt   time.Time
}

// ScreenDwell is the aggregated dwell time for one screen.
type ScreenDwell struct {
	Screen         Step    `json:"screen"`
	AvgDurationSec float64 `json:"avgDurationInSec"`
	TotalResponses int64   `json:"totalResponses"`
}
