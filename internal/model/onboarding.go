package model

import (
	"context"
	"time"
)

// OnboardingStore defines persistence operations for onboarding progress.
type OnboardingStore interface {
	// UpsertStep atomically merges the answer into the progress record for
	// identity, creating the record on first submission.
	UpsertStep(ctx context.Context, identity string, step Step, answer StepAnswer, nextScreen string) (Progress, error)
	GetByIdentity(ctx context.Context, identity string) (Progress, error)
	// Rekey renames the record keyed by oldIdentity to newIdentity.
	Rekey(ctx context.Context, oldIdentity, newIdentity string) (Progress, error)
	// DropOffs counts non-terminal records idle for at least the given duration,
	// grouped by next screen, ordered by count descending.
	DropOffs(ctx context.Context, idleFor time.Duration) ([]DropOff, error)
}

// Progress is one participant's onboarding progress record, keyed by identity.
type Progress struct {
	Identity   string
	Responses  map[Step]StepAnswer
	NextScreen string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Done reports whether the participant has completed every step.
func (p Progress) Done() bool {
	return p.NextScreen == ScreenDone
}

// DropOff is the number of participants stalled on one screen.
type DropOff struct {
	Screen       Step  `json:"screen"`
	DropOffCount int64 `json:"dropOffCount"`
}

// StepMeta carries the client-reported dwell markers for a submitted step.
type StepMeta struct {
	EnteredAt time.Time
	ExitedAt  time.Time
}
