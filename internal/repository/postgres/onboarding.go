package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

var _ model.OnboardingStore = (*OnboardingRepository)(nil)

type OnboardingRepository struct {
	db *Connection
}

func NewOnboardingRepository(db *Connection) *OnboardingRepository {
	return &OnboardingRepository{
		db: db,
	}
}

// UpsertStep merges a single validated answer into the progress record for
// identity. The merge happens inside one statement so concurrent submissions
// for the same identity are serialized by the database, and a first submission
// racing another first submission degrades to a plain update.
func (r *OnboardingRepository) UpsertStep(ctx context.Context, identity string, step model.Step, answer model.StepAnswer, nextScreen string) (model.Progress, error) {
	encoded, err := json.Marshal(answer)
	if err != nil {
		return model.Progress{}, fmt.Errorf("failed to encode answer: %w", err)
	}

	query := `INSERT INTO onboarding_progress (identity, responses, next_screen, created_at, updated_at)
			  VALUES ($1, jsonb_build_object($2::text, $3::jsonb), $4, now(), now())
			  ON CONFLICT (identity) DO UPDATE
			  SET responses = onboarding_progress.responses || excluded.responses,
				  next_screen = excluded.next_screen,
				  updated_at = now()
			  RETURNING identity, responses, next_screen, created_at, updated_at`

	progress, err := r.scanProgress(r.db.QueryRow(ctx, query, identity, string(step), encoded, nextScreen))
	if err != nil {
		return model.Progress{}, fmt.Errorf("failed to upsert onboarding step: %w", err)
	}

	return progress, nil
}

func (r *OnboardingRepository) GetByIdentity(ctx context.Context, identity string) (model.Progress, error) {
	query := `SELECT identity, responses, next_screen, created_at, updated_at
			  FROM onboarding_progress WHERE identity = $1`

	progress, err := r.scanProgress(r.db.QueryRow(ctx, query, identity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Progress{}, model.ErrNotFound
		}
		return model.Progress{}, fmt.Errorf("failed to get progress by identity: %w", err)
	}

	return progress, nil
}

// Rekey renames the progress record from oldIdentity to newIdentity. A record
// already present under newIdentity makes the rename fail with
// model.ErrDuplicateIdentity; a missing source record yields model.ErrNotFound.
func (r *OnboardingRepository) Rekey(ctx context.Context, oldIdentity, newIdentity string) (model.Progress, error) {
	query := `UPDATE onboarding_progress SET identity = $2, updated_at = now()
			  WHERE identity = $1
			  RETURNING identity, responses, next_screen, created_at, updated_at`

	progress, err := r.scanProgress(r.db.QueryRow(ctx, query, oldIdentity, newIdentity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Progress{}, model.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return model.Progress{}, model.ErrDuplicateIdentity
		}
		return model.Progress{}, fmt.Errorf("failed to rekey progress: %w", err)
	}

	return progress, nil
}

func (r *OnboardingRepository) DropOffs(ctx context.Context, idleFor time.Duration) ([]model.DropOff, error) {
	query := `SELECT next_screen, COUNT(*)
			  FROM onboarding_progress
			  WHERE next_screen <> $1 AND updated_at <= now() - make_interval(secs => $2)
			  GROUP BY next_screen
			  ORDER BY COUNT(*) DESC, next_screen ASC`

	rows, err := r.db.Query(ctx, query, model.ScreenDone, idleFor.Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to query drop-offs: %w", err)
	}
	defer rows.Close()

	dropOffs := make([]model.DropOff, 0)
	for rows.Next() {
		var d model.DropOff
		if err := rows.Scan(&d.Screen, &d.DropOffCount); err != nil {
			return nil, fmt.Errorf("failed to scan drop-off row: %w", err)
		}
		dropOffs = append(dropOffs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drop-off rows: %w", err)
	}

	return dropOffs, nil
}

func (r *OnboardingRepository) scanProgress(row pgx.Row) (model.Progress, error) {
	var progress model.Progress
	var rawResponses []byte

	err := row.Scan(&progress.Identity, &rawResponses, &progress.NextScreen, &progress.CreatedAt, &progress.UpdatedAt)
	if err != nil {
		return model.Progress{}, err
	}

	responses, err := decodeResponses(rawResponses)
	if err != nil {
		return model.Progress{}, err
	}
	progress.Responses = responses

	return progress, nil
}

func decodeResponses(raw []byte) (map[model.Step]model.StepAnswer, error) {
	var encoded map[model.Step]json.RawMessage
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}

	responses := make(map[model.Step]model.StepAnswer, len(encoded))
	for step, value := range encoded {
		answer, err := model.DecodeAnswer(step, value)
		if err != nil {
			return nil, err
		}
		responses[step] = answer
	}

	return responses, nil
}
