package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

var _ model.VisitStore = (*VisitRepository)(nil)

type VisitRepository struct {
	db *Connection
}

func NewVisitRepository(db *Connection) *VisitRepository {
	return &VisitRepository{
		db: db,
	}
}

func (r *VisitRepository) Create(ctx context.Context, visit model.ScreenVisit) error {
	query := `INSERT INTO screen_visits (id, identity, screen, start_time, end_time, duration_sec, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		visit.ID, visit.Identity, string(visit.Screen), visit.StartTime, visit.EndTime, visit.DurationSec, visit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create screen visit: %w", err)
	}

	return nil
}

func (r *VisitRepository) AverageDwellPerScreen(ctx context.Context) ([]model.ScreenDwell, error) {
	query := `SELECT screen, ROUND(AVG(duration_sec)::numeric, 2)::float8, COUNT(*)
			  FROM screen_visits
			  GROUP BY screen
			  ORDER BY screen ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query average dwell: %w", err)
	}
	defer rows.Close()

	dwells := make([]model.ScreenDwell, 0)
	for rows.Next() {
		var d model.ScreenDwell
		if err := rows.Scan(&d.Screen, &d.AvgDurationSec, &d.TotalResponses); err != nil {
			return nil, fmt.Errorf("failed to scan dwell row: %w", err)
		}
		dwells = append(dwells, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dwell rows: %w", err)
	}

	return dwells, nil
}
