package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/repready/backend/internal/telemetry/tracing"
)

// Repo stores the single recovery settings row. There is exactly one
// athlete per deployment, so the table is a singleton with id 1.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const settingsRowID = 1

// Get returns the stored settings, or the defaults when nothing was
// saved yet.
func (r *Repo) Get(ctx context.Context) (_ Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var s Settings
	err = r.db.QueryRow(ctx,
		`SELECT base_rest_interval_hours, experience_level, sleep_adjustment_enabled, updated_at
			FROM recovery_settings
			WHERE id = $1`,
		settingsRowID,
	).Scan(&s.BaseRestIntervalHours, &s.ExperienceLevel, &s.SleepAdjustmentEnabled, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Update upserts the settings row and returns the stored value.
func (r *Repo) Update(ctx context.Context, s Settings) (_ Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO recovery_settings
				(id, base_rest_interval_hours, experience_level, sleep_adjustment_enabled, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (id) DO UPDATE SET
				base_rest_interval_hours = EXCLUDED.base_rest_interval_hours,
				experience_level = EXCLUDED.experience_level,
				sleep_adjustment_enabled = EXCLUDED.sleep_adjustment_enabled,
				updated_at = NOW()
			RETURNING updated_at`,
		settingsRowID, s.BaseRestIntervalHours, s.ExperienceLevel, s.SleepAdjustmentEnabled,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return s, nil
}
