package sleep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"
)

var (
	ErrLogNotFound = errors.New("sleep log not found")
	ErrLogExists   = errors.New("sleep log for that night already exists")
)

// LogParams filter sleep logs by night.
type LogParams struct {
	From *time.Time
	To   *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, l Log) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sleep.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO sleep_log (night, quality, hours)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
		l.Night, l.Quality, l.Hours,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		// one log per night
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrLogExists
		}
		return nil, fmt.Errorf("failed to add sleep log: %w", err)
	}

	span.SetAttributes(attribute.Int("sleeplog.id", l.ID))

	return &l, nil
}

func (r *Repo) List(ctx context.Context, params LogParams) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sleep.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, night, quality, hours, created_at
			FROM sleep_log
			WHERE ($1::timestamptz IS NULL OR night >= $1)
			  AND ($2::timestamptz IS NULL OR night <= $2)
			ORDER BY night DESC`,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep logs: %w", err)
	}
	defer rows.Close()

	return rows2logs(rows)
}

// Latest returns the n most recent nights, newest first.
func (r *Repo) Latest(ctx context.Context, n int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sleep.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, night, quality, hours, created_at
			FROM sleep_log
			ORDER BY night DESC
			LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest sleep logs: %w", err)
	}
	defer rows.Close()

	return rows2logs(rows)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sleep.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM sleep_log WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sleep log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}

	return nil
}

func rows2logs(rows pgx.Rows) ([]Log, error) {
	logs := make([]Log, 0)
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.Night, &l.Quality, &l.Hours, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep log row: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sleep log rows: %w", err)
	}
	return logs, nil
}
