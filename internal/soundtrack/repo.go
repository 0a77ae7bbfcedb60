package soundtrack

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/repready/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, track Track) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.soundtrack.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO soundtrack (
			workout_id, track_id, artist, album, song, played_at, endpoint
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		track.WorkoutID, track.TrackID, track.Artist, track.Album, track.Song,
		track.PlayedAt, track.Endpoint,
	)
	if err != nil {
		return fmt.Errorf("insert track: %w", err)
	}
	return nil
}

// List returns a page of tracks, most recently played first, plus the
// total count of stored tracks.
func (r *Repo) List(ctx context.Context, page, size int) (_ []Track, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.soundtrack.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if page < 1 {
		return nil, 0, fmt.Errorf("page must be greater than 0")
	}
	if size < 1 {
		return nil, 0, fmt.Errorf("size must be greater than 0")
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM soundtrack`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tracks: %w", err)
	}

	limit := size
	offset := (page - 1) * size

	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, track_id, artist, album, song, played_at, endpoint, created_at
		FROM soundtrack
		ORDER BY played_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	tracks, err := rows2tracks(rows)
	if err != nil {
		return nil, 0, err
	}
	return tracks, total, nil
}

// ListForWorkout returns the soundtrack of one workout, in play order.
func (r *Repo) ListForWorkout(ctx context.Context, workoutID int) (_ []Track, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.soundtrack.listForWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, track_id, artist, album, song, played_at, endpoint, created_at
		FROM soundtrack
		WHERE workout_id = $1
		ORDER BY played_at ASC
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2tracks(rows)
}

func (r *Repo) GetLastPlayedTrackTime(ctx context.Context) (playedAt time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.soundtrack.getLastPlayedTrackTime")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var nullPlayedAt sql.NullTime
	row := r.db.QueryRow(ctx, `
		SELECT MAX(played_at) FROM soundtrack
	`)

	if err := row.Scan(&nullPlayedAt); err != nil {
		return time.Time{}, fmt.Errorf("scan row: %w", err)
	}

	if nullPlayedAt.Valid {
		return nullPlayedAt.Time, nil
	}

	return time.Time{}, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.soundtrack.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `DELETE FROM soundtrack WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}

	return nil
}

func rows2tracks(rows pgx.Rows) ([]Track, error) {
	var tracks []Track
	for rows.Next() {
		var track Track
		if err := rows.Scan(
			&track.ID, &track.WorkoutID, &track.TrackID, &track.Artist, &track.Album,
			&track.Song, &track.PlayedAt, &track.Endpoint, &track.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tracks = append(tracks, track)
	}

	if tracks == nil {
		tracks = make([]Track, 0)
	}
	return tracks, nil
}
