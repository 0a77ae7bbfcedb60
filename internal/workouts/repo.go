package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrWorkoutExists   = errors.New("workout already exists")
)

type WorkoutParams struct {
	From *time.Time
	To   *time.Time
}

type ListParams struct {
	WorkoutParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO workout (performed_at, note, digest)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`,
		workout.PerformedAt, workout.Note, workout.Digest(),
	).Scan(&workout.ID, &workout.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrWorkoutExists
		}
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	insertedSets, err := r.insertSets(ctx, tx, workout.ID, workout.Sets)
	if err != nil {
		return nil, err
	}
	workout.Sets = insertedSets

	span.SetAttributes(attribute.Int("workout.id", workout.ID))
	span.SetAttributes(attribute.Int("workout.sets", len(workout.Sets)))

	return &workout, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	workout := &Workout{}
	err = r.db.QueryRow(ctx, `
		SELECT id, performed_at, note, created_at
		FROM workout
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&workout.ID, &workout.PerformedAt, &workout.Note, &workout.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if workout.Sets, err = r.setsFor(ctx, workout.ID); err != nil {
		return nil, err
	}
	return workout, nil
}

// ListAll returns all non-deleted workouts within the given window,
// oldest first, with their sets attached.
func (r *Repo) ListAll(ctx context.Context, params WorkoutParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, performed_at, note, created_at
		FROM workout
		WHERE deleted_at IS NULL
			AND ($1::timestamptz IS NULL OR performed_at >= $1)
			AND ($2::timestamptz IS NULL OR performed_at <= $2)
		ORDER BY performed_at ASC;
	`, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	if err := r.attachSets(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// List is like ListAll, but returns the specific PAGE of workouts,
// newest first, together with the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.WorkoutParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}
	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))

	rows, err := r.db.Query(ctx, `
		SELECT id, performed_at, note, created_at
		FROM workout
		WHERE deleted_at IS NULL
			AND ($1::timestamptz IS NULL OR performed_at >= $1)
			AND ($2::timestamptz IS NULL OR performed_at <= $2)
		ORDER BY performed_at DESC
		LIMIT $3
		OFFSET $4;
	`, params.From, params.To, limit, offset)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, -1, err
	}
	if err := r.attachSets(ctx, workouts); err != nil {
		return nil, -1, err
	}
	return workouts, countAll, nil
}

func (r *Repo) Update(ctx context.Context, workout *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", workout.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE workout SET performed_at = $1, note = $2, digest = $3
		WHERE id = $4 AND deleted_at IS NULL;
	`, workout.PerformedAt, workout.Note, workout.Digest(), workout.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrWorkoutExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	// edits replace the set rows wholesale
	if _, err = tx.Exec(ctx, `DELETE FROM workout_set WHERE workout_id = $1`, workout.ID); err != nil {
		return fmt.Errorf("delete old sets: %w", err)
	}

	insertedSets, err := r.insertSets(ctx, tx, workout.ID, workout.Sets)
	if err != nil {
		return err
	}
	workout.Sets = insertedSets
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `
		UPDATE workout SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL;
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) Count(ctx context.Context, params WorkoutParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM workout
			WHERE deleted_at IS NULL
			AND ($1::timestamptz IS NULL OR performed_at >= $1)
			AND ($2::timestamptz IS NULL OR performed_at <= $2);
	`, params.From, params.To)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get workouts count")
}

func (r *Repo) insertSets(ctx context.Context, tx pgx.Tx, workoutID int, sets []Set) ([]Set, error) {
	inserted := make([]Set, 0, len(sets))
	for i, s := range sets {
		muscleGroups := s.MuscleGroups
		if muscleGroups == nil {
			muscleGroups = []string{}
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO workout_set
				(workout_id, exercise_id, muscle_groups, side, kilos, reps, seconds, meters, set_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;
		`,
			workoutID, s.ExerciseID, muscleGroups, string(s.Side),
			s.Kilos, s.Reps, s.Seconds, s.Meters, i,
		).Scan(&s.ID); err != nil {
			return nil, fmt.Errorf("insert set %d: %w", i, err)
		}
		s.WorkoutID = workoutID
		s.SetIndex = i
		inserted = append(inserted, s)
	}
	return inserted, nil
}

func (r *Repo) setsFor(ctx context.Context, workoutID int) ([]Set, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, exercise_id, muscle_groups, side, kilos, reps, seconds, meters, set_index
		FROM workout_set
		WHERE workout_id = $1
		ORDER BY set_index, id;
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rows2sets(rows)
}

// attachSets loads the sets for all given workouts with a single query.
func (r *Repo) attachSets(ctx context.Context, workouts []Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(workouts))
	for _, w := range workouts {
		ids = append(ids, int64(w.ID))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, exercise_id, muscle_groups, side, kilos, reps, seconds, meters, set_index
		FROM workout_set
		WHERE workout_id = ANY($1)
		ORDER BY workout_id, set_index, id;
	`, ids)
	if err != nil {
		return fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	sets, err := rows2sets(rows)
	if err != nil {
		return err
	}

	workout2sets := make(map[int][]Set, len(workouts))
	for _, s := range sets {
		workout2sets[s.WorkoutID] = append(workout2sets[s.WorkoutID], s)
	}
	for i := range workouts {
		if ws, ok := workout2sets[workouts[i].ID]; ok {
			workouts[i].Sets = ws
		} else {
			workouts[i].Sets = []Set{}
		}
	}
	return nil
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.PerformedAt, &w.Note, &w.CreatedAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}
	return workouts, nil
}

func rows2sets(rows pgx.Rows) ([]Set, error) {
	var sets []Set
	for rows.Next() {
		var s Set
		var side string
		if err := rows.Scan(
			&s.ID, &s.WorkoutID, &s.ExerciseID, &s.MuscleGroups, &side,
			&s.Kilos, &s.Reps, &s.Seconds, &s.Meters, &s.SetIndex,
		); err != nil {
			return nil, err
		}
		s.Side = Side(side)
		sets = append(sets, s)
	}

	if sets == nil {
		sets = make([]Set, 0)
	}
	return sets, nil
}
