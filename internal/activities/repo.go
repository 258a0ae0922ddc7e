package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/eridanus/internal/db"
	"github.com/2beens/eridanus/internal/format"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel/attribute"
)

const activityColumns = `id, kind, user_nickname, activity_date, activity_time, duration, calories, notes, count, distance, speed, created_at`

var orderableColumns = map[string]bool{
	"id":            true,
	"activity_date": true,
	"activity_time": true,
	"duration":      true,
	"calories":      true,
	"distance":      true,
	"created_at":    true,
}

// DefaultOrder is newest first: by date, then time of day.
var DefaultOrder = []store.Order{
	store.Desc("activity_date"),
	store.Desc("activity_time"),
}

// Repo stores the activities of a single kind in postgres.
type Repo struct {
	pool db.Querier
	kind Kind
}

func NewRepo(pool db.Querier, kind Kind) *Repo {
	return &Repo{
		pool: pool,
		kind: kind,
	}
}

func (r *Repo) Create(ctx context.Context, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("kind", string(r.kind)))

	activity.Kind = r.kind
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	count, distance, speed := kindColumns(activity)
	row := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`INSERT INTO activity
				(kind, user_nickname, activity_date, activity_time, duration, calories, notes, count, distance, speed, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id;`,
		string(activity.Kind), activity.UserNickname,
		pgDate(activity.Date), pgTime(activity.Time),
		activity.Duration, activity.Calories, activity.Notes,
		count, distance, speed,
		activity.CreatedAt,
	)
	if err := row.Scan(&activity.ID); err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}

	span.SetAttributes(attribute.Int64("activity.id", activity.ID))
	return &activity, nil
}

func (r *Repo) Read(ctx context.Context, id int64) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()
	span.SetAttributes(attribute.Int64("id", id))
	span.SetAttributes(attribute.String("kind", string(r.kind)))

	return r.read(ctx, db.QuerierFrom(ctx, r.pool), id)
}

func (r *Repo) read(ctx context.Context, q db.Querier, id int64) (*Activity, error) {
	rows, err := q.Query(
		ctx,
		`SELECT `+activityColumns+` FROM activity WHERE id = $1 AND kind = $2;`,
		id, string(r.kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}
	if len(activities) != 1 {
		return nil, store.ErrNotFound
	}

	return &activities[0], nil
}

// Update merges the patch into the stored record. Concurrent edits are not
// reconciled, the last write wins.
func (r *Repo) Update(ctx context.Context, patch Patch) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()
	span.SetAttributes(attribute.String("kind", string(r.kind)))

	if patch.ID == 0 {
		return nil, store.ErrMissingID
	}
	span.SetAttributes(attribute.Int64("id", patch.ID))

	q := db.QuerierFrom(ctx, r.pool)
	activity, err := r.read(ctx, q, patch.ID)
	if err != nil {
		return nil, err
	}

	patch.Apply(activity)

	count, distance, speed := kindColumns(*activity)
	tag, err := q.Exec(
		ctx,
		`UPDATE activity SET
				activity_date = $1, activity_time = $2, duration = $3, calories = $4, notes = $5,
				count = $6, distance = $7, speed = $8
			WHERE id = $9 AND kind = $10;`,
		pgDate(activity.Date), pgTime(activity.Time),
		activity.Duration, activity.Calories, activity.Notes,
		count, distance, speed,
		activity.ID, string(r.kind),
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// deleted in the meantime
		return nil, store.ErrNotFound
	}

	return activity, nil
}

// Delete reports whether a record was removed. Deleting a missing id is a no-op.
func (r *Repo) Delete(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))
	span.SetAttributes(attribute.String("kind", string(r.kind)))

	tag, err := db.QuerierFrom(ctx, r.pool).Exec(
		ctx,
		`DELETE FROM activity WHERE id = $1 AND kind = $2;`,
		id, string(r.kind),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FetchByUsername returns all activities of the user in the given order, DefaultOrder when empty.
func (r *Repo) FetchByUsername(ctx context.Context, nickname string, order []store.Order) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.fetch-by-username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("kind", string(r.kind)))

	if len(order) == 0 {
		order = DefaultOrder
	}
	orderClause, err := store.OrderClause(order, orderableColumns)
	if err != nil {
		return nil, err
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(
		ctx,
		`SELECT `+activityColumns+`
			FROM activity
			WHERE user_nickname = $1 AND kind = $2
			ORDER BY `+orderClause+`;`,
		nickname, string(r.kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(activities)))
	return activities, nil
}

func (r *Repo) rows2activities(rows pgx.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		var (
			activity Activity
			kind     string
			tm       pgtype.Time
			count    *int
			distance *float64
			speed    *float64
		)
		if err := rows.Scan(
			&activity.ID, &kind, &activity.UserNickname,
			&activity.Date, &tm,
			&activity.Duration, &activity.Calories, &activity.Notes,
			&count, &distance, &speed,
			&activity.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		activity.Kind = Kind(kind)
		activity.Date = format.DateOf(activity.Date)
		activity.Time = format.TimeFromMicros(tm.Microseconds)
		setKindColumns(&activity, count, distance, speed)
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

// kindColumns splits the kind specific part of the record into its columns.
func kindColumns(a Activity) (count *int, distance *float64, speed *float64) {
	if a.Kind.Counted() {
		return a.Count, nil, nil
	}
	if a.Run == nil {
		return nil, nil, nil
	}
	if a.Run.DistanceMissing {
		return nil, nil, a.Run.Speed
	}
	d := a.Run.Distance
	return nil, &d, a.Run.Speed
}

func setKindColumns(a *Activity, count *int, distance *float64, speed *float64) {
	if a.Kind.Counted() {
		a.Count = count
		return
	}
	run := &RunDetails{Speed: speed, DistanceMissing: distance == nil}
	if distance != nil {
		run.Distance = *distance
	}
	a.Run = run
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: format.DateOf(t), Valid: true}
}

func pgTime(t time.Time) pgtype.Time {
	return pgtype.Time{Microseconds: format.TimeOfDayMicros(t), Valid: true}
}

// not found is an expected outcome, not a span error
func ignoreNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
