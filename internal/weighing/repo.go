package weighing

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

var orderableColumns = map[string]bool{
	"id":            true,
	"weight":        true,
	"weighing_date": true,
	"created_at":    true,
}

// DefaultOrder is newest first.
var DefaultOrder = []store.Order{
	store.Desc("weighing_date"),
	store.Desc("created_at"),
}

type Repo struct {
	pool db.Querier
}

func NewRepo(pool db.Querier) *Repo {
	return &Repo{
		pool: pool,
	}
}

func (r *Repo) Create(ctx context.Context, weight Weight) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if weight.CreatedAt.IsZero() {
		weight.CreatedAt = time.Now().UTC()
	}

	if err := db.QuerierFrom(ctx, r.pool).QueryRow(
		ctx,
		`INSERT INTO weighing (user_nickname, weight, weighing_date, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		weight.UserNickname, weight.Weight, pgDate(weight.WeighingDate), weight.CreatedAt,
	).Scan(&weight.ID); err != nil {
		return nil, fmt.Errorf("insert weighing: %w", err)
	}

	span.SetAttributes(attribute.Int64("weighing.id", weight.ID))
	return &weight, nil
}

func (r *Repo) Read(ctx context.Context, id int64) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()
	span.SetAttributes(attribute.Int64("id", id))

	return r.read(ctx, db.QuerierFrom(ctx, r.pool), id)
}

func (r *Repo) read(ctx context.Context, q db.Querier, id int64) (*Weight, error) {
	var w Weight
	if err := q.QueryRow(
		ctx,
		`SELECT id, user_nickname, weight, weighing_date, created_at FROM weighing WHERE id = $1;`,
		id,
	).Scan(&w.ID, &w.UserNickname, &w.Weight, &w.WeighingDate, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	w.WeighingDate = format.DateOf(w.WeighingDate)
	return &w, nil
}

func (r *Repo) Update(ctx context.Context, patch Patch) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()

	if patch.ID == 0 {
		return nil, store.ErrMissingID
	}
	span.SetAttributes(attribute.Int64("id", patch.ID))

	q := db.QuerierFrom(ctx, r.pool)
	w, err := r.read(ctx, q, patch.ID)
	if err != nil {
		return nil, err
	}

	patch.Apply(w)

	tag, err := q.Exec(
		ctx,
		`UPDATE weighing SET weight = $1, weighing_date = $2 WHERE id = $3;`,
		w.Weight, pgDate(w.WeighingDate), w.ID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, store.ErrNotFound
	}

	return w, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	tag, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, `DELETE FROM weighing WHERE id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) FetchByUsername(ctx context.Context, nickname string, order []store.Order) (_ []Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.fetch-by-username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(order) == 0 {
		order = DefaultOrder
	}
	orderClause, err := store.OrderClause(order, orderableColumns)
	if err != nil {
		return nil, err
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(
		ctx,
		`SELECT id, user_nickname, weight, weighing_date, created_at
			FROM weighing
			WHERE user_nickname = $1
			ORDER BY `+orderClause+`;`,
		nickname,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weights []Weight
	for rows.Next() {
		var w Weight
		if err := rows.Scan(&w.ID, &w.UserNickname, &w.Weight, &w.WeighingDate, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.WeighingDate = format.DateOf(w.WeighingDate)
		weights = append(weights, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(weights)))
	return weights, nil
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: format.DateOf(t), Valid: true}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
