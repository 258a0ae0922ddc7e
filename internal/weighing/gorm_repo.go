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

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// Row is the embedded store representation of a weighing.
type Row struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UserNickname string    `gorm:"not null;index:ix_weighing_user"`
	Weight       float64   `gorm:"not null"`
	WeighingDate time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (Row) TableName() string {
	return "weighing"
}

func (row Row) weight() Weight {
	return Weight{
		ID:           row.ID,
		UserNickname: row.UserNickname,
		Weight:       row.Weight,
		WeighingDate: format.DateOf(row.WeighingDate),
		CreatedAt:    row.CreatedAt.UTC(),
	}
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(gdb *gorm.DB) *GormRepo {
	return &GormRepo{
		db: gdb,
	}
}

func (r *GormRepo) Create(ctx context.Context, weight Weight) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.gorm.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if weight.CreatedAt.IsZero() {
		weight.CreatedAt = time.Now().UTC()
	}

	row := Row{
		UserNickname: weight.UserNickname,
		Weight:       weight.Weight,
		WeighingDate: format.DateOf(weight.WeighingDate),
		CreatedAt:    weight.CreatedAt,
	}
	if err := db.GormFrom(ctx, r.db).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert weighing: %w", err)
	}

	weight.ID = row.ID
	span.SetAttributes(attribute.Int64("weighing.id", weight.ID))
	return &weight, nil
}

func (r *GormRepo) Read(ctx context.Context, id int64) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.gorm.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()
	span.SetAttributes(attribute.Int64("id", id))

	return r.read(db.GormFrom(ctx, r.db), id)
}

func (r *GormRepo) read(tx *gorm.DB, id int64) (*Weight, error) {
	var row Row
	if err := tx.Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	w := row.weight()
	return &w, nil
}

func (r *GormRepo) Update(ctx context.Context, patch Patch) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.gorm.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()

	if patch.ID == 0 {
		return nil, store.ErrMissingID
	}
	span.SetAttributes(attribute.Int64("id", patch.ID))

	tx := db.GormFrom(ctx, r.db)
	w, err := r.read(tx, patch.ID)
	if err != nil {
		return nil, err
	}

	patch.Apply(w)

	res := tx.Model(&Row{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"weight":        w.Weight,
			"weighing_date": format.DateOf(w.WeighingDate),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return w, nil
}

func (r *GormRepo) Delete(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.gorm.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	res := db.GormFrom(ctx, r.db).Where("id = ?", id).Delete(&Row{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) FetchByUsername(ctx context.Context, nickname string, order []store.Order) (_ []Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weighing.gorm.fetch-by-username")
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

	var rows []Row
	if err := db.GormFrom(ctx, r.db).
		Where("user_nickname = ?", nickname).
		Order(orderClause).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	weights := make([]Weight, 0, len(rows))
	for _, row := range rows {
		weights = append(weights, row.weight())
	}

	span.SetAttributes(attribute.Int("count", len(weights)))
	return weights, nil
}
