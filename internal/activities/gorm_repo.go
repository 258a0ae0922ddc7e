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

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// sortable text form of the time of day
const rowTimeLayout = "15:04:05.000000"

// Row is the embedded store representation of an activity.
type Row struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Kind         string    `gorm:"size:16;not null;index:ix_activity_user_kind,priority:2"`
	UserNickname string    `gorm:"not null;index:ix_activity_user_kind,priority:1"`
	ActivityDate time.Time `gorm:"not null"`
	ActivityTime string    `gorm:"size:15;not null"`
	Duration     *int
	Calories     *int
	Notes        string `gorm:"not null;default:''"`
	Count        *int
	Distance     *float64
	Speed        *float64
	CreatedAt    time.Time `gorm:"not null"`
}

func (Row) TableName() string {
	return "activity"
}

func rowFromActivity(a Activity) Row {
	count, distance, speed := kindColumns(a)
	return Row{
		ID:           a.ID,
		Kind:         string(a.Kind),
		UserNickname: a.UserNickname,
		ActivityDate: format.DateOf(a.Date),
		ActivityTime: format.TimeOf(a.Time).Format(rowTimeLayout),
		Duration:     a.Duration,
		Calories:     a.Calories,
		Notes:        a.Notes,
		Count:        count,
		Distance:     distance,
		Speed:        speed,
		CreatedAt:    a.CreatedAt,
	}
}

func (row Row) activity() (Activity, error) {
	tm, err := format.ToTime(row.ActivityTime, rowTimeLayout)
	if err != nil {
		return Activity{}, err
	}
	a := Activity{
		ID:           row.ID,
		Kind:         Kind(row.Kind),
		UserNickname: row.UserNickname,
		Date:         format.DateOf(row.ActivityDate),
		Time:         tm,
		Duration:     row.Duration,
		Calories:     row.Calories,
		Notes:        row.Notes,
		CreatedAt:    row.CreatedAt.UTC(),
	}
	setKindColumns(&a, row.Count, row.Distance, row.Speed)
	return a, nil
}

// GormRepo stores the activities of a single kind in the embedded sqlite store.
type GormRepo struct {
	db   *gorm.DB
	kind Kind
}

func NewGormRepo(gdb *gorm.DB, kind Kind) *GormRepo {
	return &GormRepo{
		db:   gdb,
		kind: kind,
	}
}

func (r *GormRepo) Create(ctx context.Context, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.gorm.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activity.Kind = r.kind
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	row := rowFromActivity(activity)
	row.ID = 0
	if err := db.GormFrom(ctx, r.db).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}

	activity.ID = row.ID
	span.SetAttributes(attribute.Int64("activity.id", activity.ID))
	return &activity, nil
}

func (r *GormRepo) Read(ctx context.Context, id int64) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.gorm.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()
	span.SetAttributes(attribute.Int64("id", id))

	return r.read(db.GormFrom(ctx, r.db), id)
}

func (r *GormRepo) read(tx *gorm.DB, id int64) (*Activity, error) {
	var row Row
	if err := tx.Where("id = ? AND kind = ?", id, string(r.kind)).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	activity, err := row.activity()
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *GormRepo) Update(ctx context.Context, patch Patch) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.gorm.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, ignoreNotFound(err))
	}()

	if patch.ID == 0 {
		return nil, store.ErrMissingID
	}
	span.SetAttributes(attribute.Int64("id", patch.ID))

	tx := db.GormFrom(ctx, r.db)
	activity, err := r.read(tx, patch.ID)
	if err != nil {
		return nil, err
	}

	patch.Apply(activity)

	row := rowFromActivity(*activity)
	res := tx.Model(&Row{}).
		Where("id = ? AND kind = ?", activity.ID, string(r.kind)).
		Updates(map[string]any{
			"activity_date": row.ActivityDate,
			"activity_time": row.ActivityTime,
			"duration":      row.Duration,
			"calories":      row.Calories,
			"notes":         row.Notes,
			"count":         row.Count,
			"distance":      row.Distance,
			"speed":         row.Speed,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return activity, nil
}

func (r *GormRepo) Delete(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.gorm.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	res := db.GormFrom(ctx, r.db).
		Where("id = ? AND kind = ?", id, string(r.kind)).
		Delete(&Row{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) FetchByUsername(ctx context.Context, nickname string, order []store.Order) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.gorm.fetch-by-username")
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
		Where("user_nickname = ? AND kind = ?", nickname, string(r.kind)).
		Order(orderClause).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(rows))
	for _, row := range rows {
		a, err := row.activity()
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	span.SetAttributes(attribute.Int("count", len(activities)))
	return activities, nil
}
