package activities_test

import (
	"context"
	"testing"
	"time"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/db"
	"github.com/2beens/eridanus/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestGormDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:", &activities.Row{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})
	return gdb
}

func TestGormRepo_BasicCRUD(t *testing.T) {
	gdb := newTestGormDB(t)
	repo := activities.NewGormRepo(gdb, activities.KindRunning)
	ctx := context.Background()

	run := activities.Activity{
		UserNickname: testNickname,
		Date:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:         time.Date(1970, 1, 1, 7, 30, 0, 0, time.UTC),
		Duration:     intPtr(30),
		Calories:     intPtr(250),
		Notes:        "park",
		Run:          &activities.RunDetails{Distance: 5},
	}

	created, err := repo.Create(ctx, run)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, activities.KindRunning, created.Kind)
	assert.False(t, created.CreatedAt.IsZero())

	read, err := repo.Read(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, read.ID)
	assert.Equal(t, testNickname, read.UserNickname)
	assert.Equal(t, "2024-03-10", read.Date.Format(time.DateOnly))
	assert.Equal(t, "07:30:00", read.Time.Format(time.TimeOnly))
	assert.Equal(t, 30, *read.Duration)
	assert.Equal(t, 250, *read.Calories)
	assert.Equal(t, "park", read.Notes)
	require.NotNil(t, read.Run)
	assert.Equal(t, 5.0, read.Run.Distance)
	assert.Nil(t, read.Run.Speed)
	assert.Nil(t, read.Count)

	updated, err := repo.Update(ctx, activities.Patch{
		ID:       created.ID,
		Distance: floatPtr(6),
		Speed:    floatPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.Run.Distance)
	assert.Equal(t, 250, *updated.Calories, "not supplied, kept")

	read, err = repo.Read(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, read.Run.Distance)
	require.NotNil(t, read.Run.Speed)
	assert.Equal(t, 12.0, *read.Run.Speed)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "deleting twice is a no-op")

	_, err = repo.Read(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormRepo_Update_Errors(t *testing.T) {
	repo := activities.NewGormRepo(newTestGormDB(t), activities.KindCrunches)
	ctx := context.Background()

	_, err := repo.Update(ctx, activities.Patch{Count: intPtr(1)})
	assert.ErrorIs(t, err, store.ErrMissingID)

	_, err = repo.Update(ctx, activities.Patch{ID: 12345, Count: intPtr(1)})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormRepo_FetchByUsername(t *testing.T) {
	gdb := newTestGormDB(t)
	pushups := activities.NewGormRepo(gdb, activities.KindPushups)
	crunches := activities.NewGormRepo(gdb, activities.KindCrunches)
	ctx := context.Background()

	add := func(repo *activities.GormRepo, nickname string, day, hour, count int) {
		_, err := repo.Create(ctx, activities.Activity{
			UserNickname: nickname,
			Date:         time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Time:         time.Date(1970, 1, 1, hour, 0, 0, 0, time.UTC),
			Count:        intPtr(count),
		})
		require.NoError(t, err)
	}

	add(pushups, testNickname, 1, 8, 10)
	add(pushups, testNickname, 3, 8, 30)
	add(pushups, testNickname, 3, 20, 31)
	add(pushups, testNickname, 2, 9, 20)
	add(pushups, "mallory", 4, 8, 99)
	add(crunches, testNickname, 5, 8, 77)

	list, err := pushups.FetchByUsername(ctx, testNickname, nil)
	require.NoError(t, err)
	require.Len(t, list, 4)
	var counts []int
	for _, a := range list {
		assert.Equal(t, activities.KindPushups, a.Kind)
		assert.Equal(t, testNickname, a.UserNickname)
		counts = append(counts, *a.Count)
	}
	assert.Equal(t, []int{31, 30, 20, 10}, counts)

	list, err = pushups.FetchByUsername(ctx, testNickname, []store.Order{store.Asc("activity_date"), store.Asc("activity_time")})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, 10, *list[0].Count)
	assert.Equal(t, 31, *list[3].Count)

	_, err = pushups.FetchByUsername(ctx, testNickname, []store.Order{store.Desc("notes; DROP TABLE activity")})
	assert.Error(t, err)

	list, err = crunches.FetchByUsername(ctx, "nobody", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGormRepo_KindIsolation(t *testing.T) {
	gdb := newTestGormDB(t)
	pushups := activities.NewGormRepo(gdb, activities.KindPushups)
	crunches := activities.NewGormRepo(gdb, activities.KindCrunches)
	ctx := context.Background()

	created, err := pushups.Create(ctx, activities.Activity{
		UserNickname: testNickname,
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Count:        intPtr(5),
	})
	require.NoError(t, err)

	_, err = crunches.Read(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := crunches.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGormRepo_RunWithoutDistance(t *testing.T) {
	gdb := newTestGormDB(t)
	repo := activities.NewGormRepo(gdb, activities.KindRunning)
	ctx := context.Background()

	created, err := repo.Create(ctx, activities.Activity{
		UserNickname: testNickname,
		Date:         time.Date(2016, 5, 2, 0, 0, 0, 0, time.UTC),
		Time:         time.Date(1970, 1, 1, 7, 0, 0, 0, time.UTC),
		Duration:     intPtr(40),
		Run:          &activities.RunDetails{DistanceMissing: true},
	})
	require.NoError(t, err)

	var row activities.Row
	require.NoError(t, gdb.First(&row, created.ID).Error)
	assert.Nil(t, row.Distance)

	read, err := repo.Read(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, read.Run)
	assert.True(t, read.Run.DistanceMissing)
	assert.Nil(t, read.StatsRun().Distance)
	_, ok := read.Speed()
	assert.False(t, ok)
}
