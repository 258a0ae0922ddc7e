package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Querier is satisfied by both *pgxpool.Pool and the request scoped *pgxpool.Conn.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Sessions opens a store session bound to a request. The returned release
// func must be called exactly once, on every exit path.
type Sessions interface {
	Begin(ctx context.Context) (_ context.Context, release func(), err error)
}

type connCtxKey struct{}
type gormCtxKey struct{}

func WithConn(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, connCtxKey{}, q)
}

// QuerierFrom returns the request scoped connection, or fallback when the
// context carries none (background jobs, tests, cmd tools).
func QuerierFrom(ctx context.Context, fallback Querier) Querier {
	if q, ok := ctx.Value(connCtxKey{}).(Querier); ok && q != nil {
		return q
	}
	return fallback
}

func WithGorm(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, gormCtxKey{}, db)
}

func GormFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if db, ok := ctx.Value(gormCtxKey{}).(*gorm.DB); ok && db != nil {
		return db
	}
	return fallback.WithContext(ctx)
}

type PoolSessions struct {
	pool *pgxpool.Pool
}

func NewPoolSessions(pool *pgxpool.Pool) *PoolSessions {
	return &PoolSessions{pool: pool}
}

func (s *PoolSessions) Begin(ctx context.Context) (context.Context, func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return ctx, func() {}, fmt.Errorf("acquire db conn: %w", err)
	}
	return WithConn(ctx, conn), conn.Release, nil
}

type GormSessions struct {
	db *gorm.DB
}

func NewGormSessions(db *gorm.DB) *GormSessions {
	return &GormSessions{db: db}
}

func (s *GormSessions) Begin(ctx context.Context) (context.Context, func(), error) {
	session := s.db.WithContext(ctx).Session(&gorm.Session{})
	return WithGorm(ctx, session), func() {}, nil
}
