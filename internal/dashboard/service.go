package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/cache"
	"github.com/2beens/eridanus/internal/format"
	"github.com/2beens/eridanus/internal/stats"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/telemetry/metrics"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/weighing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=dashboard_mocks_test.go -package=dashboard_test

// Height of the single user, in meters.
const Height = 1.82

type runsRepo interface {
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]activities.Activity, error)
}

type weightsRepo interface {
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]weighing.Weight, error)
}

type BMI struct {
	Value  float64         `json:"value"`
	Status stats.BMIStatus `json:"status"`
}

type Objectives struct {
	TargetBMI float64 `json:"target_bmi"`
	Weight    float64 `json:"weight"`
}

type View struct {
	BMI        BMI                   `json:"bmi"`
	Running    stats.RunningSummary  `json:"running"`
	Weighing   stats.WeighingSummary `json:"weighing"`
	Objectives Objectives            `json:"objectives"`
}

type Service struct {
	runs           runsRepo
	weights        weightsRepo
	cache          cache.Cache
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	runs runsRepo,
	weights weightsRepo,
	statsCache cache.Cache,
	metricsManager *metrics.Manager,
) *Service {
	if statsCache == nil {
		statsCache = cache.NoopCache{}
	}
	return &Service{
		runs:           runs,
		weights:        weights,
		cache:          statsCache,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// HomeStats composes the dashboard of the user from all of their runs and weighings.
func (s *Service) HomeStats(ctx context.Context, nickname string) (_ *View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.home-stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached, ok := s.cached(ctx, nickname); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		// the view may have been cached before midnight
		if last := cached.Running.DateLastRun; last != nil {
			days := format.DaysBetween(s.now(), *last)
			cached.Running.DaysFromLastRun = &days
		}
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	runs, err := s.runs.FetchByUsername(ctx, nickname, activities.DefaultOrder)
	if err != nil {
		return nil, fmt.Errorf("fetch runs: %w", err)
	}
	weights, err := s.weights.FetchByUsername(ctx, nickname, weighing.DefaultOrder)
	if err != nil {
		return nil, fmt.Errorf("fetch weighings: %w", err)
	}

	view := Compose(runs, weights, s.now())
	s.store(ctx, nickname, view)

	return view, nil
}

// Invalidate drops the cached dashboard, called after any change to the user's records.
func (s *Service) Invalidate(ctx context.Context, nickname string) {
	s.cache.Delete(ctx, cacheKey(nickname))
}

// Compose reduces the records, both ordered newest first, into the dashboard.
func Compose(runs []activities.Activity, weights []weighing.Weight, now time.Time) *View {
	statsRuns := make([]stats.Run, 0, len(runs))
	for _, r := range runs {
		statsRuns = append(statsRuns, r.StatsRun())
	}

	view := &View{
		Running:  stats.RunningStats(statsRuns, now),
		Weighing: stats.WeighingStats(weighing.Weights(weights)),
	}

	var lastWeight float64
	if view.Weighing.LastWeight != nil {
		lastWeight = *view.Weighing.LastWeight
	}

	calculator := stats.NewBMICalculator(lastWeight, Height)
	view.BMI = BMI{
		Value:  calculator.BMI(),
		Status: calculator.Status(),
	}
	view.Objectives = Objectives{
		TargetBMI: stats.TargetBMINormal,
		Weight:    calculator.DesiredWeight(stats.TargetBMINormal),
	}

	return view
}

func (s *Service) cached(ctx context.Context, nickname string) (*View, bool) {
	raw, ok := s.cache.Get(ctx, cacheKey(nickname))
	if !ok {
		s.countCache("miss")
		return nil, false
	}

	var view View
	if err := json.Unmarshal(raw, &view); err != nil {
		log.Errorf("failed to unmarshal cached dashboard of %s: %s", nickname, err)
		s.countCache("miss")
		return nil, false
	}

	s.countCache("hit")
	return &view, true
}

func (s *Service) store(ctx context.Context, nickname string, view *View) {
	raw, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal dashboard of %s: %s", nickname, err)
		return
	}
	s.cache.Set(ctx, cacheKey(nickname), raw)
}

func (s *Service) countCache(result string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterDashboardCache.WithLabelValues(result).Inc()
	}
}

func cacheKey(nickname string) string {
	return "dashboard::" + nickname
}
