package admin

import (
	"context"
	"fmt"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// BackfillSpeed stores the derived speed on every run of the user that has
// none stored, returning how many runs were updated. Runs whose speed cannot
// be derived are left alone.
func BackfillSpeed(ctx context.Context, runs runsRepo, nickname string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.backfill-speed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	list, err := runs.FetchByUsername(ctx, nickname, activities.DefaultOrder)
	if err != nil {
		return 0, fmt.Errorf("fetch runs: %w", err)
	}

	updated := 0
	for _, r := range list {
		if r.Run == nil || r.Run.Speed != nil {
			continue
		}
		speed, ok := r.Speed()
		if !ok {
			log.Debugf("backfill speed: run %d has no duration or distance, skipped", r.ID)
			continue
		}
		if _, err := runs.Update(ctx, activities.Patch{ID: r.ID, Speed: &speed}); err != nil {
			return updated, fmt.Errorf("update run %d: %w", r.ID, err)
		}
		updated++
	}

	span.SetAttributes(attribute.Int("updated", updated))
	return updated, nil
}
