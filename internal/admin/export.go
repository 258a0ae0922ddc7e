package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/format"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/weighing"
	"github.com/2beens/eridanus/pkg"
)

const ExportFilename = "eridanus_data.zip"

var (
	runColumns = []string{
		"usernickname", "activity_date", "activity_time", "duration",
		"distance", "speed", "calories", "notes", "creation_datetime",
	}
	weightColumns = []string{"usernickname", "weight", "creation_datetime"}
)

type Exporter struct {
	runs    runsRepo
	weights weightsRepo
}

func NewExporter(runs runsRepo, weights weightsRepo) *Exporter {
	return &Exporter{
		runs:    runs,
		weights: weights,
	}
}

// Archive returns the zip with run.csv and weight.csv of the user.
func (e *Exporter) Archive(ctx context.Context, nickname string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	runs, err := e.runs.FetchByUsername(ctx, nickname, activities.DefaultOrder)
	if err != nil {
		return nil, fmt.Errorf("fetch runs: %w", err)
	}
	weights, err := e.weights.FetchByUsername(ctx, nickname, weighing.DefaultOrder)
	if err != nil {
		return nil, fmt.Errorf("fetch weighings: %w", err)
	}

	runsCSV, err := RunsCSV(runs)
	if err != nil {
		return nil, err
	}
	weightsCSV, err := WeightsCSV(weights)
	if err != nil {
		return nil, err
	}

	return pkg.Zip(
		pkg.ZipEntry{Name: "run.csv", Content: runsCSV},
		pkg.ZipEntry{Name: "weight.csv", Content: weightsCSV},
	)
}

func RunsCSV(runs []activities.Activity) ([]byte, error) {
	records := make([][]string, 0, len(runs)+1)
	records = append(records, runColumns)
	for _, r := range runs {
		var distance, speed string
		if r.Run != nil {
			if !r.Run.DistanceMissing {
				distance = formatFloat(r.Run.Distance)
			}
			if r.Run.Speed != nil {
				speed = formatFloat(*r.Run.Speed)
			}
		}
		records = append(records, []string{
			r.UserNickname,
			r.Date.Format(format.DateLayout),
			r.Time.Format(format.TimeLayout),
			optionalInt(r.Duration),
			distance,
			speed,
			optionalInt(r.Calories),
			r.Notes,
			r.CreatedAt.Format(format.DatetimeLayout),
		})
	}
	return writeCSV(records)
}

func WeightsCSV(weights []weighing.Weight) ([]byte, error) {
	records := make([][]string, 0, len(weights)+1)
	records = append(records, weightColumns)
	for _, w := range weights {
		records = append(records, []string{
			w.UserNickname,
			formatFloat(w.Weight),
			w.CreatedAt.Format(format.DatetimeLayout),
		})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	// excel dialect
	writer.UseCRLF = true
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
