package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/format"
	"github.com/2beens/eridanus/internal/stats"
	"github.com/2beens/eridanus/internal/telemetry/metrics"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/weighing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrInvalidFolder = errors.New("invalid import folder")
	ErrInvalidCSV    = errors.New("invalid csv")
)

var folderNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// Audit reports what an import did.
type Audit struct {
	Source          string
	Folder          string
	WeightFile      string
	WeightsImported int
	RunFile         string
	RunsImported    int
	RunFileMissing  bool
}

func (a Audit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source: %s\n", a.Source)
	fmt.Fprintf(&sb, "folder: %s\n", a.Folder)
	fmt.Fprintf(&sb, "weight file: %s, imported: %d\n", a.WeightFile, a.WeightsImported)
	if a.RunFileMissing {
		fmt.Fprintf(&sb, "run file: %s, not found, skipped\n", a.RunFile)
	} else {
		fmt.Fprintf(&sb, "run file: %s, imported: %d\n", a.RunFile, a.RunsImported)
	}
	return sb.String()
}

type Importer struct {
	runs           runsRepo
	weights        weightsRepo
	source         BlobSource
	metricsManager *metrics.Manager
}

func NewImporter(runs runsRepo, weights weightsRepo, source BlobSource, metricsManager *metrics.Manager) *Importer {
	return &Importer{
		runs:           runs,
		weights:        weights,
		source:         source,
		metricsManager: metricsManager,
	}
}

// Import loads import/{folder}/weight.csv and, when present, import/{folder}/run.csv.
// Every imported record is owned by nickname, whatever the file says. A file is
// fully parsed before any of its records is stored.
func (i *Importer) Import(ctx context.Context, folder, nickname string) (_ Audit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("folder", folder))

	audit := Audit{
		Source:     i.source.String(),
		Folder:     folder,
		WeightFile: "import/" + folder + "/weight.csv",
		RunFile:    "import/" + folder + "/run.csv",
	}
	if folder == "." || folder == ".." || !folderNameRegex.MatchString(folder) {
		return audit, fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}

	content, err := i.source.Read(ctx, audit.WeightFile)
	if err != nil {
		return audit, err
	}
	weights, err := ParseWeightsCSV(content, nickname)
	if err != nil {
		return audit, fmt.Errorf("%s: %w", audit.WeightFile, err)
	}
	for _, w := range weights {
		if _, err := i.weights.Create(ctx, w); err != nil {
			return audit, fmt.Errorf("store weighing: %w", err)
		}
		audit.WeightsImported++
	}
	i.countImported("weighing", audit.WeightsImported)

	content, err = i.source.Read(ctx, audit.RunFile)
	if errors.Is(err, ErrBlobNotFound) {
		log.Debugf("import %s: no run file", folder)
		audit.RunFileMissing = true
		return audit, nil
	}
	if err != nil {
		return audit, err
	}
	runs, err := ParseRunsCSV(content, nickname)
	if err != nil {
		return audit, fmt.Errorf("%s: %w", audit.RunFile, err)
	}
	for _, r := range runs {
		if _, err := i.runs.Create(ctx, r); err != nil {
			return audit, fmt.Errorf("store run: %w", err)
		}
		audit.RunsImported++
	}
	i.countImported(string(activities.KindRunning), audit.RunsImported)

	return audit, nil
}

func (i *Importer) countImported(kind string, count int) {
	if i.metricsManager != nil {
		i.metricsManager.CounterRecordsImported.WithLabelValues(kind).Add(float64(count))
	}
}

// ParseWeightsCSV reads an exported weight file. The weighing date is the
// date part of creation_datetime.
func ParseWeightsCSV(content []byte, nickname string) ([]weighing.Weight, error) {
	var weights []weighing.Weight
	err := readCSV(content, []string{"weight", "creation_datetime"}, func(line int, get func(string) string) error {
		weight, err := format.ToFloat(get("weight"))
		if err != nil || weight <= 0 {
			return fmt.Errorf("line %d: bad weight %q", line, get("weight"))
		}
		createdAt, err := format.ToDatetime(get("creation_datetime"), format.DatetimeLayout)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		weights = append(weights, weighing.Weight{
			UserNickname: nickname,
			Weight:       weight,
			WeighingDate: format.DateOf(createdAt),
			CreatedAt:    createdAt,
		})
		return nil
	})
	return weights, err
}

// ParseRunsCSV reads an exported run file. Runs without a speed get the derived one,
// runs without creation_datetime get it assigned by the store.
func ParseRunsCSV(content []byte, nickname string) ([]activities.Activity, error) {
	var runs []activities.Activity
	required := []string{"activity_date", "activity_time", "distance"}
	err := readCSV(content, required, func(line int, get func(string) string) error {
		date, err := format.ToDate(get("activity_date"), format.DateLayout)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		tm, err := format.ToTime(get("activity_time"), format.TimeLayout)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		distance, err := format.ToFloat(get("distance"))
		if err != nil || distance < 0 {
			return fmt.Errorf("line %d: bad distance %q", line, get("distance"))
		}
		duration, err := optionalIntColumn(get("duration"))
		if err != nil {
			return fmt.Errorf("line %d: bad duration: %w", line, err)
		}
		calories, err := optionalIntColumn(get("calories"))
		if err != nil {
			return fmt.Errorf("line %d: bad calories: %w", line, err)
		}

		run := activities.Activity{
			Kind:         activities.KindRunning,
			UserNickname: nickname,
			Date:         date,
			Time:         tm,
			Duration:     duration,
			Calories:     calories,
			Notes:        get("notes"),
			Run:          &activities.RunDetails{Distance: distance},
		}
		if s := get("speed"); s != "" {
			speed, err := format.ToFloat(s)
			if err != nil || speed < 0 {
				return fmt.Errorf("line %d: bad speed %q", line, s)
			}
			run.Run.Speed = &speed
		} else if speed, ok := stats.DeriveSpeed(distance, duration); ok {
			run.Run.Speed = &speed
		}
		if c := get("creation_datetime"); c != "" {
			createdAt, err := format.ToDatetime(c, format.DatetimeLayout)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			run.CreatedAt = createdAt
		}

		runs = append(runs, run)
		return nil
	})
	return runs, err
}

// readCSV walks the rows of a headed csv file, giving access to the cells by column name.
func readCSV(content []byte, required []string, row func(line int, get func(string) string) error) error {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty file", ErrInvalidCSV)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCSV, err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("%w: missing column %s", ErrInvalidCSV, name)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidCSV, err)
		}

		get := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		if err := row(line, get); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidCSV, err)
		}
	}
}

func optionalIntColumn(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, fmt.Errorf("negative value %d", i)
	}
	return &i, nil
}
