package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/weighing"
	"github.com/2beens/eridanus/internal/web"
	"github.com/2beens/eridanus/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=admin_mocks_test.go -package=admin_test

type runsRepo interface {
	Create(ctx context.Context, activity activities.Activity) (*activities.Activity, error)
	Update(ctx context.Context, patch activities.Patch) (*activities.Activity, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]activities.Activity, error)
}

type weightsRepo interface {
	Create(ctx context.Context, weight weighing.Weight) (*weighing.Weight, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]weighing.Weight, error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context, nickname string)
}

const indexPath = "/admin/"

type Handler struct {
	runs        runsRepo
	exporter    *Exporter
	importer    *Importer
	renderer    *web.Renderer
	invalidator statsInvalidator
}

func NewHandler(
	runs runsRepo,
	exporter *Exporter,
	importer *Importer,
	renderer *web.Renderer,
	invalidator statsInvalidator,
) *Handler {
	return &Handler{
		runs:        runs,
		exporter:    exporter,
		importer:    importer,
		renderer:    renderer,
		invalidator: invalidator,
	}
}

func (handler *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	handler.renderer.Render(w, r, http.StatusOK, web.PageAdmin, nil)
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.export")
	defer span.End()

	exportFormat := mux.Vars(r)["format"]
	span.SetAttributes(attribute.String("format", exportFormat))
	if exportFormat != "csv" {
		pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("unsupported export format: %s", exportFormat), http.StatusBadRequest)
		return
	}

	nickname := auth.NicknameFrom(ctx)
	payload, err := handler.exporter.Archive(ctx, nickname)
	if err != nil {
		log.Errorf("export data of %s: %s", nickname, err)
		handler.renderer.ServerError(w, r)
		return
	}

	log.Printf("exported data of %s, %d bytes", nickname, len(payload))
	pkg.WriteAttachment(w, pkg.ContentType.Zip, ExportFilename, payload)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.import")
	defer span.End()

	nickname := auth.NicknameFrom(ctx)
	folder := mux.Vars(r)["folder"]

	audit, err := handler.importer.Import(ctx, folder, nickname)
	if audit.WeightsImported > 0 || audit.RunsImported > 0 {
		handler.invalidator.Invalidate(ctx, nickname)
	}
	switch {
	case errors.Is(err, ErrInvalidFolder):
		pkg.WriteResponse(w, pkg.ContentType.Text, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrBlobNotFound):
		pkg.WriteResponse(w, pkg.ContentType.Text, audit.String()+"error: "+err.Error()+"\n", http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidCSV):
		pkg.WriteResponse(w, pkg.ContentType.Text, audit.String()+"error: "+err.Error()+"\n", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("import %s for %s: %s", folder, nickname, err)
		pkg.WriteResponse(w, pkg.ContentType.Text, audit.String()+"error: import failed\n", http.StatusInternalServerError)
		return
	}

	log.Printf("import %s for %s: %d weighings, %d runs", folder, nickname, audit.WeightsImported, audit.RunsImported)
	pkg.WriteTextResponseOK(w, audit.String())
}

func (handler *Handler) HandleBackfillSpeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.backfill-speed")
	defer span.End()

	nickname := auth.NicknameFrom(ctx)
	updated, err := BackfillSpeed(ctx, handler.runs, nickname)
	if updated > 0 {
		handler.invalidator.Invalidate(ctx, nickname)
	}
	if err != nil {
		log.Errorf("backfill speed for %s: %s", nickname, err)
		web.Redirect(w, r, indexPath, web.FlashError, fmt.Sprintf("Speed backfill failed after %d runs.", updated))
		return
	}

	web.Redirect(w, r, indexPath, web.FlashSuccess, fmt.Sprintf("Speed stored on %d runs.", updated))
}
