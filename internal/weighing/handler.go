package weighing

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/stats"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/telemetry/metrics"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/web"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=weighing_mocks_test.go -package=weighing_test

type weighingRepo interface {
	Create(ctx context.Context, weight Weight) (*Weight, error)
	Read(ctx context.Context, id int64) (*Weight, error)
	Update(ctx context.Context, patch Patch) (*Weight, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]Weight, error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context, nickname string)
}

const listPath = "/weighings/"

type ListView struct {
	Items     []Weight
	MinWeight *float64
}

type FormView struct {
	ID           int64
	Action       string
	Form         Form
	ErrorMessage string
}

func NewListView(list []Weight) ListView {
	view := ListView{Items: list}
	if len(list) > 0 {
		minWeight := stats.WeighingStats(Weights(list)).Min
		view.MinWeight = &minWeight
	}
	return view
}

type Handler struct {
	repo           weighingRepo
	renderer       *web.Renderer
	invalidator    statsInvalidator
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(
	repo weighingRepo,
	renderer *web.Renderer,
	invalidator statsInvalidator,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		renderer:       renderer,
		invalidator:    invalidator,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weighing.list")
	defer span.End()

	nickname := auth.NicknameFrom(ctx)
	list, err := handler.repo.FetchByUsername(ctx, nickname, DefaultOrder)
	if err != nil {
		log.Errorf("list weighings of %s: %s", nickname, err)
		handler.renderer.ServerError(w, r)
		return
	}

	handler.renderer.Render(w, r, http.StatusOK, web.PageWeighingsList, NewListView(list))
}

func (handler *Handler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.weighing.create-form")
	defer span.End()

	handler.renderer.Render(w, r, http.StatusOK, web.PageWeighingForm, FormView{
		Action: listPath + "create/",
		Form:   NewForm(handler.now()),
	})
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weighing.create")
	defer span.End()

	nickname := auth.NicknameFrom(ctx)
	form := FormFromRequest(r)
	weight, valid := form.Weighing(nickname)
	if !valid {
		handler.renderer.Render(w, r, http.StatusBadRequest, web.PageWeighingForm, FormView{
			Action:       listPath + "create/",
			Form:         form,
			ErrorMessage: "Please fix the highlighted fields.",
		})
		return
	}

	created, err := handler.repo.Create(ctx, weight)
	if err != nil {
		log.Errorf("create weighing for %s: %s", nickname, err)
		handler.renderer.ServerError(w, r)
		return
	}

	log.Debugf("new weighing added for %s: %d", nickname, created.ID)
	if handler.metricsManager != nil {
		handler.metricsManager.CounterRecordsCreated.WithLabelValues("weighing").Inc()
	}
	handler.invalidator.Invalidate(ctx, nickname)

	web.Redirect(w, r, listPath, web.FlashSuccess, "Weighing saved.")
}

func (handler *Handler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weighing.edit-form")
	defer span.End()

	weight, ok := handler.ownedWeight(ctx, w, r)
	if !ok {
		return
	}

	handler.renderer.Render(w, r, http.StatusOK, web.PageWeighingForm, FormView{
		ID:     weight.ID,
		Action: editPath(weight.ID),
		Form:   FormFromWeight(*weight),
	})
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weighing.update")
	defer span.End()

	existing, ok := handler.ownedWeight(ctx, w, r)
	if !ok {
		return
	}

	form := FormFromRequest(r)
	patch, valid := form.Patch(existing.ID)
	if !valid {
		handler.renderer.Render(w, r, http.StatusBadRequest, web.PageWeighingForm, FormView{
			ID:           existing.ID,
			Action:       editPath(existing.ID),
			Form:         form,
			ErrorMessage: "Please fix the highlighted fields.",
		})
		return
	}

	if _, err := handler.repo.Update(ctx, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handler.renderer.NotFound(w, r)
			return
		}
		log.Errorf("update weighing %d: %s", existing.ID, err)
		handler.renderer.ServerError(w, r)
		return
	}

	handler.invalidator.Invalidate(ctx, existing.UserNickname)
	web.Redirect(w, r, listPath, web.FlashSuccess, "Weighing updated.")
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weighing.delete")
	defer span.End()

	id, ok := handler.recordID(w, r)
	if !ok {
		return
	}

	nickname := auth.NicknameFrom(ctx)
	existing, err := handler.repo.Read(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		web.Redirect(w, r, listPath, web.FlashSuccess, "Weighing already deleted.")
		return
	case err != nil:
		log.Errorf("delete weighing %d, read: %s", id, err)
		handler.renderer.ServerError(w, r)
		return
	case existing.UserNickname != nickname:
		handler.renderer.NotFound(w, r)
		return
	}

	deleted, err := handler.repo.Delete(ctx, id)
	if err != nil {
		log.Errorf("delete weighing %d: %s", id, err)
		handler.renderer.ServerError(w, r)
		return
	}

	message := "Weighing deleted."
	if !deleted {
		message = "Weighing already deleted."
	}
	handler.invalidator.Invalidate(ctx, nickname)
	web.Redirect(w, r, listPath, web.FlashSuccess, message)
}

func (handler *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handler.renderer.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func (handler *Handler) ownedWeight(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Weight, bool) {
	id, ok := handler.recordID(w, r)
	if !ok {
		return nil, false
	}

	weight, err := handler.repo.Read(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handler.renderer.NotFound(w, r)
			return nil, false
		}
		log.Errorf("read weighing %d: %s", id, err)
		handler.renderer.ServerError(w, r)
		return nil, false
	}

	if weight.UserNickname != auth.NicknameFrom(ctx) {
		handler.renderer.NotFound(w, r)
		return nil, false
	}

	return weight, true
}

func editPath(id int64) string {
	return listPath + "edit/" + strconv.FormatInt(id, 10) + "/"
}
