package activities

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/telemetry/metrics"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/web"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=activities_mocks_test.go -package=activities_test

type activitiesRepo interface {
	Create(ctx context.Context, activity Activity) (*Activity, error)
	Read(ctx context.Context, id int64) (*Activity, error)
	Update(ctx context.Context, patch Patch) (*Activity, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]Activity, error)
}

// statsInvalidator drops the cached dashboard of a user after a change to their records.
type statsInvalidator interface {
	Invalidate(ctx context.Context, nickname string)
}

type Handler struct {
	repos          map[Kind]activitiesRepo
	renderer       *web.Renderer
	invalidator    statsInvalidator
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(
	renderer *web.Renderer,
	invalidator statsInvalidator,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repos:          make(map[Kind]activitiesRepo),
		renderer:       renderer,
		invalidator:    invalidator,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Register serves the given kind from repo. Kinds never registered answer 404.
func (handler *Handler) Register(kind Kind, repo activitiesRepo) *Handler {
	handler.repos[kind] = repo
	return handler
}

// WithClock replaces the clock used to prefill new forms and compute records.
func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	kind, repo, ok := handler.kindRepo(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("kind", string(kind)))

	nickname := auth.NicknameFrom(ctx)
	list, err := repo.FetchByUsername(ctx, nickname, DefaultOrder)
	if err != nil {
		log.Errorf("list %s of %s: %s", kind, nickname, err)
		handler.renderer.ServerError(w, r)
		return
	}

	handler.renderer.Render(w, r, http.StatusOK, web.PageActivitiesList, NewListView(kind, list, handler.now()))
}

func (handler *Handler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.create-form")
	defer span.End()

	kind, _, ok := handler.kindRepo(w, r)
	if !ok {
		return
	}

	handler.renderer.Render(w, r, http.StatusOK, web.PageActivityForm, FormView{
		Kind:   kind,
		Action: createPath(kind),
		Form:   NewForm(handler.now()),
	})
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.create")
	defer span.End()

	kind, repo, ok := handler.kindRepo(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("kind", string(kind)))

	nickname := auth.NicknameFrom(ctx)
	form := FormFromRequest(r)
	activity, valid := form.Activity(kind, nickname)
	if !valid {
		handler.renderer.Render(w, r, http.StatusBadRequest, web.PageActivityForm, FormView{
			Kind:         kind,
			Action:       createPath(kind),
			Form:         form,
			ErrorMessage: "Please fix the highlighted fields.",
		})
		return
	}

	created, err := repo.Create(ctx, activity)
	if err != nil {
		log.Errorf("create %s for %s: %s", kind, nickname, err)
		handler.renderer.ServerError(w, r)
		return
	}

	log.Debugf("new %s activity added for %s: %d", kind, nickname, created.ID)
	if handler.metricsManager != nil {
		handler.metricsManager.CounterRecordsCreated.WithLabelValues(string(kind)).Inc()
	}
	handler.invalidator.Invalidate(ctx, nickname)

	web.Redirect(w, r, listPath(kind), web.FlashSuccess, fmt.Sprintf("%s activity saved.", kind.Title()))
}

func (handler *Handler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.edit-form")
	defer span.End()

	kind, repo, ok := handler.kindRepo(w, r)
	if !ok {
		return
	}

	activity, ok := handler.ownedActivity(ctx, w, r, kind, repo)
	if !ok {
		return
	}

	handler.renderer.Render(w, r, http.StatusOK, web.PageActivityForm, FormView{
		Kind:   kind,
		ID:     activity.ID,
		Action: editPath(kind, activity.ID),
		Form:   FormFromActivity(*activity),
	})
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.update")
	defer span.End()

	kind, repo, ok := handler.kindRepo(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("kind", string(kind)))

	existing, ok := handler.ownedActivity(ctx, w, r, kind, repo)
	if !ok {
		return
	}

	form := FormFromRequest(r)
	patch, valid := form.Patch(kind, existing.ID)
	if !valid {
		handler.renderer.Render(w, r, http.StatusBadRequest, web.PageActivityForm, FormView{
			Kind:         kind,
			ID:           existing.ID,
			Action:       editPath(kind, existing.ID),
			Form:         form,
			ErrorMessage: "Please fix the highlighted fields.",
		})
		return
	}

	if _, err := repo.Update(ctx, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handler.renderer.NotFound(w, r)
			return
		}
		log.Errorf("update %s %d: %s", kind, existing.ID, err)
		handler.renderer.ServerError(w, r)
		return
	}

	handler.invalidator.Invalidate(ctx, existing.UserNickname)
	web.Redirect(w, r, listPath(kind), web.FlashSuccess, fmt.Sprintf("%s activity updated.", kind.Title()))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.delete")
	defer span.End()

	kind, repo, ok := handler.kindRepo(w, r)
	if !ok {
		return
	}
	id, ok := handler.recordID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("id", id))

	nickname := auth.NicknameFrom(ctx)
	existing, err := repo.Read(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		web.Redirect(w, r, listPath(kind), web.FlashSuccess, fmt.Sprintf("%s activity already deleted.", kind.Title()))
		return
	case err != nil:
		log.Errorf("delete %s %d, read: %s", kind, id, err)
		handler.renderer.ServerError(w, r)
		return
	case existing.UserNickname != nickname:
		handler.renderer.NotFound(w, r)
		return
	}

	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		log.Errorf("delete %s %d: %s", kind, id, err)
		handler.renderer.ServerError(w, r)
		return
	}

	message := fmt.Sprintf("%s activity deleted.", kind.Title())
	if !deleted {
		message = fmt.Sprintf("%s activity already deleted.", kind.Title())
	}
	handler.invalidator.Invalidate(ctx, nickname)
	web.Redirect(w, r, listPath(kind), web.FlashSuccess, message)
}

func (handler *Handler) kindRepo(w http.ResponseWriter, r *http.Request) (Kind, activitiesRepo, bool) {
	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		handler.renderer.NotFound(w, r)
		return "", nil, false
	}
	repo, ok := handler.repos[kind]
	if !ok {
		handler.renderer.NotFound(w, r)
		return "", nil, false
	}
	return kind, repo, true
}

func (handler *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handler.renderer.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// ownedActivity reads the record from the path; records of other users are reported as not found.
func (handler *Handler) ownedActivity(ctx context.Context, w http.ResponseWriter, r *http.Request, kind Kind, repo activitiesRepo) (*Activity, bool) {
	id, ok := handler.recordID(w, r)
	if !ok {
		return nil, false
	}

	activity, err := repo.Read(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			handler.renderer.NotFound(w, r)
			return nil, false
		}
		log.Errorf("read %s %d: %s", kind, id, err)
		handler.renderer.ServerError(w, r)
		return nil, false
	}

	if activity.UserNickname != auth.NicknameFrom(ctx) {
		handler.renderer.NotFound(w, r)
		return nil, false
	}

	return activity, true
}

func listPath(kind Kind) string {
	return "/activities/" + string(kind) + "/"
}

func createPath(kind Kind) string {
	return listPath(kind) + "create/"
}

func editPath(kind Kind, id int64) string {
	return fmt.Sprintf("%sedit/%d/", listPath(kind), id)
}
