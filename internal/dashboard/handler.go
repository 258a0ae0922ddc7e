package dashboard

import (
	"net/http"

	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/web"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service  *Service
	renderer *web.Renderer
}

func NewHandler(service *Service, renderer *web.Renderer) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
	}
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard")
	defer span.End()

	nickname := auth.NicknameFrom(ctx)
	view, err := handler.service.HomeStats(ctx, nickname)
	if err != nil {
		log.Errorf("dashboard of %s: %s", nickname, err)
		handler.renderer.ServerError(w, r)
		return
	}

	handler.renderer.Render(w, r, http.StatusOK, web.PageDashboard, view)
}

func HandleRedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}
