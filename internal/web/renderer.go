package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/pkg"

	log "github.com/sirupsen/logrus"
)

//go:embed templates
var templatesFS embed.FS

const (
	PageDashboard      = "dashboard.html"
	PageActivitiesList = "activities/list.html"
	PageActivityForm   = "activities/form.html"
	PageWeighingsList  = "weighings/list.html"
	PageWeighingForm   = "weighings/form.html"
	PageAdmin          = "admin/index.html"
	PageNotFound       = "errors/404.html"
	PageServerError    = "errors/500.html"
)

var pageTitles = map[string]string{
	PageDashboard:      "Dashboard",
	PageActivitiesList: "Activities",
	PageActivityForm:   "Activity",
	PageWeighingsList:  "Weighings",
	PageWeighingForm:   "Weighing",
	PageAdmin:          "Admin",
	PageNotFound:       "Not found",
	PageServerError:    "Error",
}

const NotFoundMessage = "Sorry, nothing at this URL."

// Page is what the base layout sees. Data goes to the page's content block.
type Page struct {
	Title    string
	Nickname string
	Flash    *Flash
	Data     any
}

// Renderer executes the embedded pages, each parsed together with the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template, len(pageTitles)),
	}
	for page := range pageTitles {
		tmpl, err := template.New(page).
			Funcs(templateFuncs).
			ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		log.Errorf("render: unknown page %s", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	p := Page{
		Title:    pageTitles[page],
		Nickname: auth.NicknameFrom(req.Context()),
		Flash:    PopFlash(w, req),
		Data:     data,
	}

	// render into a buffer first, a failing template must not leave a half written 200
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", p); err != nil {
		log.Errorf("render page %s: %s", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), status)
}

func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	r.Render(w, req, http.StatusNotFound, PageNotFound, NotFoundMessage)
}

func (r *Renderer) ServerError(w http.ResponseWriter, req *http.Request) {
	r.Render(w, req, http.StatusInternalServerError, PageServerError, "")
}
