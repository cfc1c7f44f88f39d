package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"encyclopedia/pkg/core"
	"encyclopedia/pkg/form"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "content", "search", "new", "edit", "error"}

type Server struct {
	core   core.Core
	logger *zap.Logger

	tmpl map[string]*template.Template
}

// view is the data handed to every page template.
type view struct {
	Title   string
	Entries []string
	Page    *core.Page
	Query   string
	Matches []string
	Form    map[string]string
	Errors  map[string]string
	Message string
}

func New(core core.Core, logger *zap.Logger) (*Server, error) {
	funcs := template.FuncMap{"wikiURL": wikiURL, "editURL": editURL}
	tmpl := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %q", name)
		}
		tmpl[name] = t
	}
	return &Server{core: core, logger: logger, tmpl: tmpl}, nil
}

// Register adds the wiki routes to router. Fixed paths come before the
// catch-all entry route.
func (s *Server) Register(router *mux.Router) {
	router.Use(s.logRequests)
	router.NotFoundHandler = s.logRequests(http.HandlerFunc(s.HandleNotFound))
	router.HandleFunc("/", s.HandleIndex).Methods("GET")
	router.HandleFunc("/wiki/search", s.HandleSearch).Methods("GET", "POST")
	router.HandleFunc("/wiki/new-entry", s.HandleNewEntry).Methods("GET", "POST")
	router.HandleFunc("/wiki/random", s.HandleRandom).Methods("GET")
	router.HandleFunc("/wiki/edit/{entry}", s.HandleEdit).Methods("GET", "POST")
	router.HandleFunc("/wiki/{entry}", s.HandleEntry).Methods("GET", "POST")
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	list, err := s.core.ListEntries()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", view{Title: "Encyclopedia", Entries: list})
}

// HandleEntry shows an entry. POST carries the edit form, same as the edit
// route.
func (s *Server) HandleEntry(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["entry"]
	if r.Method == http.MethodPost {
		s.submitEdit(w, r, title)
		return
	}
	page, err := s.core.View(title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, page)
}

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "parse form", http.StatusBadRequest)
		return
	}
	res, err := s.core.Search(r.Form.Get("q"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.Page != nil {
		s.renderPage(w, r, http.StatusOK, res.Page)
		return
	}
	s.render(w, r, http.StatusOK, "search", view{
		Title:   "Search Results",
		Query:   res.Query,
		Matches: res.Matches,
	})
}

func (s *Server) HandleNewEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "new", view{Title: "Create New Page"})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "parse form", http.StatusBadRequest)
		return
	}
	f := form.DecodeNewEntry(r.PostForm)
	if err := f.Validate(); err != nil {
		s.render(w, r, http.StatusBadRequest, "new", view{
			Title:  "Create New Page",
			Form:   map[string]string{form.FieldTitle: f.Title, form.FieldContent: f.Content},
			Errors: form.Messages(err),
		})
		return
	}
	page, err := s.core.Create(f.Title, f.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("entry created", zap.String("title", f.Title))
	s.renderPage(w, r, http.StatusOK, page)
}

func (s *Server) HandleEdit(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["entry"]
	if r.Method == http.MethodPost {
		s.submitEdit(w, r, title)
		return
	}
	body, err := s.core.EditForm(title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "edit", view{
		Title: "Edit " + title,
		Page:  &core.Page{Title: title},
		Form:  map[string]string{form.FieldEdit: body},
	})
}

// HandleNotFound answers paths no route matches, such as titles with a slash.
func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, errors.Wrapf(core.ErrNotFound, "no route for %q", r.URL.Path))
}

func (s *Server) HandleRandom(w http.ResponseWriter, r *http.Request) {
	page, err := s.core.Random()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, page)
}

func (s *Server) submitEdit(w http.ResponseWriter, r *http.Request, title string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "parse form", http.StatusBadRequest)
		return
	}
	f := form.DecodeEditEntry(r.PostForm)
	if err := f.Validate(); err != nil {
		s.render(w, r, http.StatusBadRequest, "edit", view{
			Title:  "Edit " + title,
			Page:   &core.Page{Title: title},
			Form:   map[string]string{form.FieldEdit: f.Edit},
			Errors: form.Messages(err),
		})
		return
	}
	page, err := s.core.Edit(title, f.Edit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("entry edited", zap.String("title", title))
	s.renderPage(w, r, http.StatusOK, page)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page *core.Page) {
	s.render(w, r, status, "content", view{Title: page.Title, Page: page})
}

// fail maps domain errors onto the error page. Anything else is logged and
// reported as a server error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.render(w, r, http.StatusNotFound, "error", view{
			Title:   "Page Not Found!",
			Message: "Sorry, the page you requested for does not exist.",
		})
	case errors.Is(err, core.ErrAlreadyExists):
		s.render(w, r, http.StatusConflict, "error", view{
			Title:   "Page Already Exists!",
			Message: "Sorry, this wiki entry already exists.",
		})
	case errors.Is(err, core.ErrInvalidTitle):
		s.render(w, r, http.StatusBadRequest, "error", view{
			Title:   "Invalid Title!",
			Message: "Sorry, that title cannot be used for a wiki entry.",
		})
	default:
		s.logger.Error("handle request", zap.String("path", r.URL.Path), zap.Error(err))
		s.render(w, r, http.StatusInternalServerError, "error", view{
			Title:   "Something Went Wrong",
			Message: "Sorry, the wiki could not handle this request.",
		})
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data view) {
	var buf bytes.Buffer
	if err := s.tmpl[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("execute template", zap.String("template", name), zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}

func wikiURL(title string) string {
	return "/wiki/" + url.PathEscape(title)
}

func editURL(title string) string {
	return "/wiki/edit/" + url.PathEscape(title)
}
