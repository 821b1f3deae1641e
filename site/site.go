package site

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/km-arc/go-tourism/forms"
	gohttp "github.com/km-arc/go-tourism/framework/http"
	"github.com/km-arc/go-tourism/framework/logger"
	"github.com/km-arc/go-tourism/framework/routing"
)

const layout = "layout"

// Site serves the tourism pages and the form endpoints.
type Site struct {
	name     string
	views    *gohttp.ViewEngine
	registry *forms.Registry
	sessions *Sessions
	catalog  *Catalog
	logger   *slog.Logger
}

// Deps are the collaborators a Site needs.
type Deps struct {
	Name     string
	Views    *gohttp.ViewEngine
	Forms    *forms.Registry
	Sessions *Sessions
	Catalog  *Catalog
	Logger   *slog.Logger
}

// New creates a Site.
func New(d Deps) *Site {
	l := d.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Site{
		name:     d.Name,
		views:    d.Views,
		registry: d.Forms,
		sessions: d.Sessions,
		catalog:  d.Catalog,
		logger:   l.With(logger.Component("site")),
	}
}

// Routes registers every page and API route on r.
//
//	GET  /                                          home
//	GET  /destinations?q=&category=                 destinations
//	POST /theme                                     toggle light/dark
//	GET  /{slug}  POST /{slug}                      one route pair per form
//	GET  /api/destinations?q=&category=             catalog as JSON
//	GET  /api/forms/{form}                          form state
//	POST /api/forms/{form}                          submit
//	POST /api/forms/{form}/fields/{field}/{event}   blur | change
func (s *Site) Routes(r *routing.Router) {
	r.Static("/assets", Assets())

	r.Group(func(web *routing.Router) {
		web.Middleware(s.sessions.Middleware)

		web.Get("/", s.home)
		web.Get("/destinations", s.destinations)
		web.Post("/theme", s.toggleTheme)

		for _, id := range s.registry.IDs() {
			form, err := s.registry.Get(id)
			if err != nil || form.Slug == "" {
				continue
			}
			web.Get("/"+form.Slug, s.showForm(id))
			web.Post("/"+form.Slug, s.submitForm(id))
		}

		web.Prefix("/api", func(api *routing.Router) {
			api.Get("/destinations", s.apiDestinations)
			api.Get("/forms/{form}", s.apiFormState)
			api.Post("/forms/{form}", s.apiSubmit)
			api.Post("/forms/{form}/fields/{field}/{event}", s.apiField)
		})
	})
}

// ── Pages ────────────────────────────────────────────────────────────────────

type page struct {
	AppName string
	Title   string
	Theme   Theme
	Nav     []NavLink

	Form *forms.Form
	// HideAfter is how long the success message stays up, in milliseconds.
	HideAfter int64

	Destinations []Destination
	Categories   []string
	Query        string
	Category     string
}

func (s *Site) page(r *http.Request, title string) page {
	req := gohttp.NewRequest(r)
	return page{
		AppName: s.name,
		Title:   title,
		Theme:   ParseTheme(req.Cookie(ThemeCookie)),
		Nav:     Navigation(req.Path()),
	}
}

func (s *Site) formPage(r *http.Request, v *forms.FormValidator) page {
	form := v.Snapshot()
	data := s.page(r, form.Title)
	data.Form = form
	data.HideAfter = v.HideAfter().Milliseconds()
	return data
}

func (s *Site) render(w http.ResponseWriter, status int, name string, data page) {
	gohttp.NewResponse(w).View(s.views, status, layout, name, data)
}

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	data := s.page(r, "Home")
	data.Destinations = s.catalog.All()
	s.render(w, http.StatusOK, "home", data)
}

func (s *Site) destinations(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	data := s.page(r, "Destinations")
	data.Query = req.Query("q")
	data.Category = req.Query("category", AllCategories)
	data.Categories = s.catalog.Categories()
	data.Destinations = s.catalog.Search(data.Query, data.Category)
	s.render(w, http.StatusOK, "destinations", data)
}

func (s *Site) toggleTheme(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	next := ParseTheme(req.Cookie(ThemeCookie)).Toggle()
	res.SetCookie(themeCookie(next))
	if req.IsJSON() {
		res.Success(map[string]string{"theme": string(next), "class": next.BodyClass()})
		return
	}
	res.RedirectBack(r, "/")
}

func (s *Site) showForm(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := s.validator(w, r, id)
		if !ok {
			return
		}
		s.render(w, http.StatusOK, "form", s.formPage(r, v))
	}
}

func (s *Site) submitForm(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := s.validator(w, r, id)
		if !ok {
			return
		}
		res, ok := s.submit(w, r, v)
		if !ok {
			return
		}

		status := http.StatusOK
		if !res.Valid {
			status = http.StatusUnprocessableEntity
		}
		s.render(w, status, "form", s.formPage(r, v))
	}
}

// ── API ──────────────────────────────────────────────────────────────────────

func (s *Site) apiDestinations(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	gohttp.NewResponse(w).Success(s.catalog.Search(req.Query("q"), req.Query("category")))
}

// FieldState is the JSON view of one field.
type FieldState struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// FormState is the JSON view of a visitor's form.
type FormState struct {
	ID      string       `json:"id"`
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldState `json:"fields"`
}

func stateOf(form *forms.Form) FormState {
	st := FormState{ID: form.ID, Success: form.Success, Fields: make([]FieldState, 0, len(form.Fields))}
	if form.Success {
		st.Message = form.SuccessMessage
	}
	for _, fd := range form.Fields {
		st.Fields = append(st.Fields, FieldState{
			Name:  fd.Name,
			Value: fd.Value,
			Valid: !fd.Invalid,
			Error: fd.Error,
		})
	}
	return st
}

func (s *Site) apiFormState(w http.ResponseWriter, r *http.Request) {
	v, ok := s.apiValidator(w, r)
	if !ok {
		return
	}
	gohttp.NewResponse(w).Success(stateOf(v.Snapshot()))
}

func (s *Site) apiSubmit(w http.ResponseWriter, r *http.Request) {
	v, ok := s.apiValidator(w, r)
	if !ok {
		return
	}
	res, ok := s.submit(w, r, v)
	if !ok {
		return
	}
	if !res.Valid {
		gohttp.NewResponse(w).ValidationError(res.Errors)
		return
	}
	gohttp.NewResponse(w).Success(stateOf(v.Snapshot()))
}

// fieldResult answers a real-time check.
type fieldResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

const (
	eventBlur   = "blur"
	eventChange = "change"
)

// apiField re-validates one field. For blur the body may carry the field's
// current "value", which is stored first. For change "value" is the new
// value and is required.
func (s *Site) apiField(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	event := req.RouteParam("event")
	if !slices.Contains([]string{eventBlur, eventChange}, event) {
		res.NotFound("Unknown event.")
		return
	}
	v, ok := s.apiValidator(w, r)
	if !ok {
		return
	}

	body, err := req.Fields()
	if err != nil && !errors.Is(err, gohttp.ErrEmptyBody) {
		res.Error(http.StatusBadRequest, "Malformed request body.")
		return
	}
	field := req.RouteParam("field")
	value, hasValue := body["value"]

	if event == eventChange && !hasValue {
		res.Error(http.StatusBadRequest, "Missing value.")
		return
	}

	var valid bool
	switch event {
	case eventChange:
		valid, err = v.Change(field, value)
	case eventBlur:
		if hasValue {
			if err = v.Input(field, value); err != nil {
				break
			}
		}
		valid, err = v.Blur(field)
	}
	if errors.Is(err, forms.ErrUnknownField) {
		res.NotFound("Unknown field.")
		return
	}
	if err != nil {
		s.logger.Error("field validation failed", logger.Error(err))
		res.ServerError()
		return
	}

	msg := ""
	if fd, ok := v.Snapshot().Field(field); ok {
		msg = fd.Error
	}
	res.JSON(http.StatusOK, fieldResult{Valid: valid, Message: msg})
}

// ── helpers ──────────────────────────────────────────────────────────────────

// validator fetches the visitor's validator for a page route.
func (s *Site) validator(w http.ResponseWriter, r *http.Request, id string) (*forms.FormValidator, bool) {
	v, err := s.sessions.Validator(VisitorID(r.Context()), id)
	if err != nil {
		s.logger.Error("form unavailable", logger.Form(id), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return v, true
}

// apiValidator resolves {form} by slug or id.
func (s *Site) apiValidator(w http.ResponseWriter, r *http.Request) (*forms.FormValidator, bool) {
	key := gohttp.NewRequest(r).RouteParam("form")
	id, ok := s.registry.BySlug(key)
	if !ok {
		id = key
	}
	v, err := s.sessions.Validator(VisitorID(r.Context()), id)
	if errors.Is(err, forms.ErrUnknownForm) {
		gohttp.NewResponse(w).NotFound("Unknown form.")
		return nil, false
	}
	if err != nil {
		s.logger.Error("form unavailable", logger.Form(id), logger.Error(err))
		gohttp.NewResponse(w).ServerError()
		return nil, false
	}
	return v, true
}

// submit fills the validator from the request body and submits it.
func (s *Site) submit(w http.ResponseWriter, r *http.Request, v *forms.FormValidator) (forms.Result, bool) {
	res := gohttp.NewResponse(w)

	values, err := gohttp.NewRequest(r).Fields()
	if err != nil && !errors.Is(err, gohttp.ErrEmptyBody) {
		res.Error(http.StatusBadRequest, "Malformed request body.")
		return forms.Result{}, false
	}
	if err := v.Fill(values); err != nil {
		if errors.Is(err, forms.ErrUnknownField) {
			res.Error(http.StatusBadRequest, err.Error())
			return forms.Result{}, false
		}
		s.logger.Error("fill form", logger.Error(err))
		res.ServerError()
		return forms.Result{}, false
	}
	return v.Submit(), true
}
