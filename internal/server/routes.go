package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is one entry of the console's static route table.
type Route struct {
	Path  string
	Name  string
	Title string // message id of the page title
	View  string // template under web/templates
}

// Routes is the route table. The NotFound entry is the catch-all and is
// served for every path the others do not match.
var Routes = []Route{
	{Path: "/", Name: "Home", Title: "Title.Home", View: "home"},
	{Path: "/add", Name: "AddEmployee", Title: "Title.AddEmployee", View: "form"},
	{Path: "/edit/:id", Name: "EditEmployee", Title: "Title.EditEmployee", View: "form"},
	{Path: "*", Name: "NotFound", Title: "Title.NotFound", View: "notfound"},
}

// DefaultTitle is used for routes without a title.
const DefaultTitle = "Title.Default"

const (
	ctxRoute = "staffdesk.route"
	ctxTitle = "staffdesk.title"
)

func routeNamed(name string) Route {
	for _, r := range Routes {
		if r.Name == name {
			return r
		}
	}
	return Route{Name: name}
}

// registerRoutes wires the route table, the form and delete actions, the
// theme toggle, static assets and the health probe.
//
//	GET  /            list          POST /add        create
//	GET  /add         create form   POST /edit/:id   update
//	GET  /edit/:id    edit form     POST /delete/:id delete
//	*                 not found     POST /theme      toggle theme
func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/healthz", s.handleHealth)
	r.StaticFS("/static", staticFS())
	r.POST("/theme", s.handleThemeToggle)
	r.POST("/delete/:id", s.handleDelete)

	pages := map[string][2]gin.HandlerFunc{
		"Home":         {s.handleHome, nil},
		"AddEmployee":  {s.handleAddForm, s.handleAddSubmit},
		"EditEmployee": {s.handleEditForm, s.handleEditSubmit},
	}
	for _, route := range Routes {
		h, ok := pages[route.Name]
		if !ok {
			continue
		}
		r.GET(route.Path, s.beforeEach(route), h[0])
		if h[1] != nil {
			r.POST(route.Path, s.beforeEach(route), h[1])
		}
	}

	notFound := routeNamed("NotFound")
	r.NoRoute(s.beforeEach(notFound), s.handleNotFound)
}

// beforeEach is the navigation hook every view passes through: it records
// the route and sets the page title from its metadata, falling back to the
// default title.
func (s *Server) beforeEach(route Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := translator(c)
		title := t.T(DefaultTitle)
		if route.Title != "" {
			title = t.T(route.Title)
		}
		c.Set(ctxRoute, route)
		c.Set(ctxTitle, title)
		c.Next()
	}
}

func currentRoute(c *gin.Context) Route {
	if r, ok := c.Get(ctxRoute); ok {
		return r.(Route)
	}
	return Route{}
}

// handleNotFound renders the catch-all view. Views that fail to resolve
// their parameters land here as well.
func (s *Server) handleNotFound(c *gin.Context) {
	nf := routeNamed("NotFound")
	if currentRoute(c).Name != nf.Name {
		c.Set(ctxRoute, nf)
		c.Set(ctxTitle, translator(c).T(nf.Title))
	}
	s.render(c, http.StatusNotFound, nil)
}
