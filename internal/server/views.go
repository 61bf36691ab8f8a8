package server

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/vesaa/staffdesk/internal/intl"
	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/webui"
)

var funcs = template.FuncMap{
	"formatDate": models.FormatDate,
}

// view is one page template, parsed on its first render.
type view struct {
	name string
	once sync.Once
	tmpl *template.Template
	err  error
}

func (v *view) resolve() (*template.Template, error) {
	v.once.Do(func() {
		v.tmpl, v.err = template.New(v.name).Funcs(funcs).ParseFS(webui.FS,
			"web/templates/layout.tmpl",
			"web/templates/"+v.name+".tmpl",
		)
	})
	return v.tmpl, v.err
}

type viewSet struct {
	mu    sync.Mutex
	views map[string]*view
}

func newViewSet() *viewSet {
	return &viewSet{views: make(map[string]*view)}
}

func (vs *viewSet) get(name string) (*template.Template, error) {
	vs.mu.Lock()
	v, ok := vs.views[name]
	if !ok {
		v = &view{name: name}
		vs.views[name] = v
	}
	vs.mu.Unlock()
	return v.resolve()
}

// page is the data every template renders from; per-view data sits in Data.
type page struct {
	*intl.Translator
	Title string
	Theme string
	Flash *Flash
	Error string
	Data  any
}

// FlashText localizes the pending flash message.
func (p *page) FlashText() string {
	if p.Flash == nil {
		return ""
	}
	if p.Flash.MessageID != "" {
		return p.T(p.Flash.MessageID)
	}
	return p.Flash.Text
}

// render executes the current route's view inside the layout.
func (s *Server) render(c *gin.Context, status int, data any) {
	s.renderWithError(c, status, data, "")
}

func (s *Server) renderWithError(c *gin.Context, status int, data any, errMsg string) {
	route := currentRoute(c)
	tmpl, err := s.views.get(route.View)
	if err != nil {
		logging.FromContext(c.Request.Context()).WithError(err).Error("view unavailable")
		c.String(http.StatusInternalServerError, "view %q unavailable", route.View)
		return
	}

	title, _ := c.Get(ctxTitle)
	p := &page{
		Translator: translator(c),
		Title:      fmt.Sprint(title),
		Theme:      string(s.mountTheme(c).Mode()),
		Flash:      s.flash.pop(c),
		Error:      errMsg,
		Data:       data,
	}
	c.Render(status, render.HTML{Template: tmpl, Name: "layout", Data: p})
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(webui.FS, "web/static")
	if err != nil {
		panic("embed: web/static sub-fs failed: " + err.Error())
	}
	return http.FS(sub)
}
