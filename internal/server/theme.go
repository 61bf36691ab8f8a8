package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/theme"
)

const (
	themeCookie = "theme"
	// themeMaxAge keeps the choice for a year, like browser local storage
	// would keep it indefinitely.
	themeMaxAge = 365 * 24 * 60 * 60

	// Client hint carrying the browser's prefers-color-scheme.
	hintColorScheme = "Sec-CH-Prefers-Color-Scheme"
)

// cookieStorage persists a browser's theme in a cookie.
type cookieStorage struct {
	c *gin.Context
}

func (s cookieStorage) Load(context.Context) (theme.Mode, bool, error) {
	v, err := s.c.Cookie(themeCookie)
	if err != nil {
		return "", false, nil
	}
	m, ok := theme.ParseMode(v)
	return m, ok, nil
}

func (s cookieStorage) Save(_ context.Context, m theme.Mode) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(themeCookie, string(m), themeMaxAge, "/", "", false, false)
	return nil
}

// prefersDark reads the color-scheme client hint, then the console-wide
// default theme.
func (s *Server) prefersDark(c *gin.Context) theme.PrefersDark {
	return func(ctx context.Context) bool {
		hint := strings.Trim(c.GetHeader(hintColorScheme), `" `)
		switch hint {
		case "dark":
			return true
		case "light":
			return false
		}
		if s.deps.ConsoleTheme == nil {
			return false
		}
		m, ok, err := s.deps.ConsoleTheme.Load(ctx)
		if err != nil {
			logging.FromContext(ctx).WithError(err).Warn("console theme unavailable")
			return false
		}
		return ok && m == theme.Dark
	}
}

// mountTheme resolves the browser's theme for this request.
func (s *Server) mountTheme(c *gin.Context) *theme.Theme {
	c.Header("Accept-CH", hintColorScheme)
	c.Header("Vary", hintColorScheme)

	th := theme.New(cookieStorage{c}, s.prefersDark(c))
	if err := th.Mount(c.Request.Context()); err != nil {
		logging.FromContext(c.Request.Context()).WithError(err).Warn("theme mount failed")
	}
	return th
}

// handleThemeToggle flips the browser's theme and returns to the page the
// toggle was pressed on.
func (s *Server) handleThemeToggle(c *gin.Context) {
	th := s.mountTheme(c)
	if _, err := th.Toggle(c.Request.Context()); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, sameOriginReferer(c))
}

// sameOriginReferer returns the referring path on this host, or "/".
func sameOriginReferer(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return "/"
	}
	if target := u.RequestURI(); strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return target
	}
	return "/"
}
