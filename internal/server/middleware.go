package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vesaa/staffdesk/internal/intl"
	"github.com/vesaa/staffdesk/internal/logging"
)

const ctxTranslator = "staffdesk.translator"

// requestLogger tags every request with an id (the incoming X-Request-ID
// or a fresh uuid), stores a logrus entry in the request context and logs
// the outcome.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(logging.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		entry := logger.WithFields(logrus.Fields{
			"request-id": id,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
		ctx := logging.WithEntry(c.Request.Context(), entry)
		ctx = logging.WithRequestID(ctx, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(logging.RequestIDHeader, id)

		entry.WithField("ip", c.ClientIP()).Debug("request started")
		c.Next()

		fields := logrus.Fields{
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		entry.WithFields(fields).Info("request finished")
	}
}

// localizer picks the catalog from Accept-Language, falling back to the
// console locale.
func (s *Server) localizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := s.deps.Bundle.Translator(c.GetHeader("Accept-Language"), s.deps.Locale)
		c.Set(ctxTranslator, t)
		c.Next()
	}
}

func translator(c *gin.Context) *intl.Translator {
	if t, ok := c.Get(ctxTranslator); ok {
		return t.(*intl.Translator)
	}
	return fallbackTranslator()
}

var fallbackTranslator = sync.OnceValue(func() *intl.Translator {
	return intl.MustLoad().Translator()
})
