package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/process"
)

// handleHealth reports liveness plus a few process figures.
//
//	GET /healthz
func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()
	st := s.deps.Store.Snapshot()

	proc := gin.H{
		"pid":        os.Getpid(),
		"goroutines": runtime.NumGoroutine(),
		"uptime":     time.Since(s.start).Round(time.Second).String(),
	}
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil {
			proc["rss_bytes"] = mem.RSS
		}
		if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
			proc["cpu_percent"] = cpu
		}
	}
	resp := gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"backend": s.deps.BackendURL,
		"process": proc,
		"store": gin.H{
			"employees": len(st.Employees),
			"loading":   st.Loading,
			"error":     st.Error,
		},
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		resp["host_uptime_seconds"] = up
	}
	c.JSON(http.StatusOK, resp)
}
