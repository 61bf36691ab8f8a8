// Package apitest provides an in-memory employee backend speaking the
// {code, message, data} envelope, for tests of the client side.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vesaa/staffdesk/internal/api"
	"github.com/vesaa/staffdesk/internal/models"
)

// Failure, when set for a path, makes the backend answer that path with
// the given envelope code and message instead of handling it.
type Failure struct {
	Code    int
	Message string
}

// Backend is a fake employee service. Safe for concurrent use.
type Backend struct {
	URL string

	mu       sync.Mutex
	nextID   int64
	records  map[int64]models.Employee
	failures map[string]Failure
	delays   map[string]time.Duration
	calls    map[string]int
}

// NewBackend starts a Backend on a local port; it is closed when the test ends.
func NewBackend(t testing.TB, seed ...models.Employee) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		nextID:   1,
		records:  make(map[int64]models.Employee),
		failures: make(map[string]Failure),
		delays:   make(map[string]time.Duration),
		calls:    make(map[string]int),
	}
	for _, e := range seed {
		b.insert(e)
	}

	r := gin.New()
	r.Use(b.count, b.delay, b.fail)
	r.GET(api.PathEmployeeList, b.handleList)
	r.GET(api.PathEmployeeDetail, b.handleDetail)
	r.POST(api.PathEmployeeAdd, b.handleAdd)
	r.POST(api.PathEmployeeUpdate, b.handleUpdate)
	r.POST(api.PathEmployeeDelete, b.handleDelete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// Fail makes every call to path answer with f until Recover is called.
func (b *Backend) Fail(path string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = f
}

// Delay holds every call to path for d before answering.
func (b *Backend) Delay(path string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delays[path] = d
}

// Recover clears an injected failure.
func (b *Backend) Recover(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, path)
}

// Calls returns how many requests path has received.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

// Records returns a copy of the stored employees ordered by id.
func (b *Backend) Records() []models.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sorted()
}

func (b *Backend) insert(e models.Employee) models.Employee {
	if e.ID == nil {
		e.ID = models.IDPtr(b.nextID)
	}
	if *e.ID >= b.nextID {
		b.nextID = *e.ID + 1
	}
	b.records[*e.ID] = e
	return e
}

func (b *Backend) sorted() []models.Employee {
	out := make([]models.Employee, 0, len(b.records))
	for _, e := range b.records {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out
}

func (b *Backend) count(c *gin.Context) {
	b.mu.Lock()
	b.calls[c.Request.URL.Path]++
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) delay(c *gin.Context) {
	b.mu.Lock()
	d := b.delays[c.Request.URL.Path]
	b.mu.Unlock()
	if d > 0 {
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
		}
	}
	c.Next()
}

func (b *Backend) fail(c *gin.Context) {
	b.mu.Lock()
	f, ok := b.failures[c.Request.URL.Path]
	b.mu.Unlock()
	if ok {
		c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": f.Code, "message": f.Message, "data": nil})
	}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": models.CodeOK, "message": "success", "data": data})
}

func reject(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, gin.H{"code": code, "message": msg, "data": nil})
}

func (b *Backend) handleList(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ok(c, b.sorted())
}

func (b *Backend) handleDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		reject(c, http.StatusBadRequest, "invalid id")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, found := b.records[id]
	if !found {
		reject(c, http.StatusNotFound, "employee not found")
		return
	}
	ok(c, e)
}

func (b *Backend) handleAdd(c *gin.Context) {
	var e models.Employee
	if err := c.ShouldBindJSON(&e); err != nil {
		reject(c, http.StatusBadRequest, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.records {
		if existing.WorkID == e.WorkID {
			reject(c, http.StatusConflict, "workId already exists")
			return
		}
	}
	e.ID = nil
	ok(c, b.insert(e))
}

func (b *Backend) handleUpdate(c *gin.Context) {
	var e models.Employee
	if err := c.ShouldBindJSON(&e); err != nil || e.ID == nil {
		reject(c, http.StatusBadRequest, "id required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.records[*e.ID]; !found {
		reject(c, http.StatusNotFound, "employee not found")
		return
	}
	b.records[*e.ID] = e
	ok(c, e)
}

func (b *Backend) handleDelete(c *gin.Context) {
	var req models.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "id required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.records, req.ID)
	ok(c, nil)
}
