// Package store holds the console's employee state and the actions that
// change it. Every action follows the same lifecycle: set Loading and
// clear Error, call the backend, apply the result on success or record
// the failure message, then clear Loading.
//
// Actions are not serialized. Two overlapping calls run independently
// and each toggles the shared Loading flag; whichever resolves last wins,
// for Loading as well as for Error and the data it writes. The mutex only
// keeps individual reads and writes consistent.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vesaa/staffdesk/internal/intl"
	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/internal/request"
)

// DefaultMinDelay is how long FetchEmployees keeps Loading set at minimum.
const DefaultMinDelay = 500 * time.Millisecond

// Message ids of the failure fallbacks.
const (
	MsgListFailed   = "Employees.ListFailed"
	MsgDetailFailed = "Employees.DetailFailed"
	MsgCreateFailed = "Employees.CreateFailed"
	MsgUpdateFailed = "Employees.UpdateFailed"
	MsgDeleteFailed = "Employees.DeleteFailed"
	MsgNetworkError = "Employees.NetworkError"
)

// EmployeeAPI is the backend the store talks to; *api.Client implements it.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) (*models.Envelope[[]models.Employee], error)
	GetEmployee(ctx context.Context, id int64) (*models.Envelope[models.Employee], error)
	CreateEmployee(ctx context.Context, e models.Employee) (*models.Envelope[any], error)
	UpdateEmployee(ctx context.Context, e models.Employee) (*models.Envelope[any], error)
	DeleteEmployee(ctx context.Context, id int64) (*models.Envelope[any], error)
}

// Messages localizes fallback error messages; *intl.Translator implements it.
type Messages interface {
	T(id string) string
}

// State is a point-in-time copy of the store.
type State struct {
	Employees       []models.Employee `json:"employees"`
	CurrentEmployee *models.Employee  `json:"currentEmployee"`
	Loading         bool              `json:"loading"`
	Error           string            `json:"error,omitempty"`
}

// Result is the outcome of one action as seen by its caller. Message is
// the text that action recorded in Error, "" on success. Callers read it
// here rather than from ErrorMessage, which a concurrent action may have
// cleared or replaced in the meantime.
type Result struct {
	OK      bool
	Message string
}

// Store is the employee state container. Construct it with New and share
// the one instance between the views that need it.
type Store struct {
	api      EmployeeAPI
	msgs     Messages
	minDelay time.Duration

	mu              sync.RWMutex
	employees       []models.Employee
	currentEmployee *models.Employee
	loading         bool
	err             string
}

// Option customizes a Store.
type Option func(*Store)

// WithMinDelay overrides DefaultMinDelay. Zero disables the delay.
func WithMinDelay(d time.Duration) Option {
	return func(s *Store) { s.minDelay = d }
}

// WithMessages sets the catalog used for fallback error messages.
func WithMessages(m Messages) Option {
	return func(s *Store) { s.msgs = m }
}

// New returns an empty store backed by api.
func New(api EmployeeAPI, opts ...Option) *Store {
	s := &Store{
		api:       api,
		minDelay:  DefaultMinDelay,
		employees: []models.Employee{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.msgs == nil {
		s.msgs = intl.MustLoad().Translator("en")
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		Employees: slices.Clone(s.employees),
		Loading:   s.loading,
		Error:     s.err,
	}
	if s.currentEmployee != nil {
		cur := *s.currentEmployee
		st.CurrentEmployee = &cur
	}
	return st
}

// Employees returns a copy of the loaded collection.
func (s *Store) Employees() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.employees)
}

// CurrentEmployee returns the selected record, if any.
func (s *Store) CurrentEmployee() (models.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentEmployee == nil {
		return models.Employee{}, false
	}
	return *s.currentEmployee, true
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage returns the last failure message, "" when the last action
// succeeded.
func (s *Store) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FetchEmployees replaces Employees with the backend list. It does not
// return before the minimum delay has passed, on success and failure alike.
func (s *Store) FetchEmployees(ctx context.Context) Result {
	s.begin()
	defer s.finish()

	delay := time.NewTimer(s.minDelay)
	defer delay.Stop()

	env, err := s.api.ListEmployees(ctx)

	select {
	case <-delay.C:
	case <-ctx.Done():
	}

	res := check(ctx, s, env, err, MsgListFailed)
	if !res.OK {
		return res
	}
	data := env.Data
	if data == nil {
		data = []models.Employee{}
	}
	s.mu.Lock()
	s.employees = data
	s.mu.Unlock()
	return res
}

// FetchEmployeeByID loads one record into CurrentEmployee and also
// returns it, since a concurrent fetch may replace CurrentEmployee.
func (s *Store) FetchEmployeeByID(ctx context.Context, id int64) (models.Employee, Result) {
	s.begin()
	defer s.finish()

	env, err := s.api.GetEmployee(ctx, id)
	res := check(ctx, s, env, err, MsgDetailFailed)
	if !res.OK {
		return models.Employee{}, res
	}
	cur := env.Data
	s.mu.Lock()
	s.currentEmployee = &cur
	s.mu.Unlock()
	return cur, res
}

// AddEmployee creates e on the backend. Employees is left untouched;
// refetch to see the new record.
func (s *Store) AddEmployee(ctx context.Context, e models.Employee) Result {
	s.begin()
	defer s.finish()

	env, err := s.api.CreateEmployee(ctx, e)
	return check(ctx, s, env, err, MsgCreateFailed)
}

// EditEmployee updates e on the backend. Employees is left untouched.
func (s *Store) EditEmployee(ctx context.Context, e models.Employee) Result {
	s.begin()
	defer s.finish()

	env, err := s.api.UpdateEmployee(ctx, e)
	return check(ctx, s, env, err, MsgUpdateFailed)
}

// RemoveEmployee deletes id on the backend and, once confirmed, drops it
// from Employees. A missing id locally is not an error.
func (s *Store) RemoveEmployee(ctx context.Context, id int64) Result {
	s.begin()
	defer s.finish()

	env, err := s.api.DeleteEmployee(ctx, id)
	res := check(ctx, s, env, err, MsgDeleteFailed)
	if !res.OK {
		return res
	}
	s.mu.Lock()
	s.employees = slices.DeleteFunc(slices.Clone(s.employees), func(e models.Employee) bool {
		return e.HasID(id)
	})
	s.mu.Unlock()
	return res
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// check records a failure and reports the call's outcome.
func check[T any](ctx context.Context, s *Store, env *models.Envelope[T], err error, fallbackID string) Result {
	if err == nil && env.OK() {
		return Result{OK: true}
	}
	msg := s.failureMessage(err, fallbackID)
	if err == nil && env != nil && env.Message != "" {
		msg = env.Message
	}
	logging.FromContext(ctx).WithError(err).WithField("store-error", msg).Warn("employee action failed")

	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	return Result{Message: msg}
}

// failureMessage maps err onto the text shown to the user: the backend
// message verbatim, the action's fallback when that is empty, or the
// generic network error when no envelope arrived.
func (s *Store) failureMessage(err error, fallbackID string) string {
	if err == nil {
		return s.msgs.T(fallbackID)
	}
	apiErr, ok := request.AsAPIError(err)
	switch {
	case !ok:
		return s.msgs.T(MsgNetworkError)
	case apiErr.Message != "":
		return apiErr.Message
	default:
		return s.msgs.T(fallbackID)
	}
}
