package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/models"
)

// employeeForm is the create/edit form body.
type employeeForm struct {
	WorkID   string `form:"workId" binding:"required"`
	Name     string `form:"name" binding:"required"`
	JobTitle string `form:"jobTitle"`
	Gender   string `form:"gender" binding:"required,oneof=M F"`
	HireDate string `form:"hireDate" binding:"omitempty,datetime=2006-01-02"`
}

func (f *employeeForm) trim() {
	f.WorkID = strings.TrimSpace(f.WorkID)
	f.Name = strings.TrimSpace(f.Name)
	f.JobTitle = strings.TrimSpace(f.JobTitle)
	f.HireDate = strings.TrimSpace(f.HireDate)
}

func (f *employeeForm) employee() models.Employee {
	return models.Employee{
		WorkID:   f.WorkID,
		Name:     f.Name,
		JobTitle: f.JobTitle,
		Gender:   models.Gender(f.Gender),
		HireDate: f.HireDate,
	}
}

// formView is the data of the form template.
type formView struct {
	Action   string
	WorkID   string
	Name     string
	JobTitle string
	Gender   string
	HireDate string
	Errors   map[string]string // form field → message id
	Missing  bool              // the edited record could not be loaded
}

func formViewOf(action string, e models.Employee) *formView {
	return &formView{
		Action:   action,
		WorkID:   e.WorkID,
		Name:     e.Name,
		JobTitle: e.JobTitle,
		Gender:   string(e.Gender),
		HireDate: models.FormatDate(e.HireDate),
	}
}

// fieldMessages maps failed validation tags onto message ids.
var fieldMessages = map[string]string{
	"required": "Form.Required",
	"oneof":    "Form.InvalidGender",
	"datetime": "Form.InvalidDate",
}

var formFields = map[string]string{
	"WorkID":   "workId",
	"Name":     "name",
	"Gender":   "gender",
	"HireDate": "hireDate",
}

// bindEmployee binds and validates the form. Validation failures come back
// as per-field message ids to show next to the inputs; err is set only
// when the body could not be read as a form at all.
func bindEmployee(c *gin.Context) (f *employeeForm, fieldErrs map[string]string, err error) {
	f = &employeeForm{}
	bindErr := c.ShouldBind(f)
	f.trim()

	fieldErrs = map[string]string{}
	var verrs validator.ValidationErrors
	switch {
	case errors.As(bindErr, &verrs):
		for _, fe := range verrs {
			id, ok := fieldMessages[fe.Tag()]
			if !ok {
				id = "Form.Required"
			}
			fieldErrs[formFields[fe.Field()]] = id
		}
	case bindErr != nil:
		return f, nil, bindErr
	}
	if f.WorkID == "" {
		fieldErrs["workId"] = "Form.Required"
	}
	if f.Name == "" {
		fieldErrs["name"] = "Form.Required"
	}
	return f, fieldErrs, nil
}

// submitted binds the form and renders it back when it cannot be used.
// It reports whether the handler should go on with f.
func (s *Server) submitted(c *gin.Context, action string) (*employeeForm, *formView, bool) {
	f, fieldErrs, err := bindEmployee(c)
	view := formViewOf(action, f.employee())
	if err != nil {
		logging.FromContext(c.Request.Context()).WithError(err).Warn("unreadable employee form")
		s.renderWithError(c, http.StatusBadRequest, view, translator(c).T("Form.Invalid"))
		return nil, nil, false
	}
	if len(fieldErrs) > 0 {
		view.Errors = fieldErrs
		s.render(c, http.StatusUnprocessableEntity, view)
		return nil, nil, false
	}
	return f, view, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// handleHome renders the employee list.
//
//	GET /
func (s *Server) handleHome(c *gin.Context) {
	res := s.deps.Store.FetchEmployees(c.Request.Context())
	s.renderWithError(c, http.StatusOK, gin.H{"Employees": s.deps.Store.Employees()}, res.Message)
}

// handleAddForm renders an empty create form.
//
//	GET /add
func (s *Server) handleAddForm(c *gin.Context) {
	s.render(c, http.StatusOK, formViewOf("/add", models.Employee{}))
}

// handleAddSubmit creates the employee and returns to the list.
//
//	POST /add
func (s *Server) handleAddSubmit(c *gin.Context) {
	f, view, ok := s.submitted(c, "/add")
	if !ok {
		return
	}
	if res := s.deps.Store.AddEmployee(c.Request.Context(), f.employee()); !res.OK {
		s.renderWithError(c, http.StatusOK, view, res.Message)
		return
	}
	s.flash.set(c, Flash{Kind: "success", MessageID: "Employees.Created"})
	c.Redirect(http.StatusSeeOther, "/")
}

// handleEditForm loads the employee and renders the edit form.
//
//	GET /edit/:id
func (s *Server) handleEditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.handleNotFound(c)
		return
	}
	action := "/edit/" + strconv.FormatInt(id, 10)

	cur, res := s.deps.Store.FetchEmployeeByID(c.Request.Context(), id)
	if !res.OK {
		s.renderWithError(c, http.StatusOK, &formView{Action: action, Missing: true}, res.Message)
		return
	}
	s.render(c, http.StatusOK, formViewOf(action, cur))
}

// handleEditSubmit updates the employee and returns to the list.
//
//	POST /edit/:id
func (s *Server) handleEditSubmit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.handleNotFound(c)
		return
	}
	action := "/edit/" + strconv.FormatInt(id, 10)

	f, view, ok := s.submitted(c, action)
	if !ok {
		return
	}
	e := f.employee()
	e.ID = models.IDPtr(id)
	if res := s.deps.Store.EditEmployee(c.Request.Context(), e); !res.OK {
		s.renderWithError(c, http.StatusOK, view, res.Message)
		return
	}
	s.flash.set(c, Flash{Kind: "success", MessageID: "Employees.Updated"})
	c.Redirect(http.StatusSeeOther, "/")
}

// handleDelete removes the employee and returns to the list with the outcome.
//
//	POST /delete/:id
func (s *Server) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.flash.set(c, Flash{Kind: "error", MessageID: "Employees.DeleteFailed"})
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if res := s.deps.Store.RemoveEmployee(c.Request.Context(), id); res.OK {
		s.flash.set(c, Flash{Kind: "success", MessageID: "Employees.Deleted"})
	} else {
		s.flash.set(c, Flash{Kind: "error", Text: res.Message})
	}
	c.Redirect(http.StatusSeeOther, "/")
}
