package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesaa/staffdesk/internal/api"
	"github.com/vesaa/staffdesk/internal/api/apitest"
	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/internal/request"
)

func TestStore_AgainstBackend(t *testing.T) {
	b := apitest.NewBackend(t)
	s := New(api.New(request.New(b.URL, time.Second)), WithMinDelay(0))
	ctx := context.Background()

	require.True(t, s.AddEmployee(ctx, models.Employee{WorkID: "E1", Name: "Li", Gender: models.GenderMale}).OK)
	require.True(t, s.AddEmployee(ctx, models.Employee{WorkID: "E2", Name: "Wu", Gender: models.GenderFemale, HireDate: "2020-01-02"}).OK)
	assert.Empty(t, s.Employees(), "create does not refresh the list")

	s.FetchEmployees(ctx)
	emps := s.Employees()
	require.Len(t, emps, 2)

	s.FetchEmployeeByID(ctx, emps[1].IDValue())
	cur, ok := s.CurrentEmployee()
	require.True(t, ok)
	assert.Equal(t, "2020-01-02", cur.HireDate)

	cur.JobTitle = "Manager"
	require.True(t, s.EditEmployee(ctx, cur).OK)

	require.True(t, s.RemoveEmployee(ctx, emps[0].IDValue()).OK)
	require.Len(t, s.Employees(), 1)
	assert.Equal(t, "Wu", s.Employees()[0].Name)

	b.Fail(api.PathEmployeeDelete, apitest.Failure{Code: 500, Message: "locked"})
	assert.False(t, s.RemoveEmployee(ctx, emps[1].IDValue()).OK)
	assert.Equal(t, "locked", s.ErrorMessage())
	assert.Len(t, s.Employees(), 1)

	assert.False(t, s.AddEmployee(ctx, models.Employee{WorkID: "E2", Name: "dup", Gender: models.GenderMale}).OK)
	assert.Equal(t, "workId already exists", s.ErrorMessage())
}
