package api_test

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

func newClient(b *apitest.Backend) *api.Client {
	return api.New(request.New(b.URL, time.Second))
}

func TestCreateThenDetail_RoundTrip(t *testing.T) {
	b := apitest.NewBackend(t)
	c := newClient(b)
	ctx := context.Background()

	sent := models.Employee{
		WorkID:   "E100",
		Name:     "Wang Fang",
		JobTitle: "Accountant",
		Gender:   models.GenderFemale,
		HireDate: "2021-03-15",
	}
	_, err := c.CreateEmployee(ctx, sent)
	require.NoError(t, err)

	list, err := c.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	id := list.Data[0].IDValue()

	detail, err := c.GetEmployee(ctx, id)
	require.NoError(t, err)
	got := detail.Data
	assert.Equal(t, id, got.IDValue())
	got.ID = nil
	assert.Equal(t, sent, got)
}

func TestUpdate(t *testing.T) {
	b := apitest.NewBackend(t, models.Employee{ID: models.IDPtr(3), WorkID: "E3", Name: "Zhao", Gender: models.GenderMale})
	c := newClient(b)

	_, err := c.UpdateEmployee(context.Background(), models.Employee{
		ID: models.IDPtr(3), WorkID: "E3", Name: "Zhao Lei", JobTitle: "Lead", Gender: models.GenderMale,
	})
	require.NoError(t, err)
	assert.Equal(t, "Zhao Lei", b.Records()[0].Name)
	assert.Equal(t, 1, b.Calls(api.PathEmployeeUpdate))
}

func TestDelete_SendsIDInBody(t *testing.T) {
	b := apitest.NewBackend(t,
		models.Employee{ID: models.IDPtr(1), WorkID: "E1", Name: "A", Gender: models.GenderMale},
		models.Employee{ID: models.IDPtr(2), WorkID: "E2", Name: "B", Gender: models.GenderFemale},
	)
	c := newClient(b)

	_, err := c.DeleteEmployee(context.Background(), 1)
	require.NoError(t, err)
	records := b.Records()
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].IDValue())
}

func TestDetail_NotFoundIsAPIError(t *testing.T) {
	c := newClient(apitest.NewBackend(t))

	_, err := c.GetEmployee(context.Background(), 99)
	apiErr, ok := request.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "employee not found", apiErr.Message)
}

func TestCreate_DuplicateWorkID(t *testing.T) {
	b := apitest.NewBackend(t, models.Employee{WorkID: "E1", Name: "A", Gender: models.GenderMale})
	c := newClient(b)

	_, err := c.CreateEmployee(context.Background(), models.Employee{WorkID: "E1", Name: "B", Gender: models.GenderFemale})
	require.Error(t, err)
	assert.Equal(t, "workId already exists", err.Error())
	assert.Len(t, b.Records(), 1)
}
