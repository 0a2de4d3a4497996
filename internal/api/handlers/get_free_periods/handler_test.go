package get_free_periods

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getFreePeriods "github.com/m04kA/SMC-BookingWizard/internal/usecase/get_free_periods"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getFreePeriods.Request) (*getFreePeriods.Response, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*getFreePeriods.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, employeeID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employeeID+"/free-periods?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"employeeId": employeeID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	date := time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	period := types.MustParseTimePeriod("09:00 - 12:00")
	period.SetDate(date)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getFreePeriods.Request) bool {
		return r.EmployeeID == 10 && r.LocationID == 100 && r.ServiceID == 0 && r.Date.Equal(date)
	})).Return(&getFreePeriods.Response{
		Date:       date,
		EmployeeID: 10,
		LocationID: 100,
		Periods:    []types.TimePeriod{period},
	}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "10", "date=2030-03-04&locationId=100")
	require.Equal(t, http.StatusOK, rec.Code)

	var body FreePeriodsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-03-04", body.Date)
	assert.Equal(t, []string{"09:00 - 12:00"}, body.Periods)
	assert.Empty(t, body.Slots)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		query      string
	}{
		{"employee id", "abc", "date=2030-03-04"},
		{"missing date", "10", ""},
		{"bad date", "10", "date=04.03.2030"},
		{"bad location", "10", "date=2030-03-04&locationId=x"},
		{"bad service", "10", "date=2030-03-04&serviceId=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(NewHandler(uc, nopLogger{}), tt.employeeID, tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{getFreePeriods.ErrEmployeeNotFound, http.StatusNotFound},
		{getFreePeriods.ErrScheduleNotFound, http.StatusNotFound},
		{getFreePeriods.ErrServiceNotFound, http.StatusNotFound},
		{getFreePeriods.ErrInvalidInput, http.StatusBadRequest},
		{getFreePeriods.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, nopLogger{}), "10", "date=2030-03-04")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
