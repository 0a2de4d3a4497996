package submit_step

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
)

type mockService struct{ mock.Mock }

func (m *mockService) Submit(ctx context.Context, id, stepID string) (bool, app.State, error) {
	args := m.Called(ctx, id, stepID)
	return args.Bool(0), args.Get(1).(app.State), args.Error(2)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, sessionID, stepID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/steps/"+stepID+"/submit", nil)
	req = mux.SetURLVars(req, map[string]string{"sessionId": sessionID, "stepId": stepID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Submitted(t *testing.T) {
	svc := &mockService{}
	svc.On("Submit", mock.Anything, "s1", "checkout").
		Return(true, app.State{CurrentStep: "payment", CanGoBack: true}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), "s1", "checkout")
	require.Equal(t, http.StatusOK, rec.Code)

	var body SubmitStepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Submitted)
	assert.Equal(t, "s1", body.SessionID)
	assert.Equal(t, "payment", body.State.CurrentStep)
	svc.AssertExpectations(t)
}

func TestHandle_Rejected(t *testing.T) {
	svc := &mockService{}
	svc.On("Submit", mock.Anything, "s1", "checkout").
		Return(false, app.State{CurrentStep: "checkout"}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), "s1", "checkout")
	require.Equal(t, http.StatusOK, rec.Code)

	var body SubmitStepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Submitted)
	assert.Equal(t, "checkout", body.State.CurrentStep)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", sessions.ErrSessionNotFound, http.StatusNotFound},
		{"not current", fmt.Errorf("%w: payment", sessions.ErrStepConflict), http.StatusConflict},
		{"invalid", sessions.ErrInvalidInput, http.StatusBadRequest},
		{"internal", sessions.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Submit", mock.Anything, "s1", "payment").Return(false, app.State{}, tt.err)

			rec := serve(NewHandler(svc, nopLogger{}), "s1", "payment")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandle_RouteTemplate(t *testing.T) {
	svc := &mockService{}
	svc.On("Submit", mock.Anything, "s1", "checkout").Return(true, app.State{CurrentStep: "payment"}, nil)

	method, path, ok := strings.Cut(route, " ")
	require.True(t, ok)
	r := mux.NewRouter()
	r.HandleFunc(path, NewHandler(svc, nopLogger{}).Handle).Methods(method)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, "/sessions/s1/steps/checkout/submit", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
