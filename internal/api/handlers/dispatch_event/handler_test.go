package dispatch_event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

type mockService struct{ mock.Mock }

func (m *mockService) Dispatch(ctx context.Context, id string, event wizard.Event) (app.State, error) {
	args := m.Called(ctx, id, event)
	return args.Get(0).(app.State), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/events", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"sessionId": "s1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_StepBack(t *testing.T) {
	svc := &mockService{}
	svc.On("Dispatch", mock.Anything, "s1", wizard.Event{Type: wizard.EventStepBack, StepID: "checkout"}).
		Return(app.State{CurrentStep: "cart"}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), `{"type":"step_back","step":"checkout"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current_step":"cart"`)
}

func TestHandle_InvalidEvent(t *testing.T) {
	svc := &mockService{}

	rec := serve(NewHandler(svc, nopLogger{}), `{"type":"jump","step":"checkout"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(NewHandler(svc, nopLogger{}), `{"type":"step_next"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_UnknownSession(t *testing.T) {
	svc := &mockService{}
	svc.On("Dispatch", mock.Anything, "s1", mock.Anything).Return(app.State{}, sessions.ErrSessionNotFound)

	rec := serve(NewHandler(svc, nopLogger{}), `{"type":"step_next","step":"cart"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_NextForOtherStepConflicts(t *testing.T) {
	svc := &mockService{}
	svc.On("Dispatch", mock.Anything, "s1", wizard.Event{Type: wizard.EventStepNext, StepID: "payment"}).
		Return(app.State{}, sessions.ErrStepConflict)

	rec := serve(NewHandler(svc, nopLogger{}), `{"type":"step_next","step":"payment"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_RouteTemplate(t *testing.T) {
	svc := &mockService{}
	svc.On("Dispatch", mock.Anything, "s1", wizard.Event{Type: wizard.EventStepBack, StepID: "checkout"}).
		Return(app.State{CurrentStep: "cart"}, nil)

	method, path, ok := strings.Cut(route, " ")
	assert.True(t, ok)
	r := mux.NewRouter()
	r.HandleFunc(path, NewHandler(svc, nopLogger{}).Handle).Methods(method)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, "/sessions/s1/events", strings.NewReader(`{"type":"step_back","step":"checkout"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
