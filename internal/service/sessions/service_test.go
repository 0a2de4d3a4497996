package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingWizard/internal/steps"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Save(ctx context.Context, record *sessionRepo.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, id string) (*sessionRepo.Record, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*sessionRepo.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type gauge struct{ open int }

func (g *gauge) SessionOpened() { g.open++ }
func (g *gauge) SessionClosed() { g.open-- }

type settingsSource struct {
	calls int
	err   error
}

func (s *settingsSource) GetSettings(context.Context) (*domain.Settings, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return domain.DefaultSettings(), nil
}

// backend пустой бэкенд: услуг нет, форма остаётся на первом шаге
type backend struct{}

func (backend) GetAvailableServices(context.Context) (domain.AvailableServices, error) {
	return domain.AvailableServices{}, nil
}
func (backend) GetTimeSlots(context.Context, bookingapi.TimeSlotsRequest) (domain.TimeSlots, error) {
	return domain.TimeSlots{}, nil
}
func (backend) FindCoupon(context.Context, string) (*domain.Coupon, error) {
	return nil, bookingapi.ErrNotFound
}
func (backend) CreateCustomer(context.Context, bookingapi.CustomerRequest) (*bookingapi.Customer, error) {
	return &bookingapi.Customer{}, nil
}
func (backend) CreateDraftBooking(context.Context, cart.Payload) (*bookingapi.DraftBooking, error) {
	return &bookingapi.DraftBooking{}, nil
}
func (backend) CreateBooking(context.Context, cart.Payload) (*bookingapi.BookingResult, error) {
	return &bookingapi.BookingResult{}, nil
}
func (backend) GetPaymentSettings(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}
func (backend) PreparePayment(context.Context, bookingapi.PreparePaymentRequest) (*bookingapi.PreparedPayment, error) {
	return &bookingapi.PreparedPayment{}, nil
}
func (backend) FindServices(context.Context, []int64) ([]*domain.Service, error) {
	return nil, nil
}
func (backend) FindEmployees(context.Context, []int64) ([]*domain.Employee, error) {
	return nil, nil
}
func (backend) FindLocations(context.Context, []int64) ([]*domain.Location, error) {
	return nil, nil
}
func (backend) Service(context.Context, int64) (*domain.Service, error) {
	return nil, errors.New("none")
}
func (backend) Employee(context.Context, int64) (*domain.Employee, error) {
	return nil, errors.New("none")
}
func (backend) Location(context.Context, int64) (*domain.Location, error) {
	return nil, errors.New("none")
}
func (backend) Coupon(context.Context, string) (*domain.Coupon, error) {
	return nil, errors.New("none")
}

type fixture struct {
	svc      *Service
	repo     *mockRepo
	gauge    *gauge
	settings *settingsSource
	clock    *clock
}

func newFixture() *fixture {
	f := &fixture{
		repo:     &mockRepo{},
		gauge:    &gauge{},
		settings: &settingsSource{},
		clock:    &clock{now: time.Date(2030, time.March, 1, 8, 0, 0, 0, time.UTC)},
	}
	deps := app.Deps{API: backend{}, Entities: backend{}, Clock: f.clock, Logger: nopLogger{}}
	cfg := Config{Form: steps.DefaultFormOptions(), SettingsTTL: time.Minute}
	f.svc = NewService(deps, cfg, f.repo, f.settings, f.gauge, f.clock, nopLogger{})
	return f
}

func TestService_Create(t *testing.T) {
	f := newFixture()
	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(r *sessionRepo.Record) bool {
		return r.StepID == steps.StepServiceForm && len(r.Payload) > 0
	})).Return(nil).Once()

	id, state, err := f.svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, steps.StepServiceForm, state.CurrentStep)
	assert.Equal(t, 1, f.gauge.open)
	f.repo.AssertExpectations(t)
}

func TestService_CreateWithoutSettings(t *testing.T) {
	f := newFixture()
	f.settings.err = errors.New("backend down")

	_, _, err := f.svc.Create(context.Background())
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.gauge.open)
}

func TestService_SettingsCached(t *testing.T) {
	f := newFixture()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, _, err = f.svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.settings.calls)

	f.clock.now = f.clock.now.Add(2 * time.Minute)
	f.settings.err = errors.New("backend down")
	_, _, err = f.svc.Create(ctx)
	require.NoError(t, err, "stale settings are kept")
	assert.Equal(t, 2, f.settings.calls)
}

func TestService_GetUnknown(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "nope").Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := f.svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_RestoreFromRepository(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "stored").Return(&sessionRepo.Record{
		ID:      "stored",
		Payload: []byte(`{"items":[],"customer":{}}`),
		StepID:  steps.StepCheckout,
	}, nil).Once()

	state, err := f.svc.Get(context.Background(), "stored")
	require.NoError(t, err)
	assert.Equal(t, steps.StepServiceForm, state.CurrentStep, "empty cart starts over")
	assert.Equal(t, 1, f.gauge.open)

	_, err = f.svc.Get(context.Background(), "stored")
	require.NoError(t, err)
	f.repo.AssertNumberOfCalls(t, "Get", 1)
}

func TestService_Errors(t *testing.T) {
	f := newFixture()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))
	ctx := context.Background()

	id, _, err := f.svc.Create(ctx)
	require.NoError(t, err, "storage failure does not break the session")

	_, err = f.svc.SetProperties(ctx, id, steps.StepCheckout, map[string]interface{}{"email": "a@b.c"})
	require.ErrorIs(t, err, ErrStepConflict)

	_, err = f.svc.SetProperties(ctx, id, steps.StepServiceForm, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Dispatch(ctx, id, wizard.Event{Type: "jump", StepID: steps.StepServiceForm})
	require.ErrorIs(t, err, ErrInvalidInput)

	submitted, state, err := f.svc.Submit(ctx, id, steps.StepServiceForm)
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.Equal(t, steps.StepServiceForm, state.CurrentStep)
}

func TestService_NextEventGoesThroughSubmit(t *testing.T) {
	f := newFixture()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	id, _, err := f.svc.Create(ctx)
	require.NoError(t, err)

	state, err := f.svc.Dispatch(ctx, id, wizard.Event{Type: wizard.EventStepNext, StepID: steps.StepServiceForm})
	require.NoError(t, err)
	assert.Equal(t, steps.StepServiceForm, state.CurrentStep, "empty form is not skipped")

	_, err = f.svc.Dispatch(ctx, id, wizard.Event{Type: wizard.EventStepNext, StepID: steps.StepPayment})
	require.ErrorIs(t, err, ErrStepConflict)
}

func TestService_DeleteAndExpire(t *testing.T) {
	f := newFixture()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	first, _, err := f.svc.Create(ctx)
	require.NoError(t, err)

	f.repo.On("Delete", mock.Anything, first).Return(nil).Once()
	require.NoError(t, f.svc.Delete(ctx, first))
	assert.Equal(t, 0, f.gauge.open)

	f.repo.On("Delete", mock.Anything, "gone").Return(sessionRepo.ErrSessionNotFound).Once()
	require.ErrorIs(t, f.svc.Delete(ctx, "gone"), ErrSessionNotFound)

	_, _, err = f.svc.Create(ctx)
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(time.Hour)
	f.repo.On("DeleteOlderThan", mock.Anything, f.clock.now.Add(-30*time.Minute)).Return(int64(4), nil).Once()

	n, err := f.svc.Expire(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, f.gauge.open)
	f.repo.AssertExpectations(t)
}
