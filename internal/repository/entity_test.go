package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/infra/cache"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fakeAPI struct {
	services map[int64]*domain.Service
	requests [][]int64
	err      error
}

func (f *fakeAPI) GetServices(_ context.Context, ids []int64) ([]*domain.Service, error) {
	f.requests = append(f.requests, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetEmployees(context.Context, []int64) ([]*domain.Employee, error) {
	return nil, nil
}

func (f *fakeAPI) GetLocations(context.Context, []int64) ([]*domain.Location, error) {
	return nil, nil
}

func (f *fakeAPI) GetSchedules(context.Context, []int64) ([]*domain.Schedule, error) {
	return nil, nil
}

func (f *fakeAPI) FindCoupon(_ context.Context, code string) (*domain.Coupon, error) {
	return &domain.Coupon{Code: code}, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{services: map[int64]*domain.Service{
		5: {ID: 5, Name: "Massage", Price: 30, Variations: map[int64]domain.Variation{2: {EmployeeID: 2, Price: 40}}},
		6: {ID: 6, Name: "Yoga", Price: 15},
	}}
}

func TestEntityRepository_Memo(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	clk := &clock{now: time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)}
	repos := New(api, nil, time.Minute, clk, nopLogger{})

	found, err := repos.Services.FindAll(ctx, []int64{5, 6, 5, 9})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Massage", found[0].Name)
	assert.Equal(t, [][]int64{{5, 6, 9}}, api.requests)

	_, err = repos.Service(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, api.requests, 1, "served from memory")

	_, err = repos.Service(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)

	clk.now = clk.now.Add(2 * time.Minute)
	_, err = repos.Service(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, api.requests[len(api.requests)-1], "memo expired")
}

func TestEntityRepository_SharedCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	shared := cache.NewRedisCache(client, "test:")

	api := newFakeAPI()
	first := New(api, shared, time.Minute, &RealTimeProvider{}, nopLogger{})
	_, err := first.Services.FindAll(ctx, []int64{5})
	require.NoError(t, err)

	// another process instance finds the service in Redis
	second := New(api, shared, time.Minute, &RealTimeProvider{}, nopLogger{})
	s, err := second.Service(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 40.0, s.GetPrice(2, 1))
	assert.Len(t, api.requests, 1)
}

func TestEntityRepository_FetchError(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("REST request failed")
	repos := New(api, nil, time.Minute, &RealTimeProvider{}, nopLogger{})

	_, err := repos.Service(context.Background(), 5)
	assert.ErrorIs(t, err, ErrFetch)

	coupon, err := repos.Coupon(context.Background(), "SPRING")
	require.NoError(t, err)
	assert.Equal(t, "SPRING", coupon.Code)
}
