package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/SscSPs/revenue_split_app/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshRates(ctx context.Context) (domain.RateStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateStatus), args.Error(1)
}

func (m *MockRefresher) ForceRefresh(ctx context.Context) (domain.RateStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateStatus), args.Error(1)
}

func (m *MockRefresher) ResetRefreshGate() { m.Called() }

func (m *MockRefresher) EnsureRates(ctx context.Context) { m.Called(ctx) }

func TestRateRefreshJob_Run(t *testing.T) {
	refresher := new(MockRefresher)
	refresher.On("RefreshRates", mock.Anything).Return(domain.RateStatus{Source: domain.RateSourceLive}, nil).Once()
	refresher.On("RefreshRates", mock.Anything).Return(domain.RateStatus{Source: domain.RateSourceDefaults}, errors.New("timeout")).Once()

	job := jobs.NewRateRefreshJob(refresher, 30, nil)
	job.Run()
	job.Run()

	refresher.AssertNumberOfCalls(t, "RefreshRates", 2)
	refresher.AssertNotCalled(t, "ForceRefresh", mock.Anything)
}

func TestRateRefreshJob_DisabledInterval(t *testing.T) {
	refresher := new(MockRefresher)
	stop := jobs.NewRateRefreshJob(refresher, 0, nil).Start()
	stop()

	assert.Empty(t, refresher.Calls)
}
