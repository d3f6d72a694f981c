package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// --- Mock SplitConfigRepository ---
type MockSplitConfigRepository struct {
	mock.Mock
}

func (m *MockSplitConfigRepository) FindSplitConfiguration(ctx context.Context) (*domain.SplitConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SplitConfiguration), args.Error(1)
}

func (m *MockSplitConfigRepository) SaveSplitConfiguration(ctx context.Context, cfg domain.SplitConfiguration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockSplitConfigRepository) FindLabelAdminOverride(ctx context.Context, labelAdminID string) (*domain.LabelAdminOverride, error) {
	args := m.Called(ctx, labelAdminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LabelAdminOverride), args.Error(1)
}

func (m *MockSplitConfigRepository) ListLabelAdminOverrides(ctx context.Context) ([]domain.LabelAdminOverride, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LabelAdminOverride), args.Error(1)
}

func (m *MockSplitConfigRepository) SaveLabelAdminOverride(ctx context.Context, override domain.LabelAdminOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockSplitConfigRepository) DeleteLabelAdminOverride(ctx context.Context, labelAdminID string) error {
	args := m.Called(ctx, labelAdminID)
	return args.Error(0)
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
