package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"taximeter/internal/domain"
	"taximeter/internal/redis"
	"taximeter/internal/repository"
)

// ──────────────────────────────────────────────
// FAKE CLOCK
// ──────────────────────────────────────────────

// FakeClock is a manually advanced clock implementing meter.Clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock frozen at the given instant.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ──────────────────────────────────────────────
// MOCK TARIFF REPOSITORY
// ──────────────────────────────────────────────

// MockTariffRepository is a mock implementation of TariffRepository.
type MockTariffRepository struct {
	mu    sync.RWMutex
	plans map[string]*domain.TariffPlan

	// Error injection
	GetByNameError error
}

// NewMockTariffRepository creates a new mock tariff repository.
func NewMockTariffRepository() *MockTariffRepository {
	return &MockTariffRepository{
		plans: make(map[string]*domain.TariffPlan),
	}
}

// AddPlan adds a plan to the mock repository.
func (m *MockTariffRepository) AddPlan(plan *domain.TariffPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.Name] = plan
}

func (m *MockTariffRepository) Create(ctx context.Context, plan *domain.TariffPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.Name] = plan
	return nil
}

func (m *MockTariffRepository) GetByName(ctx context.Context, name string) (*domain.TariffPlan, error) {
	if m.GetByNameError != nil {
		return nil, m.GetByNameError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.plans[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *plan
	return &copy, nil
}

func (m *MockTariffRepository) GetAll(ctx context.Context) ([]*domain.TariffPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.TariffPlan, 0, len(m.plans))
	for _, p := range m.plans {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTariffRepository) Update(ctx context.Context, plan *domain.TariffPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[plan.Name]; !ok {
		return repository.ErrNotFound
	}
	m.plans[plan.Name] = plan
	return nil
}

var _ repository.TariffRepository = (*MockTariffRepository)(nil)

// ──────────────────────────────────────────────
// MOCK TELEMETRY STORE
// ──────────────────────────────────────────────

// MockTelemetryStore is an in-memory implementation of TelemetryStoreInterface.
type MockTelemetryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*redis.LiveSnapshot
	fixes     map[string]*redis.LiveFix

	// Counters for verification
	PublishSnapshotCallCount int32
	PublishFixCallCount      int32
	ClearCallCount           int32
}

// NewMockTelemetryStore creates a new mock telemetry store.
func NewMockTelemetryStore() *MockTelemetryStore {
	return &MockTelemetryStore{
		snapshots: make(map[string]*redis.LiveSnapshot),
		fixes:     make(map[string]*redis.LiveFix),
	}
}

func (m *MockTelemetryStore) PublishSnapshot(ctx context.Context, snap *redis.LiveSnapshot) error {
	atomic.AddInt32(&m.PublishSnapshotCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *snap
	m.snapshots[snap.VehicleID] = &copy
	return nil
}

func (m *MockTelemetryStore) LastSnapshot(ctx context.Context, vehicleID string) (*redis.LiveSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[vehicleID]
	if !ok {
		return nil, nil
	}
	copy := *snap
	return &copy, nil
}

func (m *MockTelemetryStore) PublishFix(ctx context.Context, fix *redis.LiveFix) error {
	atomic.AddInt32(&m.PublishFixCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *fix
	m.fixes[fix.VehicleID] = &copy
	return nil
}

func (m *MockTelemetryStore) LastFix(ctx context.Context, vehicleID string) (*redis.LiveFix, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fix, ok := m.fixes[vehicleID]
	if !ok {
		return nil, nil
	}
	copy := *fix
	return &copy, nil
}

func (m *MockTelemetryStore) Clear(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.ClearCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, vehicleID)
	delete(m.fixes, vehicleID)
	return nil
}

var _ redis.TelemetryStoreInterface = (*MockTelemetryStore)(nil)

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireTripLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[vehicleID] {
		return false, nil
	}
	m.locks[vehicleID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseTripLock(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, vehicleID)
	return nil
}

// Held reports whether the lock is currently held, for test assertions.
func (m *MockLockStore) Held(vehicleID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[vehicleID]
}

var _ redis.LockStoreInterface = (*MockLockStore)(nil)
