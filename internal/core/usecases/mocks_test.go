package usecases_test

import (
	"context"
	"errors"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

var errCacheMiss = errors.New("cache miss")

// --- Mock JobRepository ---

type mockJobRepo struct {
	insertFn     func(ctx context.Context, job *domain.Job) error
	getByIDFn    func(ctx context.Context, id string) (*domain.Job, error)
	listRecentFn func(ctx context.Context, limit, offset int) ([]domain.Job, int, error)
	listByKindFn func(ctx context.Context, kind string, limit, offset int) ([]domain.Job, int, error)
	statsFn      func(ctx context.Context) (*domain.JobStats, error)
}

func (m *mockJobRepo) Insert(ctx context.Context, job *domain.Job) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, job)
	}
	return nil
}

func (m *mockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockJobRepo) ListRecent(ctx context.Context, limit, offset int) ([]domain.Job, int, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockJobRepo) ListByKind(ctx context.Context, kind string, limit, offset int) ([]domain.Job, int, error) {
	if m.listByKindFn != nil {
		return m.listByKindFn(ctx, kind, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockJobRepo) Stats(ctx context.Context) (*domain.JobStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &domain.JobStats{}, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	crewUpdates []*domain.CrewUpdate
	presences   []*domain.Presence
	broadcasts  [][]byte
	publishErr  error
}

func (m *mockPublisher) PublishCrewUpdate(ctx context.Context, update *domain.CrewUpdate) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.crewUpdates = append(m.crewUpdates, update)
	return nil
}

func (m *mockPublisher) PublishPresence(ctx context.Context, presence *domain.Presence) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.presences = append(m.presences, presence)
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.broadcasts = append(m.broadcasts, data)
	return nil
}

// --- Mock CacheService ---

type mockCache struct {
	store map[string][]byte
	gets  int
	hits  int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if v, ok := m.store[key]; ok {
		m.hits++
		return v, nil
	}
	return nil, errCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}
