package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisclub/court-admin/internal/models"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/jobs"
)

type memoryCacheRepo struct {
	items map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{items: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if key == pattern || (strings.HasSuffix(pattern, "*") && strings.HasPrefix(key, prefix)) {
			delete(m.items, key)
		}
	}
	return nil
}

type queueStub struct {
	jobs []jobs.Job
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func TestReferenceReasonsCachedAndFiltered(t *testing.T) {
	reasons := &reasonClientStub{reasons: []models.Reason{
		{ID: 1, Name: "Wartung", IsActive: true},
		{ID: 2, Name: "Alt", IsActive: false},
	}}
	metrics := NewMetricsService()
	cache := NewCacheService(newMemoryCacheRepo(), metrics, time.Minute, nil, true)
	refs := NewReferenceService(reasons, &templateClientStub{}, cache, time.Minute, nil)
	scope, _ := newScope()

	active, err := refs.Reasons(context.Background(), scope, true)
	require.NoError(t, err)
	assert.Equal(t, []models.Reason{{ID: 1, Name: "Wartung", IsActive: true}}, active)

	all, err := refs.Reasons(context.Background(), scope, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, reasons.calls)
	assert.Len(t, scope.State.Reasons(), 2)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
}

func TestReferenceInvalidateTemplatesQueuesRefresh(t *testing.T) {
	templates := &templateClientStub{templates: []models.Template{{ID: 1}}}
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	refs := NewReferenceService(&reasonClientStub{}, templates, cache, time.Minute, nil)
	queue := &queueStub{}
	refs.SetQueue(queue)
	scope, _ := newScope()

	_, err := refs.Templates(context.Background(), scope)
	require.NoError(t, err)
	require.Contains(t, repo.items, templatesCacheKey)

	refs.InvalidateTemplates(context.Background())
	assert.NotContains(t, repo.items, templatesCacheKey)
	require.Len(t, queue.jobs, 1)

	require.NoError(t, refs.HandleJob(context.Background(), queue.jobs[0]))
	assert.Contains(t, repo.items, templatesCacheKey)
	assert.Contains(t, repo.items, reasonsCacheKey)
}

func TestDisabledCacheAlwaysFetches(t *testing.T) {
	reasons := &reasonClientStub{}
	refs := NewReferenceService(reasons, &templateClientStub{}, NewCacheService(newMemoryCacheRepo(), nil, 0, nil, false), 0, nil)
	scope, _ := newScope()
	_, _ = refs.Reasons(context.Background(), scope, false)
	_, _ = refs.Reasons(context.Background(), scope, false)
	assert.Equal(t, 2, reasons.calls)
}
