package repositories

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type countingPorts struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (c *countingPorts) ListPorts(ctx context.Context) ([]models.Port, error) {
	c.calls.Add(1)
	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	return []models.Port{{ID: "port-sby", Name: "Tanjung Perak", City: "Surabaya"}}, nil
}

type staticShips []models.Ship

func (s staticShips) ListShips(context.Context) ([]models.Ship, error) {
	return append([]models.Ship{}, s...), nil
}

func TestReferenceCache_CollapsesConcurrentFetches(t *testing.T) {
	ports := &countingPorts{release: make(chan struct{})}
	cache := NewReferenceCache(ports, staticShips{}, time.Minute)

	var wg sync.WaitGroup
	results := make([][]models.Port, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			list, err := cache.Ports(context.Background())
			assert.NoError(t, err)
			results[i] = list
		}(i)
	}
	// give every goroutine time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(ports.release)
	wg.Wait()

	assert.Equal(t, int32(1), ports.calls.Load())
	for _, r := range results {
		assert.Len(t, r, 1)
	}
}

func TestReferenceCache_TTLAndInvalidate(t *testing.T) {
	ports := &countingPorts{}
	cache := NewReferenceCache(ports, staticShips{}, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	_, err := cache.Ports(context.Background())
	require.NoError(t, err)
	_, err = cache.Ports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), ports.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = cache.Ports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), ports.calls.Load())

	cache.Invalidate()
	_, err = cache.Ports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), ports.calls.Load())
}

func TestReferenceCache_ReturnsCopies(t *testing.T) {
	cache := NewReferenceCache(&countingPorts{}, staticShips{{ID: "ship-1", Name: "KM Kelud"}}, time.Minute)

	first, err := cache.Ships(context.Background())
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := cache.Ships(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "KM Kelud", second[0].Name)
}

func TestReferenceCache_ErrorsAreNotCached(t *testing.T) {
	ports := &countingPorts{err: errors.New("db down")}
	cache := NewReferenceCache(ports, staticShips{}, time.Minute)

	_, err := cache.Ports(context.Background())
	require.Error(t, err)
	_, err = cache.Ports(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), ports.calls.Load())
}

type failingSchedules struct{}

func (failingSchedules) ListCandidateSchedules(context.Context, string, string) ([]models.Schedule, error) {
	return nil, errors.New("connection refused")
}

func TestSnapshotReader_WrapsFailureAsUnavailable(t *testing.T) {
	reader := SnapshotReader{
		Schedules: failingSchedules{},
		Refs:      NewReferenceCache(&countingPorts{}, staticShips{}, time.Minute),
	}

	_, err := reader.FindCandidates(context.Background(), models.SearchRequest{DeparturePortID: "a", ArrivalPortID: "b"})
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, "data_source_unavailable", domain.Code(err))
}
