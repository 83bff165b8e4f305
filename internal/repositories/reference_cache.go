package repositories

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"shiptix/internal/domain/models"
)

type PortLister interface {
	ListPorts(ctx context.Context) ([]models.Port, error)
}

type ShipLister interface {
	ListShips(ctx context.Context) ([]models.Ship, error)
}

// ReferenceCache keeps ports and ships for a short TTL and collapses
// concurrent fetches from many sessions into one upstream call.
type ReferenceCache struct {
	ports        PortLister
	ships        ShipLister
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	gen     uint64
	portVal []models.Port
	portAt  time.Time
	shipVal []models.Ship
	shipAt  time.Time
}

func NewReferenceCache(ports PortLister, ships ShipLister, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{
		ports:        ports,
		ships:        ships,
		ttl:          ttl,
		fetchTimeout: 10 * time.Second,
		now:          time.Now,
	}
}

func (c *ReferenceCache) Ports(ctx context.Context) ([]models.Port, error) {
	c.mu.RLock()
	if c.portVal != nil && c.fresh(c.portAt) {
		out := append([]models.Port{}, c.portVal...)
		c.mu.RUnlock()
		return out, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	v, err := c.do(ctx, "ports", func(fctx context.Context) (any, error) {
		list, err := c.ports.ListPorts(fctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.portVal, c.portAt = list, c.now()
		}
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]models.Port{}, v.([]models.Port)...), nil
}

func (c *ReferenceCache) Ships(ctx context.Context) ([]models.Ship, error) {
	c.mu.RLock()
	if c.shipVal != nil && c.fresh(c.shipAt) {
		out := append([]models.Ship{}, c.shipVal...)
		c.mu.RUnlock()
		return out, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	v, err := c.do(ctx, "ships", func(fctx context.Context) (any, error) {
		list, err := c.ships.ListShips(fctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.shipVal, c.shipAt = list, c.now()
		}
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]models.Ship{}, v.([]models.Ship)...), nil
}

// Invalidate drops cached values; fetches already in flight will not store.
func (c *ReferenceCache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.portVal, c.shipVal = nil, nil
	c.mu.Unlock()
	c.group.Forget("ports")
	c.group.Forget("ships")
}

func (c *ReferenceCache) fresh(at time.Time) bool {
	return c.ttl > 0 && c.now().Sub(at) < c.ttl
}

// do shares one fetch per key. The fetch is detached from any single
// caller's cancellation; each caller still stops waiting on its own ctx.
func (c *ReferenceCache) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		return fn(fctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}
