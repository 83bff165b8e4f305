package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

const (
	redisKeyPrefix  = "shiptix:session:"
	maxWatchRetries = 16
)

// RedisStore keeps each session as one JSON value. Updates run inside
// WATCH/MULTI so the generation compare-and-set holds across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func (s *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (State, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{ID: id}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("redis get session: %w", err)
	}
	return decodeState(id, raw)
}

func (s *RedisStore) PublishSearch(ctx context.Context, id string, req models.SearchRequest) (uint64, error) {
	var gen uint64
	err := s.update(ctx, id, true, func(st *State) bool {
		gen = applyPublish(st, req, s.now())
		return true
	})
	return gen, err
}

func (s *RedisStore) StoreResults(ctx context.Context, id string, res Results) (bool, error) {
	stored := false
	err := s.update(ctx, id, false, func(st *State) bool {
		stored = applyResults(st, res, s.now())
		return stored
	})
	return stored, err
}

func (s *RedisStore) SelectSchedule(ctx context.Context, id string, leg domain.Leg, sched models.EnrichedSchedule) error {
	return s.update(ctx, id, true, func(st *State) bool {
		applySelect(st, leg, sched, s.now())
		return true
	})
}

func (s *RedisStore) Reset(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// update applies fn to the stored state and writes it back when fn returns
// true. With create=false a missing session is left missing.
func (s *RedisStore) update(ctx context.Context, id string, create bool, fn func(*State) bool) error {
	key := s.key(id)
	txf := func(tx *redis.Tx) error {
		st := State{ID: id}
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if !create {
				return nil
			}
		case err != nil:
			return err
		default:
			if st, err = decodeState(id, raw); err != nil {
				return err
			}
		}

		if !fn(&st) {
			return nil
		}
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis update session: %w", err)
		}
		return nil
	}
	return fmt.Errorf("redis update session: %w", redis.TxFailedErr)
}

func decodeState(id string, raw []byte) (State, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	st.ID = id
	return st, nil
}

var _ Store = (*RedisStore)(nil)
