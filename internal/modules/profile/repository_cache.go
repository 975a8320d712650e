package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
)

// cachedRepository is a read-through Redis cache in front of another
// Repository. Profiles are stored under their id; the email key only points
// at the id, so invalidating the id key is enough after a write.
type cachedRepository struct {
	next Repository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedRepository wraps next with a Redis cache. Cache failures are
// logged and never fail the call.
func NewCachedRepository(next Repository, rdb *redis.Client, ttl time.Duration) Repository {
	return &cachedRepository{next: next, rdb: rdb, ttl: ttl}
}

func idKey(id int64) string       { return fmt.Sprintf("profile:id:%d", id) }
func emailKey(email string) string { return "profile:email:" + email }

func (r *cachedRepository) FindByID(ctx context.Context, id int64) (*Profile, error) {
	if p, ok := r.cached(ctx, id); ok {
		return p, nil
	}

	p, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, p)
	return p, nil
}

func (r *cachedRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	id, err := r.rdb.Get(ctx, emailKey(email)).Int64()
	switch {
	case err == nil:
		// The pointer may be stale after an email change.
		if p, ok := r.cached(ctx, id); ok && p.Email == email {
			return p, nil
		}
	case !errors.Is(err, redis.Nil):
		logging.Warn(ctx, "profile cache read failed", zap.String("key", emailKey(email)), zap.Error(err))
	}

	p, err := r.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.store(ctx, p)
	return p, nil
}

func (r *cachedRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.cached(ctx, id); ok {
		return true, nil
	}
	return r.next.ExistsByID(ctx, id)
}

func (r *cachedRepository) Save(ctx context.Context, p *Profile) (*Profile, error) {
	saved, err := r.next.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	if p.ID != 0 {
		r.invalidate(ctx, p.ID)
	}
	return saved, nil
}

func (r *cachedRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *cachedRepository) FindAll(ctx context.Context) ([]Profile, error) {
	return r.next.FindAll(ctx)
}

func (r *cachedRepository) cached(ctx context.Context, id int64) (*Profile, bool) {
	b, err := r.rdb.Get(ctx, idKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn(ctx, "profile cache read failed", zap.String("key", idKey(id)), zap.Error(err))
		}
		return nil, false
	}

	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		logging.Warn(ctx, "discarding undecodable cache entry", zap.String("key", idKey(id)), zap.Error(err))
		r.invalidate(ctx, id)
		return nil, false
	}
	return &p, true
}

func (r *cachedRepository) store(ctx context.Context, p *Profile) {
	b, err := json.Marshal(p)
	if err != nil {
		logging.Warn(ctx, "profile cache encode failed", zap.Int64("profile_id", p.ID), zap.Error(err))
		return
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, idKey(p.ID), b, r.ttl)
		pipe.Set(ctx, emailKey(p.Email), strconv.FormatInt(p.ID, 10), r.ttl)
		return nil
	})
	if err != nil {
		logging.Warn(ctx, "profile cache write failed", zap.Int64("profile_id", p.ID), zap.Error(err))
	}
}

func (r *cachedRepository) invalidate(ctx context.Context, id int64) {
	if err := r.rdb.Del(ctx, idKey(id)).Err(); err != nil {
		logging.Warn(ctx, "profile cache invalidation failed", zap.Int64("profile_id", id), zap.Error(err))
	}
}
