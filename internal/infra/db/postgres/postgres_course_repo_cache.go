package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
	"learning-platform-api/internal/infra/metrics"
	red "learning-platform-api/internal/infra/redis"
)

var _ repository.CourseRepository = (*courseRepoCacheDecorator)(nil)

// courseRepoCacheDecorator caches single-course reads in Redis. Course rows
// are read on every subscription toggle and checkout, so a short TTL pays
// for itself; writes invalidate the entry.
type courseRepoCacheDecorator struct {
	inner repository.CourseRepository
	cache red.Client
	ttl   time.Duration
}

func NewCourseRepoCacheDecorator(inner repository.CourseRepository, cache red.Client, ttl time.Duration) repository.CourseRepository {
	return &courseRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func courseKey(id string) string { return fmt.Sprintf("course:%s", id) }

func (d *courseRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	// Inside a transaction the caller needs current rows, not cached ones.
	if tx == nil {
		if val, err := d.cache.Get(ctx, courseKey(id)); err == nil {
			var c model.Course
			if json.Unmarshal([]byte(val), &c) == nil {
				metrics.IncCacheRequest("course", "hit")
				return &c, nil
			}
		}
		metrics.IncCacheRequest("course", "miss")
	}

	c, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		if bytes, err := json.Marshal(c); err == nil {
			_ = d.cache.Set(ctx, courseKey(id), bytes, d.ttl)
		}
	}
	return c, nil
}

func (d *courseRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, c *model.Course) error {
	if err := d.inner.Save(ctx, tx, c); err != nil {
		return err
	}
	_ = d.cache.Del(ctx, courseKey(c.ID))
	return nil
}

func (d *courseRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if err := d.inner.Delete(ctx, tx, id); err != nil {
		return err
	}
	_ = d.cache.Del(ctx, courseKey(id))
	return nil
}

func (d *courseRepoCacheDecorator) List(ctx context.Context, tx repository.Tx, scope repository.Scope) ([]*model.Course, error) {
	return d.inner.List(ctx, tx, scope)
}

func (d *courseRepoCacheDecorator) CountLessons(ctx context.Context, tx repository.Tx, courseIDs []string) (map[string]int, error) {
	return d.inner.CountLessons(ctx, tx, courseIDs)
}
