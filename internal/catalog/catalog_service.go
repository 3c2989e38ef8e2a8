package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go-erp/internal/apiclient"
	catalogerrors "go-erp/internal/catalog/errors"
	"go-erp/internal/shared/contextutil"
	"go-erp/internal/shared/listing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultListTTL = 5 * time.Minute

func ListCacheKey(resource string) string {
	return "catalog:" + resource + ":list"
}

type Service[T Record[T]] interface {
	List(ctx context.Context, q listing.Query) (listing.Page[T], error)
	Get(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id string) error
	Action(ctx context.Context, id, action string) (T, error)
	Invalidate(ctx context.Context) error
}

type service[T Record[T]] struct {
	resource Resource[T]
	client   *apiclient.Client
	rdb      *redis.Client
	ttl      time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

// NewService builds the write-through service for one resource. rdb may be
// nil, in which case every list is fetched from the ERP.
func NewService[T Record[T]](
	resource Resource[T],
	client *apiclient.Client,
	rdb *redis.Client,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service[T] {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service[T]{
		resource: resource,
		client:   client,
		rdb:      rdb,
		ttl:      ttl,
		sf:       &singleflight.Group{},
		logger:   l.Named("catalog." + resource.Name),
	}
}

func (s *service[T]) List(ctx context.Context, q listing.Query) (listing.Page[T], error) {
	all, err := s.all(ctx)
	if err != nil {
		return listing.Page[T]{}, err
	}
	return listing.Apply(all, s.resource.Spec, q), nil
}

// all returns the full collection, from Redis when warm. Concurrent misses
// share one upstream fetch.
func (s *service[T]) all(ctx context.Context) ([]T, error) {
	cacheKey := ListCacheKey(s.resource.Name)
	log := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var items []T
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
			log.Warn("catalog cache entry unreadable", zap.String("key", cacheKey))
		} else if err != redis.Nil {
			log.Warn("catalog cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// The flight is shared; one caller leaving must not fail the others.
		ctx := context.WithoutCancel(ctx)
		items, err := apiclient.GetList[T](ctx, s.client, s.resource.Path, nil)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(items); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
					log.Warn("catalog cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]T), nil
}

func (s *service[T]) Get(ctx context.Context, id string) (T, error) {
	if strings.TrimSpace(id) == "" {
		var zero T
		return zero, catalogerrors.ErrMissingID
	}
	return apiclient.GetOne[T](ctx, s.client, apiclient.ItemPath(s.resource.Path, id))
}

// Save validates locally, then creates when rec has no id and updates
// otherwise. A validation failure never reaches the ERP.
func (s *service[T]) Save(ctx context.Context, rec T) (T, error) {
	if err := rec.Validate(); err != nil {
		var zero T
		return zero, err
	}

	method, path := http.MethodPost, s.resource.Path
	if id := rec.RecordID(); id != "" {
		method, path = http.MethodPut, apiclient.ItemPath(s.resource.Path, id)
	}

	saved, err := apiclient.Send[T](ctx, s.client, method, path, rec)
	if err != nil {
		var zero T
		return zero, err
	}
	// Some endpoints answer with an empty body or just a message.
	if saved.RecordID() == "" {
		saved = rec
	}

	s.invalidate(ctx)
	return saved, nil
}

func (s *service[T]) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return catalogerrors.ErrMissingID
	}
	if err := s.client.Do(ctx, http.MethodDelete, apiclient.ItemPath(s.resource.Path, id), nil, nil, nil); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Action calls a domain action such as POST /kpi-records/{id}/approve.
func (s *service[T]) Action(ctx context.Context, id, action string) (T, error) {
	var zero T
	if !s.resource.hasAction(action) {
		return zero, catalogerrors.ErrUnknownAction
	}
	if strings.TrimSpace(id) == "" {
		return zero, catalogerrors.ErrMissingID
	}

	rec, err := apiclient.Send[T](ctx, s.client, http.MethodPost, apiclient.ItemPath(s.resource.Path, id)+"/"+action, nil)
	if err != nil {
		return zero, err
	}

	s.invalidate(ctx)
	return rec, nil
}

func (s *service[T]) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, ListCacheKey(s.resource.Name)).Err()
}

func (s *service[T]) invalidate(ctx context.Context) {
	if err := s.Invalidate(ctx); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate catalog cache",
			zap.String("key", ListCacheKey(s.resource.Name)),
			zap.Error(err),
		)
	}
}
