package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.DocumentStore = (*CachedStore)(nil)

const DefaultCacheTTL = 30 * time.Minute

var errStaleListing = errors.New("listing is stale")

// CachedStore caches collection listings in redis in front of another
// store. Any write to a collection bumps its generation and drops its cached
// listing; single document reads always go to the backing store.
type CachedStore struct {
	next   domain.DocumentStore
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedStore(next domain.DocumentStore, cache *redis.Client, ttl time.Duration, logger *log.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.WithPrefix("cache"),
	}
}

func (s *CachedStore) cacheKey(collection string) string {
	return fmt.Sprintf("docs:%s", collection)
}

func (s *CachedStore) genKey(collection string) string {
	return fmt.Sprintf("docs:gen:%s", collection)
}

func (s *CachedStore) invalidate(ctx context.Context, collection string) {
	_, err := s.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, s.genKey(collection))
		pipe.Del(ctx, s.cacheKey(collection))
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to invalidate listing", "collection", collection, "err", err)
	}
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *CachedStore) generation(ctx context.Context, getter stringGetter, collection string) (string, error) {
	gen, err := getter.Get(ctx, s.genKey(collection)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// fill stores a listing read at generation gen. It is dropped when a write
// bumped the generation in the meantime, since the listing may predate it.
func (s *CachedStore) fill(ctx context.Context, collection, gen string, docs []*domain.Document) {
	data, err := json.Marshal(docs)
	if err != nil {
		return
	}

	genKey := s.genKey(collection)
	err = s.cache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := s.generation(ctx, tx, collection)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleListing
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.cacheKey(collection), data, s.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleListing), errors.Is(err, redis.TxFailedErr):
		s.logger.Debug("listing changed while reading, not cached", "collection", collection)
	default:
		s.logger.Warn("redis set error", "err", err)
	}
}

func (s *CachedStore) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	key := s.cacheKey(collection)

	val, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		var docs []*domain.Document
		if err := json.Unmarshal([]byte(val), &docs); err == nil {
			return docs, nil
		}

		s.logger.Warn("corrupted listing, cleaning up key", "collection", collection)
		s.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("redis read error", "err", err)
	}

	gen, genErr := s.generation(ctx, s.cache, collection)

	docs, err := s.next.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		s.fill(ctx, collection, gen, docs)
	}

	return docs, nil
}

func (s *CachedStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	return s.next.Get(ctx, collection, id)
}

func (s *CachedStore) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	id, err := s.next.Add(ctx, collection, data)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, collection)
	return id, nil
}

func (s *CachedStore) Set(ctx context.Context, collection, id string, data json.RawMessage) error {
	if err := s.next.Set(ctx, collection, id, data); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}

func (s *CachedStore) SetIfVersion(ctx context.Context, collection, id string, version int64, data json.RawMessage) error {
	if err := s.next.SetIfVersion(ctx, collection, id, version, data); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, collection, id string) error {
	defer s.invalidate(ctx, collection)
	return s.next.Delete(ctx, collection, id)
}
