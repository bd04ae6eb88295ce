package search

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/andreiashu/locode"
)

type cachingService struct {
	cache *gocache.Cache
	// generation is part of every key and moves on each Reload, so results
	// computed against a replaced index are never read back.
	generation atomic.Uint64
	Service
}

// NewCachingService returns a service that memoizes location queries for
// ttl. The cache is flushed on every successful Reload.
func NewCachingService(ttl, cleanupInterval time.Duration, s Service) Service {
	return &cachingService{cache: gocache.New(ttl, cleanupInterval), Service: s}
}

// cached returns copies of the stored results; callers may modify them.
func (s *cachingService) cached(key string, query func() []locode.Location) []locode.Location {
	key = fmt.Sprintf("%d\x00%s", s.generation.Load(), key)
	if v, ok := s.cache.Get(key); ok {
		return slices.Clone(v.([]locode.Location))
	}
	locations := query()
	s.cache.SetDefault(key, slices.Clone(locations))
	return locations
}

func limitKey(limit []int) string {
	if len(limit) == 0 {
		return "-"
	}
	return fmt.Sprint(limit[0])
}

func (s *cachingService) FindByLocode(prefix string) []locode.Location {
	return s.cached("locode\x00"+prefix, func() []locode.Location {
		return s.Service.FindByLocode(prefix)
	})
}

func (s *cachingService) FindByName(prefix string) []locode.Location {
	return s.cached("name\x00"+prefix, func() []locode.Location {
		return s.Service.FindByName(prefix)
	})
}

func (s *cachingService) FindByNameFuzzy(name string, maxDist int) []locode.Location {
	return s.cached(fmt.Sprintf("fuzzy\x00%s\x00%d", name, maxDist), func() []locode.Location {
		return s.Service.FindByNameFuzzy(name, maxDist)
	})
}

func (s *cachingService) FindByCountryAndFunction(countryCode string, fn locode.Function, limit ...int) []locode.Location {
	key := fmt.Sprintf("country\x00%s\x00%d\x00%s", countryCode, byte(fn), limitKey(limit))
	return s.cached(key, func() []locode.Location {
		return s.Service.FindByCountryAndFunction(countryCode, fn, limit...)
	})
}

func (s *cachingService) FindByFunction(fn locode.Function, limit ...int) []locode.Location {
	key := fmt.Sprintf("function\x00%d\x00%s", byte(fn), limitKey(limit))
	return s.cached(key, func() []locode.Location {
		return s.Service.FindByFunction(fn, limit...)
	})
}

func (s *cachingService) Reload() error {
	if err := s.Service.Reload(); err != nil {
		return err
	}
	s.generation.Add(1)
	s.cache.Flush()
	return nil
}
