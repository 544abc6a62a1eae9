package services

import (
	"context"
	"fmt"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/constants"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/metrics"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"golang.org/x/sync/singleflight"
)

const aerodromeCacheTTL = 6 * time.Hour

// AerodromeStore is the persistence the directory reads from.
type AerodromeStore interface {
	FindByICAO(ctx context.Context, icao string) (*gormModels.Aerodrome, error)
}

// AerodromeResolver maps an ICAO code to reference data.
type AerodromeResolver interface {
	Resolve(ctx context.Context, icao string) (flightops.Aerodrome, error)
}

// AerodromeDirectoryService resolves ICAO codes through the cache, collapsing
// concurrent misses for the same code into one database read.
type AerodromeDirectoryService struct {
	repo    AerodromeStore
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	group   singleflight.Group
}

var _ AerodromeResolver = (*AerodromeDirectoryService)(nil)

func NewAerodromeDirectoryService(repo AerodromeStore, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *AerodromeDirectoryService {
	return &AerodromeDirectoryService{
		repo:    repo,
		cache:   cache,
		metrics: metricsReg,
	}
}

func (s *AerodromeDirectoryService) Resolve(ctx context.Context, icao string) (flightops.Aerodrome, error) {
	code := normalizeICAO(icao)
	if code == "" {
		return flightops.Aerodrome{}, flightops.InvalidInput("aerodrome code is required")
	}
	key := string(constants.CachePrefixAerodrome) + code

	if val, found := s.cache.Get(key); found {
		if ad, ok := common.DecodeCached[flightops.Aerodrome](val); ok {
			s.metrics.CacheHitsTotal.WithLabelValues("aerodrome").Inc()
			return ad, nil
		}
	}
	s.metrics.CacheMissesTotal.WithLabelValues("aerodrome").Inc()

	// The shared lookup outlives any single caller; each caller still honours its own ctx.
	lookupCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		row, err := s.repo.FindByICAO(lookupCtx, code)
		if err != nil {
			return nil, fmt.Errorf("lookup aerodrome %s: %w", code, err)
		}
		if row == nil {
			return nil, flightops.NotFound("aerodrome %s is not known", code)
		}
		ad := row.ToEngine()
		s.cache.Set(key, ad, aerodromeCacheTTL)
		return ad, nil
	})

	select {
	case <-ctx.Done():
		return flightops.Aerodrome{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return flightops.Aerodrome{}, res.Err
		}
		return res.Val.(flightops.Aerodrome), nil
	}
}

// Invalidate drops every cached aerodrome, e.g. after an import.
func (s *AerodromeDirectoryService) Invalidate() {
	s.cache.Flush()
}
