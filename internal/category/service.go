// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/purpleshop/api/internal/core"
)

const (
	cacheKeyCategories = "stats:categories"
	cacheKeyCategory   = "stats:category:"
	cacheKeySummary    = "stats:summary"
)

// Service serves catalog rollups through a short-lived Redis cache.
// Rollups tolerate staleness up to the TTL; a cache outage degrades
// to direct queries.
type Service struct {
	repo   Repository
	rdb    *core.Redis
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(
	repo Repository,
	rdb *core.Redis,
	ttl time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{repo: repo, rdb: rdb, ttl: ttl, logger: logger}
}

func (s *Service) Categories(ctx context.Context) (*CategoryListResponse, error) {
	return cached(ctx, s, cacheKeyCategories, func() (*CategoryListResponse, error) {
		counts, err := s.repo.CategoryCounts(ctx)
		if err != nil {
			return nil, err
		}
		if counts == nil {
			counts = []CategoryCount{}
		}
		return &CategoryListResponse{
			Categories: counts,
			Total:      len(counts),
		}, nil
	})
}

func (s *Service) CategoryDetail(
	ctx context.Context,
	name string,
) (*CategoryDetailResponse, error) {
	return cached(ctx, s, cacheKeyCategory+name, func() (*CategoryDetailResponse, error) {
		total, err := s.repo.CategoryTotal(ctx, name)
		if err != nil {
			return nil, err
		}
		if total == 0 {
			return nil, core.NotFoundError("category")
		}

		subcategories, err := s.repo.SubcategoryCounts(ctx, name)
		if err != nil {
			return nil, err
		}
		locations, err := s.repo.LocationCounts(ctx, name)
		if err != nil {
			return nil, err
		}
		types, err := s.repo.TypeCounts(ctx, name)
		if err != nil {
			return nil, err
		}
		prices, err := s.repo.PriceStats(ctx, name)
		if err != nil {
			return nil, err
		}

		if subcategories == nil {
			subcategories = []SubcategoryCount{}
		}
		if locations == nil {
			locations = []LocationCount{}
		}
		if types == nil {
			types = []TypeCount{}
		}

		return &CategoryDetailResponse{
			Category:      name,
			Count:         total,
			Subcategories: subcategories,
			PriceStats:    prices,
			Locations:     locations,
			ProductTypes:  types,
		}, nil
	})
}

func (s *Service) Subcategories(
	ctx context.Context,
	name string,
) (*SubcategoryListResponse, error) {
	total, err := s.repo.CategoryTotal(ctx, name)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, core.NotFoundError("category")
	}

	subcategories, err := s.repo.SubcategoryCounts(ctx, name)
	if err != nil {
		return nil, err
	}
	if subcategories == nil {
		subcategories = []SubcategoryCount{}
	}

	return &SubcategoryListResponse{
		Category:      name,
		Subcategories: subcategories,
	}, nil
}

func (s *Service) Summary(ctx context.Context) (*GlobalStats, error) {
	return cached(ctx, s, cacheKeySummary, func() (*GlobalStats, error) {
		return s.repo.GlobalStats(ctx)
	})
}

// cached wraps a rollup computation with read-through caching. Only
// successful results are cached; NotFound and other errors pass
// through uncached.
func cached[T any](
	ctx context.Context,
	s *Service,
	key string,
	compute func() (*T, error),
) (*T, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Client.Get(ctx, key).Bytes()
		if err == nil {
			var out T
			if err := json.Unmarshal(raw, &out); err == nil {
				return &out, nil
			}
			s.logger.WarnContext(ctx, "stats cache entry corrupt",
				slog.String("key", key))
		} else if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "stats cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		raw, err := json.Marshal(out)
		if err == nil {
			if err := s.rdb.Client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				s.logger.WarnContext(ctx, "stats cache write failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return out, nil
}
