// AngelaMos | 2026
// service_test.go

package category

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/purpleshop/api/internal/core"
)

type fakeRepo struct {
	Repository

	counts     []CategoryCount
	totals     map[string]int
	subs       []SubcategoryCount
	locations  []LocationCount
	types      []TypeCount
	prices     *PriceStats
	global     *GlobalStats
	countCalls int
}

func (f *fakeRepo) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	f.countCalls++
	return f.counts, nil
}

func (f *fakeRepo) CategoryTotal(ctx context.Context, category string) (int, error) {
	return f.totals[category], nil
}

func (f *fakeRepo) SubcategoryCounts(ctx context.Context, category string) ([]SubcategoryCount, error) {
	return f.subs, nil
}

func (f *fakeRepo) LocationCounts(ctx context.Context, category string) ([]LocationCount, error) {
	return f.locations, nil
}

func (f *fakeRepo) TypeCounts(ctx context.Context, category string) ([]TypeCount, error) {
	return f.types, nil
}

func (f *fakeRepo) PriceStats(ctx context.Context, category string) (*PriceStats, error) {
	return f.prices, nil
}

func (f *fakeRepo) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	return f.global, nil
}

func newTestService(repo Repository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, nil, time.Minute, logger)
}

func TestCategoriesWithoutCache(t *testing.T) {
	repo := &fakeRepo{counts: []CategoryCount{
		{Category: "furniture", Count: 12},
		{Category: "books", Count: 3},
	}}
	svc := newTestService(repo)

	resp, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if resp.Total != 2 || len(resp.Categories) != 2 {
		t.Errorf("Categories() = %+v, want 2 entries", resp)
	}
	if repo.countCalls != 1 {
		t.Errorf("repository calls = %d, want 1 without cache", repo.countCalls)
	}
}

func TestCategoriesEmptyCatalog(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	resp, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if resp.Categories == nil {
		t.Error("empty catalog must serialize as [], not null")
	}
	if resp.Total != 0 {
		t.Errorf("Total = %d, want 0", resp.Total)
	}
}

func TestCategoryDetailUnknownCategory(t *testing.T) {
	svc := newTestService(&fakeRepo{totals: map[string]int{}})

	_, err := svc.CategoryDetail(context.Background(), "nonexistent")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("CategoryDetail(unknown) error = %v, want not found", err)
	}
}

func TestCategoryDetailNoPricedListings(t *testing.T) {
	repo := &fakeRepo{
		totals: map[string]int{"freebies": 4},
		types:  []TypeCount{{ProductType: "free", Count: 4}},
	}
	svc := newTestService(repo)

	resp, err := svc.CategoryDetail(context.Background(), "freebies")
	if err != nil {
		t.Fatalf("CategoryDetail() error = %v", err)
	}
	if resp.PriceStats != nil {
		t.Errorf("PriceStats = %+v, must be absent without priced listings",
			resp.PriceStats)
	}
	if resp.Subcategories == nil || resp.Locations == nil {
		t.Error("breakdown lists must serialize as [], not null")
	}
}

func TestSummaryIncludesCategoryBreakdown(t *testing.T) {
	repo := &fakeRepo{global: &GlobalStats{
		TotalProducts:   15,
		TotalCategories: 2,
		ByCategory:      map[string]int{"furniture": 12, "books": 3},
		ByProductType:   map[string]int{"free": 0, "second_hand": 15, "new": 0},
		AveragePrice:    49.99,
	}}
	svc := newTestService(repo)

	stats, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if stats.ByCategory["furniture"] != 12 || stats.ByCategory["books"] != 3 {
		t.Errorf("ByCategory = %v, want furniture=12 books=3", stats.ByCategory)
	}

	body, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{
		"total_products", "total_categories",
		"by_category", "by_product_type", "average_price",
	} {
		if !strings.Contains(string(body), `"`+key+`"`) {
			t.Errorf("summary body missing %q: %s", key, body)
		}
	}
}

func TestSubcategoriesUnknownCategory(t *testing.T) {
	svc := newTestService(&fakeRepo{totals: map[string]int{}})

	_, err := svc.Subcategories(context.Background(), "nonexistent")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Subcategories(unknown) error = %v, want not found", err)
	}
}
