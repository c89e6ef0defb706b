// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"fmt"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"

	"github.com/purpleshop/api/internal/core"
)

type Handler struct {
	db      *core.Database
	rdb     *core.Redis
	catalog CatalogStats
}

func NewHandler(db *core.Database, rdb *core.Redis) *Handler {
	return &Handler{
		db:      db,
		rdb:     rdb,
		catalog: newCatalogStats(db.DB),
	}
}

// RegisterRoutes mounts operator stats onto the /admin subrouter,
// which already enforces authentication and the admin role.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.GetSystemStats)
	r.Get("/stats/db", h.GetDatabaseStats)
	r.Get("/stats/redis", h.GetRedisStats)
	r.Get("/stats/runtime", h.GetRuntimeStats)
	r.Get("/stats/catalog", h.GetCatalogStats)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbHealthy := h.db != nil && h.db.Ping(ctx) == nil
	redisHealthy := h.rdb != nil && h.rdb.Ping(ctx) == nil

	response := SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: dbHealthy,
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: redisHealthy,
			Stats:   h.getRedisStats(),
		},
		Runtime: collectRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, collectRuntimeStats())
}

// GetCatalogStats is the operator view of the marketplace: listing
// and account counts by status plus ledger totals, deleted rows
// included.
func (h *Handler) GetCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Collect(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func collectRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.db == nil {
		return nil
	}

	stats := h.db.Stats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.rdb == nil {
		return nil
	}

	stats := h.rdb.PoolStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

// CatalogStats aggregates the marketplace tables for the operator
// dashboard.
type CatalogStats interface {
	Collect(ctx context.Context) (*CatalogStatsResponse, error)
}

type catalogStats struct {
	db core.DBTX
}

func newCatalogStats(db core.DBTX) CatalogStats {
	return &catalogStats{db: db}
}

func (c *catalogStats) Collect(ctx context.Context) (*CatalogStatsResponse, error) {
	out := &CatalogStatsResponse{
		ProductsByStatus: map[string]int{},
		UsersByStatus:    map[string]int{},
	}

	type statusCount struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}

	var productCounts []statusCount
	err := c.db.SelectContext(ctx, &productCounts,
		`SELECT status, COUNT(*) AS count FROM products GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("product status counts: %w", err)
	}
	for _, sc := range productCounts {
		out.ProductsByStatus[sc.Status] = sc.Count
		out.TotalProducts += sc.Count
	}

	var userCounts []statusCount
	err = c.db.SelectContext(ctx, &userCounts,
		`SELECT status, COUNT(*) AS count FROM users WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("user status counts: %w", err)
	}
	for _, sc := range userCounts {
		out.UsersByStatus[sc.Status] = sc.Count
		out.TotalUsers += sc.Count
	}

	err = c.db.GetContext(ctx, &out.TotalFavorites,
		`SELECT COUNT(*) FROM favorites`)
	if err != nil {
		return nil, fmt.Errorf("favorites total: %w", err)
	}

	err = c.db.GetContext(ctx, &out.TotalReviews,
		`SELECT COUNT(*) FROM reviews`)
	if err != nil {
		return nil, fmt.Errorf("reviews total: %w", err)
	}

	return out, nil
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type CatalogStatsResponse struct {
	TotalProducts    int            `json:"total_products"`
	ProductsByStatus map[string]int `json:"products_by_status"`
	TotalUsers       int            `json:"total_users"`
	UsersByStatus    map[string]int `json:"users_by_status"`
	TotalFavorites   int            `json:"total_favorites"`
	TotalReviews     int            `json:"total_reviews"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
