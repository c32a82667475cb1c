package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

// Service builds the dashboard read model with raw aggregate queries
// and caches the result briefly in Redis. The cache key encodes whether
// financials were included, so a redacted snapshot is never served to a
// privileged caller or vice versa.
type Service struct {
	db     *sqlx.DB
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(db *sqlx.DB, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(withFinancials bool) string {
	if withFinancials {
		return "dashboard:summary:financial"
	}
	return "dashboard:summary:plain"
}

func (s *Service) GetSummary(ctx context.Context, set permissions.CapabilitySet) (*Summary, error) {
	withFinancials := permissions.CanViewFinancialData(set)

	if cached, ok := s.fromCache(ctx, withFinancials); ok {
		return cached, nil
	}

	summary, err := s.build(ctx, withFinancials)
	if err != nil {
		return nil, internal.NewInternalError("failed to build dashboard", err)
	}

	s.toCache(ctx, withFinancials, summary)
	return summary, nil
}

func (s *Service) build(ctx context.Context, withFinancials bool) (*Summary, error) {
	summary := &Summary{}

	err := s.db.SelectContext(ctx, &summary.ProjectsByStatus,
		`SELECT status, COUNT(*) AS count FROM projects GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}

	err = s.db.SelectContext(ctx, &summary.TasksByStatus,
		`SELECT status, COUNT(*) AS count FROM tasks GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &summary.PendingDrawings,
		`SELECT COUNT(*) FROM shop_drawings WHERE status = 'pending_review'`)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &summary.PendingMaterialSpecs,
		`SELECT COUNT(*) FROM material_specs WHERE status = 'pending'`)
	if err != nil {
		return nil, err
	}

	if withFinancials {
		var fin FinancialSummary
		err = s.db.GetContext(ctx, &fin,
			`SELECT COALESCE(SUM(budget), 0) AS total_budget,
			        COALESCE(SUM(actual_cost), 0) AS total_actual_cost
			 FROM projects
			 WHERE status NOT IN ('cancelled')`)
		if err != nil {
			return nil, err
		}
		summary.Financials = &fin
	}

	return summary, nil
}

func (s *Service) fromCache(ctx context.Context, withFinancials bool) (*Summary, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, cacheKey(withFinancials)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", "error", err)
		}
		return nil, false
	}

	var summary Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		s.logger.Warn("dashboard cache entry corrupt, dropping", "error", err)
		_ = s.cache.Del(ctx, cacheKey(withFinancials)).Err()
		return nil, false
	}
	return &summary, true
}

func (s *Service) toCache(ctx context.Context, withFinancials bool, summary *Summary) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(withFinancials), payload, s.ttl).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", "error", err)
	}
}
