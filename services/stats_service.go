package services

import (
	"context"
	"freshcatch_server/database"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"math"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type StatsService struct {
	logger      *gecho.Logger
	db          *database.DB
	authService *AuthService
}

func NewStatsService(logger *gecho.Logger, db *database.DB, authService *AuthService) *StatsService {
	return &StatsService{
		logger:      logger,
		db:          db,
		authService: authService,
	}
}

// revenueRow is the scan target for the summary aggregate
type revenueRow struct {
	TotalRevenue         uint64 `bun:"total_revenue"`
	TodayRevenue         uint64 `bun:"today_revenue"`
	DeliveredOrders      int    `bun:"delivered_orders"`
	TodayDeliveredOrders int    `bun:"today_delivered_orders"`
}

// GetRevenueSummary computes delivered-order revenue from the order rows.
// Admin only: non-admin callers get lib.ErrAccessDenied, never a zeroed
// summary. The result is always recomputed, never cached.
func (ss *StatsService) GetRevenueSummary(ctx context.Context, callerId uuid.UUID) (*structs.RevenueSummary, error) {
	if err := ss.requireAdmin(callerId); err != nil {
		return nil, err
	}

	startTime := time.Now()
	// Half-open UTC day bounds; comparing timestamptz against explicit
	// instants keeps the day boundary independent of the session time zone
	todayStart, todayEnd := lib.UTCDayBounds(time.Now())

	row, err := database.RawQueryOne[revenueRow](ss.db, ctx,
		`SELECT
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(SUM(total_amount) FILTER (WHERE created_at >= ? AND created_at < ?), 0) AS today_revenue,
			COUNT(*) AS delivered_orders,
			COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?) AS today_delivered_orders
		FROM orders
		WHERE status = ?`,
		todayStart, todayEnd, todayStart, todayEnd, tables.OrderStatusDelivered,
	)
	if err != nil {
		ss.logger.Error("Failed to compute revenue summary", gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}

	summary := &structs.RevenueSummary{
		ComputedAt: time.Now().UTC(),
	}
	if row != nil {
		summary.TotalRevenue = row.TotalRevenue
		summary.TodayRevenue = row.TodayRevenue
		summary.DeliveredOrders = row.DeliveredOrders
		summary.TodayDeliveredOrders = row.TodayDeliveredOrders
		summary.AverageOrderValue = averageOrderValue(row.TotalRevenue, row.DeliveredOrders)
	}

	ss.logger.Debug("Revenue summary computed",
		gecho.Field("delivered_orders", summary.DeliveredOrders),
		gecho.Field("duration", time.Since(startTime)))

	return summary, nil
}

// GetStatusBreakdown groups orders per (status, payment_status). Admin only.
func (ss *StatsService) GetStatusBreakdown(ctx context.Context, callerId uuid.UUID) ([]structs.StatusBreakdownRow, error) {
	if err := ss.requireAdmin(callerId); err != nil {
		return nil, err
	}

	rows, err := database.RawQuery[structs.StatusBreakdownRow](ss.db, ctx,
		`SELECT
			status,
			payment_status,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total_amount
		FROM orders
		GROUP BY status, payment_status
		ORDER BY status, payment_status`,
	)
	if err != nil {
		ss.logger.Error("Failed to compute status breakdown", gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}

	if rows == nil {
		rows = []structs.StatusBreakdownRow{}
	}
	return rows, nil
}

// GetDailyStats returns the rollup rows for the last n days. Admin only.
func (ss *StatsService) GetDailyStats(ctx context.Context, callerId uuid.UUID, days int) ([]tables.DailyStat, error) {
	if err := ss.requireAdmin(callerId); err != nil {
		return nil, err
	}

	if days < 1 {
		days = 7
	}
	if days > 365 {
		days = 365
	}

	stats, err := database.Query[tables.DailyStat](ss.db).
		OrderBy("date", database.DESC).
		Limit(days).
		All(ctx)
	if err != nil {
		ss.logger.Error("Failed to fetch daily stats", gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}
	return stats, nil
}

// requireAdmin resolves the caller's role from the users table rather than
// the token, so a stale claim cannot keep the door open
func (ss *StatsService) requireAdmin(callerId uuid.UUID) error {
	isAdmin, err := ss.authService.IsAdmin(callerId)
	if err != nil {
		ss.logger.Error("Failed to resolve caller role", gecho.Field("error", err), gecho.Field("user_id", callerId))
		return err
	}
	if !isAdmin {
		ss.logger.Warn("Non-admin caller rejected from stats", gecho.Field("user_id", callerId))
		return lib.ErrAccessDenied
	}
	return nil
}

// averageOrderValue converts summed cents to currency units with 2-decimal
// rounding; zero delivered orders is not an error, the average is just 0
func averageOrderValue(totalCents uint64, count int) float64 {
	if count == 0 {
		return 0
	}
	avg := float64(totalCents) / float64(count) / 100
	return math.Round(avg*100) / 100
}
