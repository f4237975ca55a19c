package admin

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/handling"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
)

// GetRevenueSummary returns the aggregate revenue figures over delivered
// orders. The service re-checks the caller's role against the database, so
// the route middleware is not the only gate in front of these numbers.
func (arm *AdminRoutesManager) GetRevenueSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	summary, err := arm.statsService.GetRevenueSummary(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleError(err, "fetching revenue summary", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.stats.revenueFetched"),
		gecho.WithData(summary),
		gecho.Send(),
	)
}

// GetStatusBreakdown returns order counts grouped by status and payment status
func (arm *AdminRoutesManager) GetStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	breakdown, err := arm.statsService.GetStatusBreakdown(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleError(err, "fetching status breakdown", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.stats.breakdownFetched"),
		gecho.WithData(map[string]any{"breakdown": breakdown}),
		gecho.Send(),
	)
}

// GetDailyStats returns the per-day delivered revenue rollup for the last
// N days (default 30)
func (arm *AdminRoutesManager) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("error.stats.invalidDaysParameter"), gecho.Send())
			return
		}
		days = parsed
	}

	stats, err := arm.statsService.GetDailyStats(r.Context(), claims.Sub, days)
	if err != nil {
		handling.HandleError(err, "fetching daily stats", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.stats.dailyStatsFetched"),
		gecho.WithData(map[string]any{
			"days":  days,
			"stats": stats,
		}),
		gecho.Send(),
	)
}
