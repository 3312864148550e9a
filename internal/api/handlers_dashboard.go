package api

import (
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/medhatjachour/employee-management/internal/dashboard"
)

// @Summary Dashboard analytics: summary stats, department and hire-trend breakdowns
// @Tags    Dashboard
// @Produce json
// @Param   timeView query string false "Hire-trend bucketing: day, month or year (default month)"
// @Success 200 {object} dashboard.Response
// @Failure 400 {object} errorResponse "invalid timeView"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /dashboard [get]
func (s *Service) getDashboard(ctx *fasthttp.RequestCtx) {
	timeView := string(ctx.QueryArgs().Peek("timeView"))
	if timeView == "" {
		timeView = dashboard.ViewMonth
	}

	resp, err := s.dashboard.Aggregate(ctx, timeView)
	if err != nil {
		if errors.Is(err, dashboard.ErrInvalidTimeView) {
			writeError(ctx, fasthttp.StatusBadRequest, err)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("dashboard.Aggregate: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// @Summary Service health probe
// @Tags    Admin
// @Success 200 {object} okResponse
// @Router  /health [get]
func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ok(ctx, "OK")
}
