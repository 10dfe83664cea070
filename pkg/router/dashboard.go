package router

import (
	"context"
	"time"
)

// ComprehensiveDashboard assembles the full dashboard payload from five
// accessors: headline metrics, user breakdowns, investment, top software, and
// unauthorized software. Sections carry a source prefix so names stay unique.
func (r *Router) ComprehensiveDashboard(ctx context.Context, scope TenantScope) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	metrics, err := r.DashboardMetrics(ctx, scope)
	if err != nil {
		return nil, err
	}
	users, err := r.UserAnalytics(ctx, scope)
	if err != nil {
		return nil, err
	}
	investment, err := r.InvestmentAnalysis(ctx, scope, 10)
	if err != nil {
		return nil, err
	}
	software, err := r.SoftwareAnalytics(ctx, scope, SoftwareAnalyticsOptions{Limit: 10})
	if err != nil {
		return nil, err
	}
	unauthorized, err := r.UnauthorizedSoftware(ctx, scope, 5)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "comprehensive_dashboard",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	merge := func(prefix string, qr *QueryResult) {
		for _, s := range qr.Sections {
			result.addSection(prefix+"_"+s.Name, s.Rows)
		}
	}
	merge("dashboard", metrics)
	merge("users", users)
	merge("investment", investment)
	merge("software", software)
	merge("unauthorized", unauthorized)
	return result, nil
}
