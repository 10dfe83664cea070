package router

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/apperrors"
)

type recordedQuery struct {
	SQL  string
	Args []any
}

// fakeRowSource records every query and serves canned rows keyed by a
// substring of the SQL, falling back to Default.
type fakeRowSource struct {
	Calls   []recordedQuery
	Rows    map[string][]map[string]any
	Default []map[string]any
	Err     error
}

func (f *fakeRowSource) QueryMaps(_ context.Context, sql string, args ...any) ([]map[string]any, error) {
	f.Calls = append(f.Calls, recordedQuery{SQL: sql, Args: args})
	if f.Err != nil {
		return nil, f.Err
	}
	for key, rows := range f.Rows {
		if strings.Contains(sql, key) {
			return rows, nil
		}
	}
	return f.Default, nil
}

func newTestRouter(db *fakeRowSource) *Router {
	return New(db, zap.NewNop())
}

func TestAccessorsRejectMissingDistrict(t *testing.T) {
	r := newTestRouter(&fakeRowSource{})
	ctx := context.Background()
	scope := TenantScope{DistrictID: "   "}

	_, err := r.SoftwareAnalytics(ctx, scope, SoftwareAnalyticsOptions{})
	assert.ErrorIs(t, err, apperrors.ErrMissingDistrict)

	_, err = r.DashboardMetrics(ctx, scope)
	assert.ErrorIs(t, err, apperrors.ErrMissingDistrict)

	_, err = r.RawQuery(ctx, scope, "SELECT 1")
	assert.ErrorIs(t, err, apperrors.ErrMissingDistrict)
}

func TestSoftwareAnalyticsDistrictWide(t *testing.T) {
	db := &fakeRowSource{Default: []map[string]any{
		{"name": "MathWorks", "total_cost": 1000.0, "usage_compliance": 80.0, "avg_roi_percentage": 75.0, "roi_status": "high"},
	}}
	r := newTestRouter(db)

	result, err := r.SoftwareAnalytics(context.Background(), TenantScope{DistrictID: "d-1"}, SoftwareAnalyticsOptions{})
	require.NoError(t, err)

	require.Len(t, db.Calls, 1)
	call := db.Calls[0]
	assert.Contains(t, call.SQL, "FROM mv_software_usage_analytics_v4")
	assert.Contains(t, call.SQL, "district_id = $1")
	assert.Contains(t, call.SQL, "ORDER BY total_minutes DESC")
	assert.Equal(t, []any{"d-1", DefaultLimit}, call.Args)

	assert.Equal(t, "mv_software_usage_analytics_v4", result.ViewUsed)
	require.Equal(t, 1, result.Count)

	row := result.Sections[0].Rows[0]
	assert.Equal(t, 800.0, row["investment_return"])
	assert.Equal(t, 200.0, row["unrealized_value"])
	_, hasROI := row["avg_roi_percentage"]
	assert.False(t, hasROI, "raw ROI should be dropped after enrichment")
}

func TestSoftwareAnalyticsSchoolScoped(t *testing.T) {
	db := &fakeRowSource{}
	r := newTestRouter(db)

	scope := TenantScope{DistrictID: "d-1", SchoolID: "s-9"}
	result, err := r.SoftwareAnalytics(context.Background(), scope, SoftwareAnalyticsOptions{Limit: 25, ROIStatus: "low"})
	require.NoError(t, err)

	call := db.Calls[0]
	assert.Contains(t, call.SQL, "FROM mv_software_usage_by_school_v2")
	assert.Contains(t, call.SQL, "software_name AS name")
	assert.Contains(t, call.SQL, "school_id = $2")
	assert.Contains(t, call.SQL, "roi_status = $3")
	assert.Equal(t, []any{"d-1", "s-9", "low", 25}, call.Args)
	assert.Equal(t, "mv_software_usage_by_school_v2", result.ViewUsed)
	assert.Equal(t, "s-9", result.SchoolID)
}

func TestSoftwareAnalyticsOrderByAllowList(t *testing.T) {
	db := &fakeRowSource{}
	r := newTestRouter(db)

	_, err := r.SoftwareAnalytics(context.Background(), TenantScope{DistrictID: "d-1"},
		SoftwareAnalyticsOptions{OrderBy: "name; DROP TABLE schools"})
	require.NoError(t, err)

	assert.Contains(t, db.Calls[0].SQL, "ORDER BY total_minutes DESC")
	assert.NotContains(t, db.Calls[0].SQL, "DROP")
}

func TestDashboardMetricsSections(t *testing.T) {
	db := &fakeRowSource{
		Rows: map[string][]map[string]any{
			"CROSS JOIN": {{"total_software": int64(12), "total_investment": 50000.0}},
			"ORDER BY total_minutes": {
				{"name": "ReadFast", "total_cost": 200.0, "usage_compliance": 50.0, "roi_status": "moderate"},
			},
		},
	}
	r := newTestRouter(db)

	result, err := r.DashboardMetrics(context.Background(), TenantScope{DistrictID: "d-1"})
	require.NoError(t, err)
	require.Len(t, db.Calls, 2)

	summary := result.Section("summary")
	require.NotEmpty(t, summary)
	assert.Equal(t, int64(12), summary[0]["total_software"])

	top := result.Section("top_software")
	require.NotEmpty(t, top)
	assert.Equal(t, 100.0, top[0]["investment_return"])
}

func TestUserAnalyticsRunsThreeBreakdowns(t *testing.T) {
	db := &fakeRowSource{}
	r := newTestRouter(db)

	result, err := r.UserAnalytics(context.Background(), TenantScope{DistrictID: "d-1"})
	require.NoError(t, err)
	require.Len(t, db.Calls, 3)

	assert.Contains(t, db.Calls[0].SQL, "GROUP BY user_type")
	assert.Contains(t, db.Calls[1].SQL, "user_type = 'student' AND grade IS NOT NULL")
	assert.Contains(t, db.Calls[2].SQL, "GROUP BY school_name")

	names := make([]string, 0, len(result.Sections))
	for _, s := range result.Sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"by_role", "by_grade", "by_school"}, names)
}

func TestInvestmentAnalysisSchoolNameSubquery(t *testing.T) {
	db := &fakeRowSource{}
	r := newTestRouter(db)

	scope := TenantScope{DistrictID: "d-1", SchoolID: "s-2"}
	_, err := r.InvestmentAnalysis(context.Background(), scope, 10)
	require.NoError(t, err)

	call := db.Calls[0]
	assert.Contains(t, call.SQL, "school_name = (SELECT name FROM schools WHERE id = $2 AND district_id = $3)")
	assert.Equal(t, []any{"d-1", "s-2", "d-1", 10}, call.Args)
}

func TestTopUsersRoleFilter(t *testing.T) {
	db := &fakeRowSource{}
	r := newTestRouter(db)

	_, err := r.TopUsers(context.Background(), TenantScope{DistrictID: "d-1"}, 20, "teacher")
	require.NoError(t, err)

	call := db.Calls[0]
	assert.Contains(t, call.SQL, "user_role = $2")
	assert.Equal(t, []any{"d-1", "teacher", 20}, call.Args)
}

func TestActiveUsersSummarySections(t *testing.T) {
	db := &fakeRowSource{}
	r := newTestRouter(db)

	result, err := r.ActiveUsersSummary(context.Background(), TenantScope{DistrictID: "d-1"}, 15)
	require.NoError(t, err)
	require.Len(t, db.Calls, 4)

	names := make([]string, 0, len(result.Sections))
	for _, s := range result.Sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"by_grade_band", "by_role", "by_os", "top_users"}, names)

	// only the grade-band, OS, and top-user cuts exclude inactive users
	assert.Contains(t, db.Calls[0].SQL, "total_usage_minutes > 0")
	assert.NotContains(t, db.Calls[1].SQL, "WHERE district_id = $1 AND total_usage_minutes > 0")
	assert.Contains(t, db.Calls[1].SQL, "FILTER (WHERE total_usage_minutes > 0)")
}

func TestQueryFailureIsSanitized(t *testing.T) {
	db := &fakeRowSource{Err: assert.AnError}
	r := newTestRouter(db)

	_, err := r.TopUsers(context.Background(), TenantScope{DistrictID: "d-1"}, 10, "")
	assert.ErrorIs(t, err, apperrors.ErrQueryFailed)
}

func TestComprehensiveDashboardMergesSections(t *testing.T) {
	db := &fakeRowSource{Default: []map[string]any{{"value": int64(1)}}}
	r := newTestRouter(db)

	result, err := r.ComprehensiveDashboard(context.Background(), TenantScope{DistrictID: "d-1"})
	require.NoError(t, err)

	for _, name := range []string{
		"dashboard_summary", "dashboard_top_software",
		"users_by_role", "users_by_grade", "users_by_school",
		"investment_software", "investment_summary",
		"software_data",
		"unauthorized_software", "unauthorized_summary",
	} {
		assert.NotEmpty(t, result.Section(name), "missing section %s", name)
	}
	assert.Equal(t, "comprehensive_dashboard", result.ViewUsed)
}

func TestRawQuery(t *testing.T) {
	t.Run("rejects writes", func(t *testing.T) {
		r := newTestRouter(&fakeRowSource{})
		_, err := r.RawQuery(context.Background(), TenantScope{DistrictID: "d-1"},
			"DELETE FROM schools WHERE district_id = $1")
		assert.ErrorIs(t, err, apperrors.ErrUnsafeQuery)
	})

	t.Run("rejects unbound district", func(t *testing.T) {
		r := newTestRouter(&fakeRowSource{})
		_, err := r.RawQuery(context.Background(), TenantScope{DistrictID: "d-1"},
			"SELECT name FROM schools WHERE district_id = 'd-1'")
		assert.ErrorIs(t, err, apperrors.ErrUnsafeQuery)
	})

	t.Run("wraps with row cap and binds district", func(t *testing.T) {
		db := &fakeRowSource{Default: []map[string]any{{"name": "Lincoln Elementary"}}}
		r := newTestRouter(db)

		result, err := r.RawQuery(context.Background(), TenantScope{DistrictID: "d-1"},
			"SELECT name FROM schools WHERE district_id = $1;")
		require.NoError(t, err)

		call := db.Calls[0]
		assert.Equal(t, "SELECT * FROM (SELECT name FROM schools WHERE district_id = $1) AS _limited LIMIT 50", call.SQL)
		assert.Equal(t, []any{"d-1"}, call.Args)
		assert.Equal(t, 1, result.Count)
	})
}
