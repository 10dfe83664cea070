package router

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/logging"
)

// DefaultLimit caps detail row sets per accessor call.
const DefaultLimit = 100

// RowSource executes a parameterized query and returns column-keyed rows.
// *database.DB satisfies it; tests substitute a fake.
type RowSource interface {
	QueryMaps(ctx context.Context, sqlQuery string, args ...any) ([]map[string]any, error)
}

// Router exposes one accessor per analytic shape. It holds no per-request
// state; every call is scoped by the TenantScope argument, so one Router is
// safely shared across concurrent requests.
type Router struct {
	db     RowSource
	logger *zap.Logger
}

// New creates a Router over the given row source.
func New(db RowSource, logger *zap.Logger) *Router {
	return &Router{db: db, logger: logger}
}

func (r *Router) run(ctx context.Context, b *queryBuilder) ([]map[string]any, error) {
	rows, err := r.db.QueryMaps(ctx, b.String(), b.args...)
	if err != nil {
		r.logger.Error("accessor query failed",
			zap.String("query", logging.SanitizeQuery(b.String())),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrQueryFailed, logging.SanitizeError(err))
	}
	return rows, nil
}

// softwareAnalyticsOrderColumns are the only columns callers may sort
// software analytics by. OrderBy never comes from unsanitized user text.
var softwareAnalyticsOrderColumns = map[string]bool{
	"total_minutes":      true,
	"total_cost":         true,
	"active_users":       true,
	"avg_roi_percentage": true,
	"usage_compliance":   true,
	"engagement_rate":    true,
}

// SoftwareAnalyticsOptions tunes the software analytics accessor.
type SoftwareAnalyticsOptions struct {
	Limit     int
	OrderBy   string
	ROIStatus string
}

// SoftwareAnalytics returns per-software cost, usage, and user counts. A
// school scope routes to the school-level view; otherwise the district-wide
// comprehensive view serves it. Rows gain investment_return and
// unrealized_value, and the raw ROI percentage is removed.
func (r *Router) SoftwareAnalytics(ctx context.Context, scope TenantScope, opts SoftwareAnalyticsOptions) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	orderBy := opts.OrderBy
	if !softwareAnalyticsOrderColumns[orderBy] {
		orderBy = "total_minutes"
	}

	start := time.Now()
	b := &queryBuilder{}
	viewUsed := "mv_software_usage_analytics_v4"

	if scope.SchoolID != "" {
		viewUsed = "mv_software_usage_by_school_v2"
		b.write(`SELECT
    software_name AS name,
    category AS primary_category,
    total_cost,
    total_minutes,
    active_users,
    active_students,
    active_teachers,
    students_licensed,
    school_name,
    usage_days,
    first_use_date,
    last_use_date,
    cost_per_student,
    avg_roi_percentage,
    roi_status,
    engagement_rate,
    usage_compliance,
    authorized,
    district_purchased
FROM mv_software_usage_by_school_v2
WHERE district_id = ` + b.bind(scope.DistrictID))
		b.writeSchoolFilter(scope, "school_id")
	} else {
		b.write(`SELECT
    name,
    primary_category,
    total_cost,
    total_minutes,
    active_users,
    active_students,
    active_teachers,
    students_licensed,
    school_names,
    usage_days,
    first_use_date,
    last_use_date,
    cost_per_student,
    avg_roi_percentage,
    roi_status,
    engagement_rate,
    usage_compliance,
    authorized,
    district_purchased
FROM mv_software_usage_analytics_v4
WHERE district_id = ` + b.bind(scope.DistrictID))
	}

	if opts.ROIStatus != "" {
		b.write(" AND roi_status = " + b.bind(opts.ROIStatus))
	}
	b.write(fmt.Sprintf(" ORDER BY %s DESC LIMIT %s", orderBy, b.bind(opts.Limit)))

	rows, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}
	enrichInvestmentRows(rows)

	result := &QueryResult{
		ViewUsed:      viewUsed,
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("data", rows)
	return result, nil
}

// DashboardMetrics returns one district-level summary row (software counts by
// ROI bucket, total investment, licensed seats, distinct active users, total
// minutes) plus the top software by usage.
func (r *Router) DashboardMetrics(ctx context.Context, scope TenantScope) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	viewUsed := "mv_software_usage_analytics_v4"
	softwareView := "mv_software_usage_analytics_v4"
	countExpr := "COUNT(*)"
	nameCol := "name"
	categoryCol := "primary_category"
	if scope.SchoolID != "" {
		viewUsed = "mv_software_usage_by_school_v2"
		softwareView = "mv_software_usage_by_school_v2"
		countExpr = "COUNT(DISTINCT software_name)"
		nameCol = "software_name"
		categoryCol = "category"
	}

	b := &queryBuilder{}
	b.write(fmt.Sprintf(`SELECT
    sw.total_software,
    sw.high_roi_count,
    sw.moderate_roi_count,
    sw.low_roi_count,
    sw.total_investment,
    sw.total_licensed,
    COALESCE(au.total_active_users, 0) AS total_active_users,
    sw.total_minutes,
    sw.avg_usage_compliance
FROM (
    SELECT
        %[1]s AS total_software,
        %[1]s FILTER (WHERE roi_status = 'high') AS high_roi_count,
        %[1]s FILTER (WHERE roi_status = 'moderate') AS moderate_roi_count,
        %[1]s FILTER (WHERE roi_status = 'low') AS low_roi_count,
        COALESCE(SUM(total_cost), 0) AS total_investment,
        COALESCE(SUM(students_licensed), 0) AS total_licensed,
        COALESCE(SUM(total_minutes), 0) AS total_minutes,
        COALESCE(AVG(usage_compliance), 0) AS avg_usage_compliance
    FROM %[2]s
    WHERE district_id = `, countExpr, softwareView) + b.bind(scope.DistrictID))
	b.writeSchoolFilter(scope, "school_id")
	b.write(`
) sw
CROSS JOIN (
    SELECT COUNT(*) AS total_active_users
    FROM mv_active_users_summary
    WHERE district_id = ` + b.bind(scope.DistrictID) + ` AND total_usage_minutes > 0`)
	b.writeSchoolFilter(scope, "school_id")
	b.write(`
) au`)

	summary, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	top := &queryBuilder{}
	top.write(fmt.Sprintf(`SELECT
    %s AS name,
    %s AS primary_category,
    total_cost,
    active_users,
    total_minutes,
    usage_compliance,
    roi_status
FROM %s
WHERE district_id = `, nameCol, categoryCol, softwareView) + top.bind(scope.DistrictID))
	top.writeSchoolFilter(scope, "school_id")
	top.write(fmt.Sprintf(" ORDER BY total_minutes DESC LIMIT %s", top.bind(DefaultLimit)))

	topSoftware, err := r.run(ctx, top)
	if err != nil {
		return nil, err
	}
	enrichInvestmentRows(topSoftware)

	result := &QueryResult{
		ViewUsed:      viewUsed,
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("summary", summary)
	result.addSection("top_software", topSoftware)
	return result, nil
}

// UserAnalytics returns three independent breakdowns over the user analytics
// view: by role, by grade (students only), and by school.
func (r *Router) UserAnalytics(ctx context.Context, scope TenantScope) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	role := &queryBuilder{}
	role.write(`SELECT
    user_type,
    SUM(total_users) AS total_users,
    SUM(active_users_30d) AS active_users_30d,
    SUM(active_users_all_time) AS active_users_all_time,
    SUM(total_usage_minutes_90d) AS total_usage_minutes_90d
FROM mv_dashboard_user_analytics
WHERE district_id = ` + role.bind(scope.DistrictID))
	role.writeSchoolFilter(scope, "school_id")
	role.write(`
GROUP BY user_type`)

	byRole, err := r.run(ctx, role)
	if err != nil {
		return nil, err
	}

	grade := &queryBuilder{}
	grade.write(`SELECT
    grade,
    SUM(total_users) AS total_users,
    SUM(active_users_all_time) AS active_users_all_time,
    SUM(active_users_30d) AS active_users_30d,
    SUM(total_usage_minutes_90d) AS total_usage_minutes_90d
FROM mv_dashboard_user_analytics
WHERE district_id = ` + grade.bind(scope.DistrictID) + ` AND user_type = 'student' AND grade IS NOT NULL`)
	grade.writeSchoolFilter(scope, "school_id")
	grade.write(`
GROUP BY grade
ORDER BY grade`)

	byGrade, err := r.run(ctx, grade)
	if err != nil {
		return nil, err
	}

	school := &queryBuilder{}
	school.write(`SELECT
    school_name,
    SUM(total_users) AS total_users,
    SUM(active_users_all_time) AS active_users_all_time,
    SUM(active_users_30d) AS active_users_30d,
    SUM(CASE WHEN user_type = 'student' THEN total_users ELSE 0 END) AS total_students,
    SUM(CASE WHEN user_type = 'student' THEN active_users_all_time ELSE 0 END) AS active_students_all_time,
    SUM(CASE WHEN user_type = 'teacher' THEN total_users ELSE 0 END) AS total_teachers,
    SUM(CASE WHEN user_type = 'teacher' THEN active_users_all_time ELSE 0 END) AS active_teachers_all_time
FROM mv_dashboard_user_analytics
WHERE district_id = ` + school.bind(scope.DistrictID) + ` AND school_name IS NOT NULL`)
	school.writeSchoolFilter(scope, "school_id")
	school.write(`
GROUP BY school_name
ORDER BY school_name`)

	bySchool, err := r.run(ctx, school)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_dashboard_user_analytics",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("by_role", byRole)
	result.addSection("by_grade", byGrade)
	result.addSection("by_school", bySchool)
	return result, nil
}

// InvestmentAnalysis returns the top software by total investment plus a
// district rollup. Rows with zero investment are excluded.
func (r *Router) InvestmentAnalysis(ctx context.Context, scope TenantScope, limit int) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()

	b := &queryBuilder{}
	b.write(`SELECT
    software_name,
    display_name,
    category,
    funding_source,
    total_investment,
    total_licensed_users,
    active_users,
    avg_utilization,
    total_minutes,
    avg_cost_per_student,
    avg_roi_percentage,
    roi_status,
    latest_purchase_date
FROM mv_software_investment_summary
WHERE district_id = ` + b.bind(scope.DistrictID) + ` AND total_investment > 0`)
	b.writeSchoolNameFilter(scope)
	b.write(fmt.Sprintf(`
ORDER BY total_investment DESC
LIMIT %s`, b.bind(limit)))

	software, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	s := &queryBuilder{}
	s.write(`SELECT
    SUM(total_investment) AS total_investment,
    COUNT(*) AS software_count,
    COUNT(*) FILTER (WHERE roi_status = 'high') AS high_roi_count,
    COUNT(*) FILTER (WHERE roi_status = 'low') AS low_roi_count,
    AVG(avg_roi_percentage) AS avg_roi
FROM mv_software_investment_summary
WHERE district_id = ` + s.bind(scope.DistrictID) + ` AND total_investment > 0`)
	s.writeSchoolNameFilter(scope)

	summary, err := r.run(ctx, s)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_software_investment_summary",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("software", software)
	result.addSection("summary", summary)
	return result, nil
}

// UnauthorizedSoftware returns the top non-authorized software by usage
// minutes with student/teacher splits, plus a rollup. The backing view is
// pre-filtered to authorized = false.
func (r *Router) UnauthorizedSoftware(ctx context.Context, scope TenantScope, limit int) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()

	b := &queryBuilder{}
	b.write(`SELECT
    name,
    category,
    url,
    school_name,
    district_name,
    total_usage_minutes,
    unique_users,
    student_users,
    teacher_users,
    usage_count,
    last_used_date,
    avg_minutes_per_user
FROM mv_unauthorized_software_analytics_v3
WHERE district_id = ` + b.bind(scope.DistrictID))
	b.writeSchoolNameFilter(scope)
	b.write(fmt.Sprintf(`
ORDER BY total_usage_minutes DESC
LIMIT %s`, b.bind(limit)))

	software, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	s := &queryBuilder{}
	s.write(`SELECT
    COUNT(DISTINCT name) AS total_unauthorized,
    SUM(total_usage_minutes) AS total_minutes,
    SUM(unique_users) AS total_users,
    SUM(student_users) AS total_students,
    SUM(teacher_users) AS total_teachers,
    SUM(usage_count) AS total_sessions
FROM mv_unauthorized_software_analytics_v3
WHERE district_id = ` + s.bind(scope.DistrictID))
	s.writeSchoolNameFilter(scope)

	summary, err := r.run(ctx, s)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_unauthorized_software_analytics_v3",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("software", software)
	result.addSection("summary", summary)
	return result, nil
}

// TopUsers returns per-user, per-software usage rows ordered by total minutes
// descending, optionally filtered to one role.
func (r *Router) TopUsers(ctx context.Context, scope TenantScope, limit int, role string) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()

	b := &queryBuilder{}
	b.write(`SELECT
    first_name,
    last_name,
    user_email,
    user_role,
    grade,
    school_name,
    software_name,
    software_category,
    total_minutes,
    sessions_count,
    avg_weekly_minutes,
    first_active,
    last_active
FROM mv_user_software_utilization_v2
WHERE district_id = ` + b.bind(scope.DistrictID))
	b.writeSchoolFilter(scope, "school_id")
	if role != "" {
		b.write(" AND user_role = " + b.bind(role))
	}
	b.write(fmt.Sprintf(" ORDER BY total_minutes DESC LIMIT %s", b.bind(limit)))

	users, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_user_software_utilization_v2",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("users", users)
	return result, nil
}

// SchoolAnalysis returns per-(school, software) detail rows plus a per-school
// rollup.
func (r *Router) SchoolAnalysis(ctx context.Context, scope TenantScope, limit int) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()

	b := &queryBuilder{}
	b.write(`SELECT
    school_name,
    software_name,
    category,
    total_cost,
    students_licensed,
    active_users,
    active_students,
    active_teachers,
    total_minutes,
    avg_roi_percentage,
    roi_status,
    usage_compliance
FROM mv_software_usage_by_school_v2
WHERE district_id = ` + b.bind(scope.DistrictID))
	b.writeSchoolFilter(scope, "school_id")
	b.write(fmt.Sprintf(`
ORDER BY total_minutes DESC
LIMIT %s`, b.bind(limit)))

	details, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	s := &queryBuilder{}
	s.write(`SELECT
    school_name,
    COUNT(DISTINCT software_name) AS software_count,
    SUM(total_cost) AS total_investment,
    SUM(active_users) AS total_active_users,
    SUM(total_minutes) AS total_minutes,
    AVG(avg_roi_percentage) AS avg_roi
FROM mv_software_usage_by_school_v2
WHERE district_id = ` + s.bind(scope.DistrictID))
	s.writeSchoolFilter(scope, "school_id")
	s.write(`
GROUP BY school_name
ORDER BY total_minutes DESC`)

	schoolSummary, err := r.run(ctx, s)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_software_usage_by_school_v2",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("details", details)
	result.addSection("school_summary", schoolSummary)
	return result, nil
}

// UsageRankingsOptions tunes the rankings accessor.
type UsageRankingsOptions struct {
	GradeBand string
	UserType  string
	Limit     int
}

// UsageRankings returns ranked software rows with a usage percentage within
// context, optionally filtered by grade band and user type.
func (r *Router) UsageRankings(ctx context.Context, scope TenantScope, opts UsageRankingsOptions) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	start := time.Now()

	b := &queryBuilder{}
	b.write(`SELECT
    name,
    category,
    grade_band,
    user_type,
    school_name,
    funding_source,
    total_cost,
    total_minutes,
    usage_percentage
FROM mv_software_usage_rankings_v4
WHERE district_id = ` + b.bind(scope.DistrictID))
	b.writeSchoolNameFilter(scope)
	if opts.GradeBand != "" {
		b.write(" AND grade_band = " + b.bind(opts.GradeBand))
	}
	if opts.UserType != "" {
		b.write(" AND user_type = " + b.bind(opts.UserType))
	}
	b.write(fmt.Sprintf(" ORDER BY total_minutes DESC LIMIT %s", b.bind(opts.Limit)))

	rankings, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_software_usage_rankings_v4",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("rankings", rankings)
	return result, nil
}

// ActiveUsersSummary returns four views over the all-roles activity table:
// usage by (grade band, role), totals by role including zero-usage users, a
// platform mix by primary operating system, and the top users by minutes.
func (r *Router) ActiveUsersSummary(ctx context.Context, scope TenantScope, limit int) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()

	gb := &queryBuilder{}
	gb.write(`SELECT
    grade_band,
    role,
    COUNT(*) AS user_count,
    SUM(total_usage_minutes) AS total_minutes,
    AVG(total_usage_minutes) AS avg_minutes_per_user
FROM mv_active_users_summary
WHERE district_id = ` + gb.bind(scope.DistrictID) + ` AND total_usage_minutes > 0`)
	gb.writeSchoolFilter(scope, "school_id")
	gb.write(`
GROUP BY grade_band, role
ORDER BY grade_band, role`)

	byGradeBand, err := r.run(ctx, gb)
	if err != nil {
		return nil, err
	}

	rb := &queryBuilder{}
	rb.write(`SELECT
    role,
    COUNT(*) AS total_users,
    COUNT(*) FILTER (WHERE total_usage_minutes > 0) AS active_users,
    SUM(total_usage_minutes) AS total_minutes,
    SUM(chrome_os_minutes) AS chrome_os_minutes,
    SUM(windows_minutes) AS windows_minutes,
    SUM(ios_minutes) AS ios_minutes,
    SUM(other_os_minutes) AS other_os_minutes
FROM mv_active_users_summary
WHERE district_id = ` + rb.bind(scope.DistrictID))
	rb.writeSchoolFilter(scope, "school_id")
	rb.write(`
GROUP BY role
ORDER BY total_users DESC`)

	byRole, err := r.run(ctx, rb)
	if err != nil {
		return nil, err
	}

	ob := &queryBuilder{}
	ob.write(`SELECT
    primary_os AS data_source,
    COUNT(*) AS user_count,
    SUM(total_usage_minutes) AS total_minutes,
    SUM(chrome_os_minutes) AS chrome_os_minutes,
    SUM(windows_minutes) AS windows_minutes,
    SUM(ios_minutes) AS ios_minutes,
    SUM(other_os_minutes) AS other_os_minutes
FROM mv_active_users_summary
WHERE district_id = ` + ob.bind(scope.DistrictID) + ` AND total_usage_minutes > 0`)
	ob.writeSchoolFilter(scope, "school_id")
	ob.write(`
GROUP BY primary_os
ORDER BY user_count DESC`)

	byOS, err := r.run(ctx, ob)
	if err != nil {
		return nil, err
	}

	tu := &queryBuilder{}
	tu.write(`SELECT
    full_name,
    role,
    grade,
    school_name,
    total_usage_minutes,
    total_sessions,
    primary_os,
    chrome_os_minutes,
    windows_minutes,
    ios_minutes,
    last_active_date
FROM mv_active_users_summary
WHERE district_id = ` + tu.bind(scope.DistrictID) + ` AND total_usage_minutes > 0`)
	tu.writeSchoolFilter(scope, "school_id")
	tu.write(fmt.Sprintf(`
ORDER BY total_usage_minutes DESC
LIMIT %s`, tu.bind(limit)))

	topUsers, err := r.run(ctx, tu)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "mv_active_users_summary",
		ExecutionTime: time.Since(start),
		SchoolID:      scope.SchoolID,
	}
	result.addSection("by_grade_band", byGradeBand)
	result.addSection("by_role", byRole)
	result.addSection("by_os", byOS)
	result.addSection("top_users", topUsers)
	return result, nil
}

// PeerBenchmarkingSummary returns the district's own metric rows and the
// metric-by-metric peer comparisons. The two row sets are joined only at the
// presentation layer.
func (r *Router) PeerBenchmarkingSummary(ctx context.Context, scope TenantScope) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	m := &queryBuilder{}
	m.write(`SELECT
    metric_name, metric_value, percentile, peer_average,
    unit, category, ranking, matching_tier, peer_count
FROM peer_district_metrics
WHERE district_id = ` + m.bind(scope.DistrictID) + `
ORDER BY category, metric_name`)

	metrics, err := r.run(ctx, m)
	if err != nil {
		return nil, err
	}

	c := &queryBuilder{}
	c.write(`SELECT
    metric, your_value, peer_average, percentile,
    ranking, total_districts, unit, interpretation,
    matching_tier, peer_count
FROM peer_comparisons
WHERE district_id = ` + c.bind(scope.DistrictID) + `
ORDER BY percentile DESC`)

	comparisons, err := r.run(ctx, c)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "peer_district_metrics + peer_comparisons",
		ExecutionTime: time.Since(start),
	}
	result.addSection("metrics", metrics)
	result.addSection("comparisons", comparisons)
	return result, nil
}

// PeerComparisons returns the metric-by-metric peer comparison rows alone.
func (r *Router) PeerComparisons(ctx context.Context, scope TenantScope) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	b := &queryBuilder{}
	b.write(`SELECT
    metric, your_value, peer_average, percentile,
    ranking, total_districts, unit, interpretation
FROM peer_comparisons
WHERE district_id = ` + b.bind(scope.DistrictID) + `
ORDER BY percentile DESC`)

	comparisons, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "peer_comparisons",
		ExecutionTime: time.Since(start),
	}
	result.addSection("comparisons", comparisons)
	return result, nil
}
