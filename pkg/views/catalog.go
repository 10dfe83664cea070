package views

// DefaultViewName is the fallback when no view matches any classified intent.
// It is the most comprehensive software analytics view.
const DefaultViewName = "mv_software_usage_analytics_v4"

// catalog enumerates every available view in a fixed order. Candidate scoring
// iterates this slice, so tie-breaks follow catalog order.
var catalog = []Descriptor{
	{
		Name:        "mv_dashboard_software_metrics",
		Description: "Pre-computed dashboard metrics for authorized/district-purchased software including ROI, costs, and usage statistics",
		PrimaryIntents: []Intent{
			IntentDashboardOverview,
			IntentSoftwareUsage,
			IntentSoftwareROI,
			IntentCostAnalysis,
		},
		KeyColumns: []string{
			"software_id", "name", "district_id", "school_name", "category",
			"funding_source", "total_cost", "user_type", "authorized",
			"district_purchased", "students_licensed", "purchase_date",
			"grade_range", "roi_percentage", "cost_per_student",
			"active_users_30d", "active_users_all_time", "total_minutes_90d",
			"last_usage_date", "utilization", "roi_status",
		},
		Aggregations:     []string{"active_users_30d", "active_users_all_time", "total_minutes_90d", "utilization", "roi_percentage"},
		FiltersAvailable: []string{"district_id", "school_name", "category", "roi_status", "authorized"},
		PerformanceNotes: "Best for dashboard cards, software overview, ROI status checks. Pre-joined with software_metrics and software_usage.",
		SampleQueries: []string{
			"SELECT * FROM mv_dashboard_software_metrics WHERE district_id = $1 AND roi_status = 'high'",
			"SELECT name, total_cost, roi_percentage, utilization FROM mv_dashboard_software_metrics WHERE district_id = $1 ORDER BY total_cost DESC LIMIT 10",
		},
		Priority: 1,
	},
	{
		Name:        "mv_dashboard_user_analytics",
		Description: "User analytics grouped by district, school, role (student/teacher), and grade with usage aggregations",
		PrimaryIntents: []Intent{
			IntentUserAnalytics,
			IntentStudentAnalysis,
			IntentTeacherAnalysis,
			IntentActiveUsers,
		},
		KeyColumns: []string{
			"row_id", "district_id", "school_id", "school_name", "user_type",
			"grade", "total_users", "active_users_30d", "active_users_all_time",
			"total_usage_minutes_90d",
		},
		Aggregations:     []string{"total_users", "active_users_30d", "active_users_all_time", "total_usage_minutes_90d"},
		FiltersAvailable: []string{"district_id", "school_id", "user_type", "grade"},
		PerformanceNotes: "Best for user count dashboards, role-based analysis, grade-level breakdowns. Pre-aggregated from profiles and software_usage.",
		SampleQueries: []string{
			"SELECT user_type, SUM(total_users) as users, SUM(active_users_30d) as active FROM mv_dashboard_user_analytics WHERE district_id = $1 GROUP BY user_type",
			"SELECT grade, total_users, active_users_30d FROM mv_dashboard_user_analytics WHERE district_id = $1 AND user_type = 'student'",
		},
		Priority: 1,
	},
	{
		Name:        "mv_software_usage_analytics_v4",
		Description: "Most comprehensive software analytics view with ROI calculations, usage ratios, engagement rates, and compliance metrics grouped by software name and district",
		PrimaryIntents: []Intent{
			IntentSoftwareUsage,
			IntentSoftwareROI,
			IntentUtilizationAnalysis,
			IntentDashboardOverview,
		},
		KeyColumns: []string{
			"name", "district_id", "ids", "categories", "school_names", "user_types",
			"grades", "grade_ranges", "funding_sources", "total_cost", "students_licensed",
			"authorized", "district_purchased", "url", "icon", "applicable_grade_bands",
			"sub_population", "program_population", "primary_category", "category_type",
			"total_minutes", "active_users", "usage_days", "first_use_date", "last_use_date",
			"active_students", "active_teachers", "expected_daily_minutes", "cost_per_student",
			"days_since_start", "expected_minutes_to_date", "usage_ratio", "avg_minutes_per_day",
			"avg_roi_percentage", "roi_status", "engagement_rate", "usage_compliance",
			"avg_usage_compliance",
		},
		Aggregations: []string{
			"total_minutes", "active_users", "active_students", "active_teachers",
			"usage_ratio", "avg_roi_percentage", "engagement_rate", "usage_compliance",
		},
		FiltersAvailable: []string{"district_id", "authorized", "district_purchased", "roi_status", "category_type"},
		PerformanceNotes: "MOST COMPREHENSIVE VIEW - use for detailed analytics, ROI analysis, engagement metrics. Groups by software name so multiple software records are consolidated.",
		SampleQueries: []string{
			"SELECT name, total_minutes, active_users, roi_status, avg_roi_percentage FROM mv_software_usage_analytics_v4 WHERE district_id = $1 ORDER BY total_minutes DESC",
			"SELECT roi_status, COUNT(*) as count, SUM(total_cost) as investment FROM mv_software_usage_analytics_v4 WHERE district_id = $1 GROUP BY roi_status",
		},
		Priority: 1,
	},
	{
		Name:        "mv_unauthorized_software_analytics_v3",
		Description: "Analytics for unauthorized software including usage metrics, user counts by type, and last usage tracking",
		PrimaryIntents: []Intent{
			IntentUnauthorizedSoftware,
		},
		KeyColumns: []string{
			"id", "name", "category", "url", "district_id", "school_name",
			"user_type", "district_name", "total_usage_minutes", "unique_users",
			"student_users", "teacher_users", "usage_count", "last_used_date",
			"avg_minutes_per_user", "refreshed_at",
		},
		Aggregations:     []string{"total_usage_minutes", "unique_users", "student_users", "teacher_users", "usage_count"},
		FiltersAvailable: []string{"district_id", "category", "school_name"},
		PerformanceNotes: "Best for security/compliance dashboards, unauthorized software monitoring. Automatically filtered to authorized=false.",
		SampleQueries: []string{
			"SELECT name, total_usage_minutes, unique_users, student_users FROM mv_unauthorized_software_analytics_v3 WHERE district_id = $1 ORDER BY total_usage_minutes DESC",
			"SELECT category, COUNT(*) as apps, SUM(unique_users) as users FROM mv_unauthorized_software_analytics_v3 WHERE district_id = $1 GROUP BY category",
		},
		Priority: 1,
	},
	{
		Name:        "mv_unauthorized_usage_dashboard",
		Description: "Dashboard-optimized view for unauthorized software with in-school vs out-of-school usage breakdown (90-day window)",
		PrimaryIntents: []Intent{
			IntentUnauthorizedSoftware,
			IntentDashboardOverview,
		},
		KeyColumns: []string{
			"software_id", "software_name", "category", "url", "district_id",
			"district_name", "user_type", "total_minutes", "in_school_minutes",
			"out_of_school_minutes", "active_users", "usage_count", "last_used_date",
			"school_name", "in_school_percentage", "out_of_school_percentage", "refreshed_at",
		},
		Aggregations:     []string{"total_minutes", "in_school_minutes", "out_of_school_minutes", "active_users"},
		FiltersAvailable: []string{"district_id", "category", "school_name"},
		PerformanceNotes: "Best for unauthorized software dashboard cards with location-based breakdown. Limited to 90-day window.",
		SampleQueries: []string{
			"SELECT software_name, total_minutes, in_school_percentage, active_users FROM mv_unauthorized_usage_dashboard WHERE district_id = $1 ORDER BY total_minutes DESC LIMIT 10",
		},
		Priority: 2,
	},
	{
		Name:        "mv_software_investment_summary",
		Description: "Software investment analysis with ROI metrics, utilization rates, and cost-per-student calculations",
		PrimaryIntents: []Intent{
			IntentSoftwareInvestment,
			IntentCostAnalysis,
			IntentSoftwareROI,
		},
		KeyColumns: []string{
			"software_id", "software_name", "display_name", "district_id", "school_name",
			"category", "funding_source", "grade_ranges", "user_type", "latest_purchase_date",
			"last_usage_date", "created_at", "total_investment", "total_licensed_users",
			"active_users", "avg_utilization", "total_minutes", "avg_cost_per_student",
			"avg_roi_percentage", "roi_status", "roi_status_priority", "authorized", "district_purchased",
		},
		Aggregations:     []string{"total_investment", "total_licensed_users", "active_users", "avg_utilization", "avg_roi_percentage"},
		FiltersAvailable: []string{"district_id", "school_name", "category", "funding_source", "roi_status"},
		PerformanceNotes: "Best for financial reports, budget analysis, ROI comparisons. Built on mv_dashboard_software_metrics.",
		SampleQueries: []string{
			"SELECT software_name, total_investment, active_users, avg_roi_percentage, roi_status FROM mv_software_investment_summary WHERE district_id = $1 ORDER BY total_investment DESC",
			"SELECT funding_source, SUM(total_investment) as total, AVG(avg_roi_percentage) as avg_roi FROM mv_software_investment_summary WHERE district_id = $1 GROUP BY funding_source",
		},
		Priority: 1,
	},
	{
		Name:        "mv_user_software_utilization_v2",
		Description: "Detailed user-level software utilization with session counts, location breakdown, and weekly averages",
		PrimaryIntents: []Intent{
			IntentUserAnalytics,
			IntentStudentAnalysis,
			IntentTeacherAnalysis,
			IntentUtilizationAnalysis,
		},
		KeyColumns: []string{
			"software_id", "user_id", "user_email", "first_name", "last_name",
			"grade", "school_id", "district_id", "user_role", "school_name",
			"district_name", "software_name", "software_category", "sessions_count",
			"total_minutes", "minutes_in_school", "minutes_at_home", "first_active",
			"last_active", "days_active", "avg_weekly_minutes",
		},
		Aggregations:     []string{"sessions_count", "total_minutes", "minutes_in_school", "minutes_at_home", "avg_weekly_minutes"},
		FiltersAvailable: []string{"district_id", "school_id", "user_role", "grade", "software_id"},
		PerformanceNotes: "Best for individual user reports, top users analysis, per-user software breakdowns. Detailed granularity.",
		SampleQueries: []string{
			"SELECT first_name, last_name, software_name, total_minutes, avg_weekly_minutes FROM mv_user_software_utilization_v2 WHERE district_id = $1 ORDER BY total_minutes DESC LIMIT 20",
			"SELECT user_role, COUNT(DISTINCT user_id) as users, SUM(total_minutes) as minutes FROM mv_user_software_utilization_v2 WHERE district_id = $1 GROUP BY user_role",
		},
		Priority: 1,
	},
	{
		Name:        "mv_active_users_summary",
		Description: "Summary of active users with total usage, session counts, and grade band classification",
		PrimaryIntents: []Intent{
			IntentActiveUsers,
			IntentUserAnalytics,
			IntentGradeAnalysis,
		},
		KeyColumns: []string{
			"user_id", "email", "first_name", "last_name", "role", "grade",
			"school_id", "district_id", "school_name", "district_name",
			"total_usage_minutes", "total_sessions", "first_active_date",
			"last_active_date", "grade_band", "full_name", "primary_os",
			"chrome_os_minutes", "windows_minutes", "ios_minutes", "other_os_minutes",
		},
		Aggregations:     []string{"total_usage_minutes", "total_sessions"},
		FiltersAvailable: []string{"district_id", "school_id", "role", "grade", "grade_band"},
		PerformanceNotes: "Best for user activity reports, grade band analysis, last-active tracking. Includes computed grade_band field.",
		SampleQueries: []string{
			"SELECT grade_band, COUNT(*) as users, SUM(total_usage_minutes) as minutes FROM mv_active_users_summary WHERE district_id = $1 GROUP BY grade_band",
			"SELECT full_name, role, total_usage_minutes, last_active_date FROM mv_active_users_summary WHERE district_id = $1 ORDER BY total_usage_minutes DESC LIMIT 20",
		},
		Priority: 1,
	},
	{
		Name:        "mv_software_details_metrics",
		Description: "Detailed software metrics including weekly usage patterns, user day statistics, and cost efficiency calculations",
		PrimaryIntents: []Intent{
			IntentSoftwareUsage,
			IntentUtilizationAnalysis,
			IntentCostAnalysis,
		},
		KeyColumns: []string{
			"name", "district_id", "ids", "categories", "primary_category",
			"school_names", "user_types", "grades", "grade_ranges", "funding_sources",
			"total_cost", "students_licensed", "authorized", "district_purchased",
			"url", "icon", "total_minutes", "active_users", "usage_days",
			"first_use_date", "last_use_date", "cost_per_student", "roi_status",
			"engagement_rate", "usage_compliance", "avg_weekly_minutes_per_user",
			"total_weekly_minutes_all_users", "users_with_weekly_data",
			"min_weekly_minutes_per_user", "max_weekly_minutes_per_user",
			"median_weekly_minutes_per_user", "total_user_day_combinations",
			"days_with_10min_usage", "days_with_15min_usage", "days_with_20min_usage",
			"cost_per_user_hour_per_week", "utilization_rate_percentage",
		},
		Aggregations:     []string{"avg_weekly_minutes_per_user", "total_weekly_minutes_all_users", "utilization_rate_percentage"},
		FiltersAvailable: []string{"district_id", "authorized", "district_purchased", "roi_status"},
		PerformanceNotes: "Best for detailed software analysis, weekly usage patterns, usage threshold analysis (10/15/20 min days).",
		SampleQueries: []string{
			"SELECT name, avg_weekly_minutes_per_user, utilization_rate_percentage, roi_status FROM mv_software_details_metrics WHERE district_id = $1 ORDER BY total_minutes DESC",
		},
		Priority: 2,
	},
	{
		Name:        "mv_report_data_unified_v4",
		Description: "Unified report data for authorized software grouped by software name and school, with comprehensive metrics",
		PrimaryIntents: []Intent{
			IntentReportGeneration,
			IntentSchoolAnalysis,
			IntentSoftwareUsage,
		},
		KeyColumns: []string{
			"software_name", "software_ids", "software_record_count", "school_id",
			"school_name", "district_id", "category", "funding_source", "grade_range",
			"authorized", "approval_status", "purchase_date", "url", "total_cost",
			"students_licensed", "cost_per_student", "active_students", "active_teachers",
			"total_minutes", "total_usage_hours", "usage_days", "average_session_time",
			"usage_frequency", "avg_weekly_usage_hours", "first_use_date", "last_use_date",
			"user_satisfaction", "technical_metrics", "expected_daily_minutes", "usage_compliance",
		},
		Aggregations:     []string{"total_minutes", "total_usage_hours", "active_students", "active_teachers", "avg_weekly_usage_hours"},
		FiltersAvailable: []string{"district_id", "school_id", "school_name", "category", "funding_source"},
		PerformanceNotes: "Best for generating school-level reports, comparing software across schools. Authorized software only.",
		SampleQueries: []string{
			"SELECT software_name, school_name, total_usage_hours, active_students FROM mv_report_data_unified_v4 WHERE district_id = $1 ORDER BY total_usage_hours DESC",
			"SELECT school_name, COUNT(DISTINCT software_name) as apps, SUM(total_cost) as investment FROM mv_report_data_unified_v4 WHERE district_id = $1 GROUP BY school_name",
		},
		Priority: 1,
	},
	{
		Name:        "mv_unauthorized_software_by_school",
		Description: "Unauthorized software usage aggregated by school (90-day window)",
		PrimaryIntents: []Intent{
			IntentUnauthorizedSoftware,
			IntentSchoolAnalysis,
		},
		KeyColumns: []string{
			"software_id", "school_name", "total_minutes", "unique_users", "session_count",
		},
		Aggregations:     []string{"total_minutes", "unique_users", "session_count"},
		FiltersAvailable: []string{"software_id", "school_name"},
		PerformanceNotes: "Best for school-level unauthorized software breakdown. Limited to 90-day window.",
		SampleQueries: []string{
			"SELECT school_name, SUM(total_minutes) as minutes, SUM(unique_users) as users FROM mv_unauthorized_software_by_school GROUP BY school_name ORDER BY minutes DESC",
		},
		Priority: 2,
	},
	{
		Name:        "mv_unauthorized_software_by_grade",
		Description: "Unauthorized software usage aggregated by grade level (90-day window)",
		PrimaryIntents: []Intent{
			IntentUnauthorizedSoftware,
			IntentGradeAnalysis,
		},
		KeyColumns: []string{
			"software_id", "grade", "total_minutes", "unique_users", "session_count",
		},
		Aggregations:     []string{"total_minutes", "unique_users", "session_count"},
		FiltersAvailable: []string{"software_id", "grade"},
		PerformanceNotes: "Best for grade-level unauthorized software analysis. Limited to 90-day window.",
		SampleQueries: []string{
			"SELECT grade, SUM(total_minutes) as minutes, SUM(unique_users) as users FROM mv_unauthorized_software_by_grade GROUP BY grade ORDER BY grade",
		},
		Priority: 2,
	},
	{
		Name:        "mv_unauthorized_software_by_hour",
		Description: "Unauthorized software usage aggregated by hour of day (90-day window)",
		PrimaryIntents: []Intent{
			IntentUnauthorizedSoftware,
			IntentUsageTrends,
		},
		KeyColumns: []string{
			"software_id", "hour", "session_count", "total_minutes",
		},
		Aggregations:     []string{"session_count", "total_minutes"},
		FiltersAvailable: []string{"software_id", "hour"},
		PerformanceNotes: "Best for hourly usage pattern analysis of unauthorized software.",
		SampleQueries: []string{
			"SELECT hour, SUM(session_count) as sessions, SUM(total_minutes) as minutes FROM mv_unauthorized_software_by_hour GROUP BY hour ORDER BY hour",
		},
		Priority: 3,
	},
	{
		Name:        "mv_unauthorized_software_timeline",
		Description: "Daily timeline of unauthorized software usage",
		PrimaryIntents: []Intent{
			IntentUnauthorizedSoftware,
			IntentUsageTrends,
		},
		KeyColumns: []string{
			"software_id", "date", "total_minutes", "unique_users", "session_count",
		},
		Aggregations:     []string{"total_minutes", "unique_users", "session_count"},
		FiltersAvailable: []string{"software_id", "date"},
		PerformanceNotes: "Best for trend analysis of unauthorized software over time.",
		SampleQueries: []string{
			"SELECT date, SUM(total_minutes) as minutes FROM mv_unauthorized_software_timeline WHERE date >= CURRENT_DATE - INTERVAL '30 days' GROUP BY date ORDER BY date",
		},
		Priority: 2,
	},
	{
		Name:        "mv_software_usage_by_school_v2",
		Description: "Software usage metrics broken down by school with ROI calculations",
		PrimaryIntents: []Intent{
			IntentSchoolAnalysis,
			IntentSoftwareUsage,
			IntentSoftwareROI,
		},
		KeyColumns: []string{
			"software_id", "software_name", "school_id", "school_name", "district_id",
			"total_cost", "category", "authorized", "district_purchased",
			"students_licensed", "funding_source", "user_type", "grade",
			"applicable_grade_bands", "active_users", "active_students", "active_teachers",
			"total_minutes", "usage_days", "first_use_date", "last_use_date",
			"days_since_start", "expected_daily_minutes", "category_type",
			"cost_per_student", "expected_minutes_to_date", "usage_ratio",
			"avg_minutes_per_day", "avg_roi_percentage", "roi_status",
			"engagement_rate", "usage_compliance", "avg_usage_compliance",
		},
		Aggregations:     []string{"active_users", "active_students", "active_teachers", "total_minutes", "avg_roi_percentage"},
		FiltersAvailable: []string{"district_id", "school_id", "school_name", "category", "roi_status"},
		PerformanceNotes: "Best for school-level software comparisons, ROI by school analysis.",
		SampleQueries: []string{
			"SELECT school_name, software_name, total_minutes, roi_status FROM mv_software_usage_by_school_v2 WHERE district_id = $1 ORDER BY total_minutes DESC",
		},
		Priority: 1,
	},
	{
		Name:        "mv_software_usage_rankings_v4",
		Description: "Software usage rankings with percentage calculations, supporting filtering by grade band, user type, school, and funding source",
		PrimaryIntents: []Intent{
			IntentUsageRankings,
			IntentSoftwareUsage,
			IntentGradeAnalysis,
		},
		KeyColumns: []string{
			"id", "name", "category", "district_id", "user_type", "school_name",
			"funding_source", "grade_band", "total_cost", "total_minutes",
			"instance_count", "software_ids", "context_total_minutes", "usage_percentage",
		},
		Aggregations:     []string{"total_minutes", "total_cost", "usage_percentage"},
		FiltersAvailable: []string{"district_id", "user_type", "school_name", "funding_source", "grade_band"},
		PerformanceNotes: "Best for ranking software by usage percentage within context (grade band, school, etc.).",
		SampleQueries: []string{
			"SELECT name, grade_band, total_minutes, usage_percentage FROM mv_software_usage_rankings_v4 WHERE district_id = $1 AND grade_band = 'elementary' ORDER BY usage_percentage DESC",
			"SELECT name, user_type, total_minutes, usage_percentage FROM mv_software_usage_rankings_v4 WHERE district_id = $1 ORDER BY total_minutes DESC LIMIT 20",
		},
		Priority: 1,
	},
	{
		Name:        "peer_district_metrics",
		Description: "Per-metric district values with percentile, peer average, and ranking against a matched peer group",
		PrimaryIntents: []Intent{
			IntentPeerBenchmarking,
		},
		KeyColumns: []string{
			"district_id", "metric_name", "metric_value", "percentile", "peer_average",
			"unit", "category", "ranking", "matching_tier", "peer_count",
		},
		Aggregations:     []string{"metric_value", "percentile", "peer_average"},
		FiltersAvailable: []string{"district_id", "category", "matching_tier"},
		PerformanceNotes: "Best for comparing the district against similar peer districts on headline metrics.",
		SampleQueries: []string{
			"SELECT metric_name, metric_value, percentile, peer_average, unit, category, ranking, peer_count FROM peer_district_metrics WHERE district_id = $1 ORDER BY category, metric_name",
		},
		Priority: 1,
	},
	{
		Name:        "peer_comparisons",
		Description: "Metric-by-metric comparison rows against the peer group with rank, totals, and interpretation text",
		PrimaryIntents: []Intent{
			IntentPeerBenchmarking,
		},
		KeyColumns: []string{
			"district_id", "metric", "your_value", "peer_average", "percentile",
			"rank", "total_districts", "interpretation", "matching_tier", "peer_count",
		},
		Aggregations:     []string{"your_value", "peer_average", "percentile"},
		FiltersAvailable: []string{"district_id", "matching_tier"},
		PerformanceNotes: "Best for detailed metric-by-metric peer analysis. Pairs with peer_district_metrics.",
		SampleQueries: []string{
			"SELECT metric, your_value, peer_average, percentile, rank, total_districts, interpretation FROM peer_comparisons WHERE district_id = $1 ORDER BY metric",
		},
		Priority: 2,
	},
}
