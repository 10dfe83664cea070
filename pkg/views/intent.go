// Package views holds the static catalog of pre-aggregated analytics views,
// the closed set of query intents they serve, and the scoring logic that maps
// an ordered intent list to the best backing view.
package views

import (
	"strings"
)

// Intent categorizes what kind of analytic question a user asked.
type Intent string

const (
	IntentDashboardOverview    Intent = "dashboard_overview"
	IntentSoftwareUsage        Intent = "software_usage"
	IntentSoftwareROI          Intent = "software_roi"
	IntentSoftwareInvestment   Intent = "software_investment"
	IntentUserAnalytics        Intent = "user_analytics"
	IntentStudentAnalysis      Intent = "student_analysis"
	IntentTeacherAnalysis      Intent = "teacher_analysis"
	IntentUnauthorizedSoftware Intent = "unauthorized_software"
	IntentSchoolAnalysis       Intent = "school_analysis"
	IntentGradeAnalysis        Intent = "grade_analysis"
	IntentUsageTrends          Intent = "usage_trends"
	IntentUsageRankings        Intent = "usage_rankings"
	IntentReportGeneration     Intent = "report_generation"
	IntentActiveUsers          Intent = "active_users"
	IntentCostAnalysis         Intent = "cost_analysis"
	IntentUtilizationAnalysis  Intent = "utilization_analysis"
	IntentPeerBenchmarking     Intent = "peer_benchmarking"
)

// allIntents fixes the enumeration order. Keyword scoring ties and candidate
// accumulation both depend on this order staying stable.
var allIntents = []Intent{
	IntentDashboardOverview,
	IntentSoftwareUsage,
	IntentSoftwareROI,
	IntentSoftwareInvestment,
	IntentUserAnalytics,
	IntentStudentAnalysis,
	IntentTeacherAnalysis,
	IntentUnauthorizedSoftware,
	IntentSchoolAnalysis,
	IntentGradeAnalysis,
	IntentUsageTrends,
	IntentUsageRankings,
	IntentReportGeneration,
	IntentActiveUsers,
	IntentCostAnalysis,
	IntentUtilizationAnalysis,
	IntentPeerBenchmarking,
}

// AllIntents returns every intent in enumeration order.
func AllIntents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents)
	return out
}

// String returns the canonical upper-case name, e.g. "DASHBOARD_OVERVIEW".
func (i Intent) String() string {
	return strings.ToUpper(string(i))
}

// ParseIntent maps an intent name to its Intent value. Both the upper-case
// form ("SOFTWARE_ROI") and the lower-case form ("software_roi") are accepted.
// The boolean reports whether the name was recognized.
func ParseIntent(name string) (Intent, bool) {
	candidate := Intent(strings.ToLower(strings.TrimSpace(name)))
	for _, intent := range allIntents {
		if intent == candidate {
			return intent, true
		}
	}
	return "", false
}
