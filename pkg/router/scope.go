// Package router is the query accessor layer. Each accessor knows the exact
// parameterized SQL for its backing view(s), applies tenant scoping, and
// returns structured rows plus metadata about the query that ran.
package router

import (
	"fmt"
	"strings"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/sqlguard"
)

// TenantScope bounds every accessor call to one district and optionally one
// school. DistrictID must be non-empty; a missing district fails loudly
// rather than silently returning cross-tenant data.
type TenantScope struct {
	DistrictID string
	SchoolID   string
}

// Validate checks the scope before any SQL is built from it.
func (s TenantScope) Validate() error {
	if strings.TrimSpace(s.DistrictID) == "" {
		return apperrors.ErrMissingDistrict
	}
	if results := sqlguard.CheckScopeParams(map[string]any{
		"district_id": s.DistrictID,
		"school_id":   s.SchoolID,
	}); len(results) > 0 {
		return fmt.Errorf("%w: scope parameter %s", apperrors.ErrUnsafeQuery, results[0].ParamName)
	}
	return nil
}

// queryBuilder accumulates SQL text and bound arguments, handing out
// positional placeholders as arguments are added.
type queryBuilder struct {
	sql  strings.Builder
	args []any
}

func (b *queryBuilder) write(s string) {
	b.sql.WriteString(s)
}

// bind registers an argument and returns its placeholder ($1, $2, ...).
func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) String() string {
	return b.sql.String()
}

// writeSchoolFilter appends an equality filter on a school-id column when the
// scope names a school.
func (b *queryBuilder) writeSchoolFilter(scope TenantScope, column string) {
	if scope.SchoolID != "" {
		b.write(fmt.Sprintf(" AND %s = %s", column, b.bind(scope.SchoolID)))
	}
}

// writeSchoolNameFilter appends a school filter for views that only key on
// school_name, resolving the name from the scoped school id.
func (b *queryBuilder) writeSchoolNameFilter(scope TenantScope) {
	if scope.SchoolID != "" {
		b.write(fmt.Sprintf(
			" AND school_name = (SELECT name FROM schools WHERE id = %s AND district_id = %s)",
			b.bind(scope.SchoolID), b.bind(scope.DistrictID)))
	}
}
