package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/sqlguard"
)

// rawQueryRowCap bounds raw query result sets regardless of what the
// statement asks for.
const rawQueryRowCap = 50

// RawQuery executes a caller-supplied read-only SELECT. The statement must
// pass the safety checks and must reference the district through a $1
// placeholder, which is bound server-side; queries that interpolate their own
// district value are rejected. Results are capped at rawQueryRowCap rows.
func (r *Router) RawQuery(ctx context.Context, scope TenantScope, sqlQuery string) (*QueryResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	normalized, err := sqlguard.Check(sqlQuery)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(normalized, "$1") {
		return nil, fmt.Errorf("%w: raw query must bind the district through $1", apperrors.ErrUnsafeQuery)
	}

	start := time.Now()

	wrapped := fmt.Sprintf("SELECT * FROM (%s) AS _limited LIMIT %d", normalized, rawQueryRowCap)
	b := &queryBuilder{}
	b.write(wrapped)
	b.args = append(b.args, scope.DistrictID)

	rows, err := r.run(ctx, b)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		ViewUsed:      "raw_query",
		ExecutionTime: time.Since(start),
	}
	result.addSection("data", rows)
	return result, nil
}
