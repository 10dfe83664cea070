package router

import (
	"math"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// DeriveInvestmentFields converts a compliance percentage into dollar terms:
// the portion of the spend realized by actual usage and the remainder left
// unrealized. Both values round to cents.
func DeriveInvestmentFields(totalCost, usageCompliance float64) (investmentReturn, unrealizedValue float64) {
	investmentReturn = round2(totalCost * usageCompliance / 100)
	unrealizedValue = round2(totalCost - investmentReturn)
	return investmentReturn, unrealizedValue
}

// enrichInvestmentRows adds investment_return and unrealized_value to every
// row and removes the raw ROI percentage fields. Reports expose dollars, not
// bare percentages.
func enrichInvestmentRows(rows []map[string]any) []map[string]any {
	for _, row := range rows {
		totalCost := toFloat(row["total_cost"])
		usageCompliance := toFloat(row["usage_compliance"])
		investmentReturn, unrealizedValue := DeriveInvestmentFields(totalCost, usageCompliance)
		row["investment_return"] = investmentReturn
		row["unrealized_value"] = unrealizedValue
		delete(row, "avg_roi_percentage")
		delete(row, "roi_percentage")
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// toFloat coerces the scalar types the driver hands back for numeric columns.
// Unknown types and NULLs count as zero.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int:
		return float64(n)
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil {
			return 0
		}
		return f.Float64
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
