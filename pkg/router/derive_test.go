package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveInvestmentFields(t *testing.T) {
	tests := []struct {
		name             string
		cost, compliance float64
		wantReturn       float64
		wantUnrealized   float64
	}{
		{"full compliance", 1000, 100, 1000, 0},
		{"partial compliance", 1000, 80, 800, 200},
		{"zero compliance", 500, 0, 0, 500},
		{"rounds to cents", 999.99, 33.3, 333, 666.99},
		{"zero cost", 0, 75, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotReturn, gotUnrealized := DeriveInvestmentFields(tt.cost, tt.compliance)
			assert.InDelta(t, tt.wantReturn, gotReturn, 0.001)
			assert.InDelta(t, tt.wantUnrealized, gotUnrealized, 0.001)
		})
	}
}

func TestEnrichInvestmentRows(t *testing.T) {
	rows := []map[string]any{
		{"name": "A", "total_cost": 100.0, "usage_compliance": 50.0, "avg_roi_percentage": 40.0, "roi_percentage": 40.0},
		{"name": "B", "total_cost": nil, "usage_compliance": nil},
		{"name": "C", "total_cost": "250.50", "usage_compliance": int64(100)},
	}
	enrichInvestmentRows(rows)

	assert.Equal(t, 50.0, rows[0]["investment_return"])
	assert.Equal(t, 50.0, rows[0]["unrealized_value"])
	_, hasAvg := rows[0]["avg_roi_percentage"]
	_, hasPct := rows[0]["roi_percentage"]
	assert.False(t, hasAvg)
	assert.False(t, hasPct)

	assert.Equal(t, 0.0, rows[1]["investment_return"])
	assert.Equal(t, 0.0, rows[1]["unrealized_value"])

	assert.InDelta(t, 250.50, rows[2]["investment_return"].(float64), 0.001)
	assert.InDelta(t, 0.0, rows[2]["unrealized_value"].(float64), 0.001)
}
