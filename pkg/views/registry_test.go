package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classsight/insight-engine/pkg/apperrors"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()

	view, err := r.Get("mv_software_usage_analytics_v4")
	require.NoError(t, err)
	assert.Equal(t, "mv_software_usage_analytics_v4", view.Name)
	assert.Contains(t, view.PrimaryIntents, IntentSoftwareUsage)
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("mv_does_not_exist")
	assert.ErrorIs(t, err, apperrors.ErrUnknownView)
}

func TestRegistryInvariants(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, 18, r.Len())

	seen := make(map[string]bool)
	for _, view := range r.All() {
		assert.False(t, seen[view.Name], "duplicate name %s", view.Name)
		seen[view.Name] = true
		assert.NotEmpty(t, view.PrimaryIntents, "view %s", view.Name)
		assert.GreaterOrEqual(t, view.Priority, 1, "view %s", view.Name)
	}
}

func TestEveryIntentServedBySomeView(t *testing.T) {
	r := NewRegistry()

	for _, intent := range AllIntents() {
		served := false
		for _, view := range r.All() {
			if view.ServesIntent(intent) {
				served = true
				break
			}
		}
		assert.True(t, served, "intent %s has no view", intent)
	}
}

func TestParseIntent(t *testing.T) {
	intent, ok := ParseIntent("DASHBOARD_OVERVIEW")
	require.True(t, ok)
	assert.Equal(t, IntentDashboardOverview, intent)

	intent, ok = ParseIntent("peer_benchmarking")
	require.True(t, ok)
	assert.Equal(t, IntentPeerBenchmarking, intent)

	_, ok = ParseIntent("NOT_AN_INTENT")
	assert.False(t, ok)
}
