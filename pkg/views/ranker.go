package views

import (
	"sort"
	"strings"
)

// DetectIntents scores every intent by counting its keyword phrases that
// occur as substrings of the lower-cased question, keeps intents with a
// positive score ordered by score descending (ties follow enumeration order),
// and falls back to [DASHBOARD_OVERVIEW] when nothing matches.
func DetectIntents(query string) []Intent {
	queryLower := strings.ToLower(query)

	type scored struct {
		intent Intent
		score  int
	}
	var matches []scored
	for _, intent := range allIntents {
		score := 0
		for _, keyword := range intentKeywords[intent] {
			if strings.Contains(queryLower, keyword) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{intent: intent, score: score})
		}
	}

	if len(matches) == 0 {
		return []Intent{IntentDashboardOverview}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	intents := make([]Intent, len(matches))
	for i, m := range matches {
		intents[i] = m.intent
	}
	return intents
}

// scoreCandidates accumulates a score per view for the given ordered intent
// list. Earlier intents weigh more (length minus position) and lower priority
// numbers weigh more (4 minus priority), multiplied per matching pair.
func (r *Registry) scoreCandidates(intents []Intent) map[string]int {
	candidates := make(map[string]int)
	for idx, intent := range intents {
		intentWeight := len(intents) - idx
		for i := range r.ordered {
			view := &r.ordered[i]
			if !view.ServesIntent(intent) {
				continue
			}
			candidates[view.Name] += intentWeight * (4 - view.Priority)
		}
	}
	return candidates
}

// BestView returns the highest-scoring view for the ordered intent list.
// When no view serves any of the intents, it returns the default
// comprehensive view so routing always has a usable target. Score ties prefer
// the view appearing earlier in the catalog.
func (r *Registry) BestView(intents []Intent) *Descriptor {
	candidates := r.scoreCandidates(intents)
	if len(candidates) == 0 {
		return r.Default()
	}

	var best *Descriptor
	bestScore := 0
	for i := range r.ordered {
		view := &r.ordered[i]
		if score, ok := candidates[view.Name]; ok && score > bestScore {
			best = view
			bestScore = score
		}
	}
	return best
}

// RecommendedViews returns up to maxViews views ranked by accumulated score
// descending, ties broken by catalog order.
func (r *Registry) RecommendedViews(query string, maxViews int) []*Descriptor {
	intents := DetectIntents(query)
	candidates := r.scoreCandidates(intents)

	type ranked struct {
		view  *Descriptor
		score int
	}
	var rankedViews []ranked
	for i := range r.ordered {
		view := &r.ordered[i]
		if score, ok := candidates[view.Name]; ok {
			rankedViews = append(rankedViews, ranked{view: view, score: score})
		}
	}

	sort.SliceStable(rankedViews, func(i, j int) bool {
		return rankedViews[i].score > rankedViews[j].score
	})

	if maxViews > 0 && len(rankedViews) > maxViews {
		rankedViews = rankedViews[:maxViews]
	}

	out := make([]*Descriptor, len(rankedViews))
	for i, rv := range rankedViews {
		out[i] = rv.view
	}
	return out
}
