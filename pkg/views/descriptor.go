package views

// Descriptor describes one pre-aggregated analytics view. Instances are
// process-lifetime constants; key columns, aggregations, and filters document
// the view's shape but are not enforced at runtime.
type Descriptor struct {
	// Name is the backing view or table name, unique across the catalog.
	Name string

	// Description summarizes contents and purpose.
	Description string

	// PrimaryIntents are the intents this view best serves.
	PrimaryIntents []Intent

	// KeyColumns are the columns the view exposes.
	KeyColumns []string

	// Aggregations are the pre-computed aggregate columns.
	Aggregations []string

	// FiltersAvailable are columns safe to filter on.
	FiltersAvailable []string

	// PerformanceNotes captures when to prefer this view.
	PerformanceNotes string

	// SampleQueries are representative parameterized access patterns.
	SampleQueries []string

	// Priority ranks the view for its intents. 1 is most preferred.
	Priority int
}

// ServesIntent reports whether the intent is one of the view's primary intents.
func (d *Descriptor) ServesIntent(intent Intent) bool {
	for _, pi := range d.PrimaryIntents {
		if pi == intent {
			return true
		}
	}
	return false
}
