package router

import (
	"time"
)

// Section is one named row set inside a QueryResult. Accessors that issue
// multiple queries (summary plus detail, breakdowns by role/grade/school)
// return one section per query.
type Section struct {
	Name string           `json:"name"`
	Rows []map[string]any `json:"rows"`
}

// QueryResult is the payload returned by every accessor: the retrieved
// sections, which view(s) served them, and execution metadata. Results are
// created per call and owned by the caller.
type QueryResult struct {
	Sections      []Section     `json:"sections"`
	ViewUsed      string        `json:"mv_used"`
	ExecutionTime time.Duration `json:"execution_time"`
	Count         int           `json:"count"`
	SchoolID      string        `json:"school_id,omitempty"`
}

// Section returns the named section's rows, or nil when absent.
func (r *QueryResult) Section(name string) []map[string]any {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Rows
		}
	}
	return nil
}

// addSection appends a section and folds its row count into Count.
func (r *QueryResult) addSection(name string, rows []map[string]any) {
	r.Sections = append(r.Sections, Section{Name: name, Rows: rows})
	r.Count += len(rows)
}
