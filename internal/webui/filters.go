package webui

import (
	"net/url"

	"github.com/taskboard/taskboard/internal/client"
	"github.com/taskboard/taskboard/internal/domain"
)

// FilterState holds the GUI's filter controls: a name substring box and
// the two status toggles. The zero value means "no filtering".
type FilterState struct {
	Query     string
	Completed bool
	Pending   bool
}

// ParseFilterState reads the filter controls from request query or form values.
func ParseFilterState(values url.Values) FilterState {
	return FilterState{
		Query:     values.Get("q"),
		Completed: values.Get("completed") != "",
		Pending:   values.Get("pending") != "",
	}
}

// Encode returns the filter state as query values, omitting defaults so
// the cleared state round-trips to a bare URL.
func (f FilterState) Encode() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	if f.Completed {
		values.Set("completed", "on")
	}
	if f.Pending {
		values.Set("pending", "on")
	}
	return values
}

// ListFilter translates the controls into an API filter.
// Both toggles on or both off means no status restriction; exactly one
// on restricts to that status.
func (f FilterState) ListFilter() client.ListFilter {
	filter := client.ListFilter{Name: f.Query}

	if f.Completed != f.Pending {
		status := f.Completed
		filter.Status = &status
	}

	return filter
}

// Counts are display-only aggregates derived by re-scanning the
// currently displayed list. They are never persisted.
type Counts struct {
	Total     int
	Completed int
	Pending   int
}

// CountTasks computes the display aggregates for a task list.
func CountTasks(tasks []domain.Task) Counts {
	counts := Counts{Total: len(tasks)}
	for _, task := range tasks {
		if task.Status {
			counts.Completed++
		} else {
			counts.Pending++
		}
	}
	return counts
}
