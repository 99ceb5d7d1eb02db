package search

import (
	"github.com/examwatch/examwatch-backend/internal/domain"
)

// PageSize is the fixed number of results per page.
const PageSize = 10

// Phase is the lifecycle phase of the search view
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseEmpty   Phase = "empty"
)

// State holds everything the search view needs to render
type State struct {
	Query      string
	Page       int
	Results    []domain.PostSummary
	TotalCount int64
	Loading    bool
	Phase      Phase
}

// NewState returns the initial state
func NewState() State {
	return State{Page: 1, Phase: PhaseIdle}
}

// TotalPages derives the page count from the total result count
func (s State) TotalPages() int {
	return int((s.TotalCount + PageSize - 1) / PageSize)
}

// HasPrev reports whether a previous page exists
func (s State) HasPrev() bool { return s.Page > 1 }

// HasNext reports whether a next page exists
func (s State) HasNext() bool { return s.Page < s.TotalPages() }

// Event mutates State through Reduce
type Event interface{ isEvent() }

// SearchStarted begins a fetch for the given (query, page)
type SearchStarted struct {
	Query string
	Page  int
}

// ResultsLoaded completes a fetch successfully
type ResultsLoaded struct {
	Results []domain.PostSummary
	Total   int64
}

// SearchFailed completes a fetch with an error. The error itself is logged
// by the caller; the state only records the fail-soft empty result.
type SearchFailed struct{}

// Cleared resets the view
type Cleared struct{}

func (SearchStarted) isEvent() {}
func (ResultsLoaded) isEvent() {}
func (SearchFailed) isEvent()  {}
func (Cleared) isEvent()       {}

// Reduce applies an event to a state and returns the next state. Pure: no
// I/O, no rendering dependency.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case SearchStarted:
		s.Query = e.Query
		s.Page = e.Page
		s.Loading = true
		s.Phase = PhaseLoading

	case ResultsLoaded:
		s.Results = e.Results
		s.TotalCount = e.Total
		s.Loading = false
		if len(e.Results) > 0 {
			s.Phase = PhaseLoaded
		} else if s.Query != "" {
			s.Phase = PhaseEmpty
		} else {
			s.Phase = PhaseLoaded
		}

	case SearchFailed:
		s.Results = nil
		s.TotalCount = 0
		s.Loading = false
		if s.Query != "" {
			s.Phase = PhaseEmpty
		} else {
			s.Phase = PhaseLoaded
		}

	case Cleared:
		s = NewState()
	}

	return s
}
