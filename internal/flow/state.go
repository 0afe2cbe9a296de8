// Package flow implements the message-driven application state machine that
// sequences the analysis flow: restaurant search, best-effort social
// detection, data entry, and analysis. Exactly one state is active at a time
// and transitions are pure functions of (state, message), so the UI can
// remain a pure function of state.
package flow

import "github.com/sells-group/opportunity-cli/internal/model"

// State is the tagged union of application states.
type State interface {
	// Name returns the state tag for logging and API serialization.
	Name() string
	isState()
}

// Loading is the transient state while an async lookup is in flight at flow
// start (e.g. a restaurant search).
type Loading struct {
	Query string
	Token string // stale-response guard for the outstanding search
}

// RestaurantSearch is the initial state: the user types a free-text query and
// picks a restaurant from the results.
type RestaurantSearch struct {
	Query   string
	Results []model.Restaurant
}

// SocialDetection runs after a restaurant is selected; a best-effort social
// profile lookup is outstanding, keyed by Token.
type SocialDetection struct {
	Restaurant model.Restaurant
	Token      string
}

// DataEntry collects the business snapshot field by field.
type DataEntry struct {
	Snapshot *model.BusinessSnapshot
}

// Analysis holds the snapshot together with the aggregation computed from it.
// Lever toggles mutate only Levers; the stored Result is never invalidated by
// a toggle.
type Analysis struct {
	Snapshot *model.BusinessSnapshot
	Result   *model.AggregateResult
	Levers   model.LeverState
}

// Failed is the blocking error state. Prev retains the state the error
// occurred in, for resume.
type Failed struct {
	Message string
	Prev    State
}

func (Loading) Name() string          { return "loading" }
func (RestaurantSearch) Name() string { return "restaurant_search" }
func (SocialDetection) Name() string  { return "social_detection" }
func (DataEntry) Name() string        { return "data_entry" }
func (Analysis) Name() string         { return "analysis" }
func (Failed) Name() string           { return "failed" }

func (Loading) isState()          {}
func (RestaurantSearch) isState() {}
func (SocialDetection) isState()  {}
func (DataEntry) isState()        {}
func (Analysis) isState()         {}
func (Failed) isState()           {}

// Initial returns the flow's starting state.
func Initial() State {
	return RestaurantSearch{}
}
