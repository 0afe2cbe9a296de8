package flow

import "github.com/sells-group/opportunity-cli/internal/model"

// Msg is the tagged union of messages driving the state machine: user actions
// and completed async lookups alike arrive as ordinary messages. The reducer
// never blocks and never issues network calls.
type Msg interface {
	// Kind returns the message tag for logging and API deserialization.
	Kind() string
	isMsg()
}

// --- Search and detection ---

// SearchSubmitted starts a restaurant search for a free-text query.
type SearchSubmitted struct {
	Query string
	Token string
}

// SearchCompleted delivers the results of an outstanding search.
type SearchCompleted struct {
	Token   string
	Results []model.Restaurant
}

// SearchFailed delivers a search failure; the flow returns to the search
// state with an empty result list rather than blocking.
type SearchFailed struct {
	Token  string
	Reason string
}

// RestaurantSelected moves the flow to social detection for the chosen
// restaurant. Token identifies the detection request the session will launch,
// so a later restart can recognize its completion as stale.
type RestaurantSelected struct {
	Restaurant model.Restaurant
	Token      string
}

// DetectionSucceeded delivers detected social metrics. Token must match the
// active SocialDetection state or the message is dropped (stale response).
type DetectionSucceeded struct {
	Token     string
	Instagram model.PlatformMetrics
	Facebook  model.PlatformMetrics
}

// DetectionFailed routes the flow forward to data entry with defaulted social
// fields: detection is an enhancement, not a requirement.
type DetectionFailed struct {
	Token  string
	Reason string
}

// DetectionSkipped is the user skipping detection.
type DetectionSkipped struct{}

// --- Data entry field updates (one field per message) ---

// SetRevenue updates monthly revenue.
type SetRevenue struct{ Value float64 }

// SetAvgTicket updates the shared average ticket.
type SetAvgTicket struct{ Value float64 }

// SetTransactions updates monthly transaction count.
type SetTransactions struct{ Value int }

// SetListSize updates a list-channel size ("sms" or "email").
type SetListSize struct {
	List  string
	Value int
}

// SetSMSCampaigns updates the monthly SMS cadence.
type SetSMSCampaigns struct{ Value int }

// SetPosition updates a fallback-SEO rank ("local_pack" or "organic").
type SetPosition struct {
	Surface string
	Value   int
}

// SetFollowers updates a platform's follower count.
type SetFollowers struct {
	Platform model.Platform
	Value    int
}

// AddKeyword appends a keyword entry.
type AddKeyword struct{ Entry model.KeywordEntry }

// UpdateKeyword replaces the entry at Index. An out-of-range index is an
// input validation error and transitions to Failed.
type UpdateKeyword struct {
	Index int
	Entry model.KeywordEntry
}

// RemoveKeyword deletes the entry at Index, with the same range rule.
type RemoveKeyword struct{ Index int }

// SetToggle flips a boolean snapshot field ("direct_mail", "third_party",
// "loyalty").
type SetToggle struct {
	Toggle string
	Value  bool
}

// SetRadius updates the direct-mail service radius in miles.
type SetRadius struct{ Value float64 }

// SetMailings updates direct-mail mailings per month.
type SetMailings struct{ Value float64 }

// SetThirdPartyOrders updates monthly third-party order volume.
type SetThirdPartyOrders struct{ Value int }

// SetLoyaltyMembers updates the loyalty enrollment count.
type SetLoyaltyMembers struct{ Value int }

// --- Flow control ---

// RunAnalysis aggregates the accumulated snapshot and moves to Analysis.
type RunAnalysis struct{}

// ToggleLever flips a what-if lever while in Analysis. Levers are
// presentation-layer switches and do not trigger recomputation.
type ToggleLever struct{ Lever string }

// Fail carries an unrecoverable error into the Failed state.
type Fail struct{ Message string }

// Resume returns from Failed to the retained prior state.
type Resume struct{}

// StartOver discards all accumulated data and returns to a fresh search.
type StartOver struct{}

func (SearchSubmitted) Kind() string     { return "search_submitted" }
func (SearchCompleted) Kind() string     { return "search_completed" }
func (SearchFailed) Kind() string        { return "search_failed" }
func (RestaurantSelected) Kind() string  { return "restaurant_selected" }
func (DetectionSucceeded) Kind() string  { return "detection_succeeded" }
func (DetectionFailed) Kind() string     { return "detection_failed" }
func (DetectionSkipped) Kind() string    { return "detection_skipped" }
func (SetRevenue) Kind() string          { return "set_revenue" }
func (SetAvgTicket) Kind() string        { return "set_avg_ticket" }
func (SetTransactions) Kind() string     { return "set_transactions" }
func (SetListSize) Kind() string         { return "set_list_size" }
func (SetSMSCampaigns) Kind() string     { return "set_sms_campaigns" }
func (SetPosition) Kind() string         { return "set_position" }
func (SetFollowers) Kind() string        { return "set_followers" }
func (AddKeyword) Kind() string          { return "add_keyword" }
func (UpdateKeyword) Kind() string       { return "update_keyword" }
func (RemoveKeyword) Kind() string       { return "remove_keyword" }
func (SetToggle) Kind() string           { return "set_toggle" }
func (SetRadius) Kind() string           { return "set_radius" }
func (SetMailings) Kind() string         { return "set_mailings" }
func (SetThirdPartyOrders) Kind() string { return "set_third_party_orders" }
func (SetLoyaltyMembers) Kind() string   { return "set_loyalty_members" }
func (RunAnalysis) Kind() string         { return "run_analysis" }
func (ToggleLever) Kind() string         { return "toggle_lever" }
func (Fail) Kind() string                { return "fail" }
func (Resume) Kind() string              { return "resume" }
func (StartOver) Kind() string           { return "start_over" }

func (SearchSubmitted) isMsg()     {}
func (SearchCompleted) isMsg()     {}
func (SearchFailed) isMsg()        {}
func (RestaurantSelected) isMsg()  {}
func (DetectionSucceeded) isMsg()  {}
func (DetectionFailed) isMsg()     {}
func (DetectionSkipped) isMsg()    {}
func (SetRevenue) isMsg()          {}
func (SetAvgTicket) isMsg()        {}
func (SetTransactions) isMsg()     {}
func (SetListSize) isMsg()         {}
func (SetSMSCampaigns) isMsg()     {}
func (SetPosition) isMsg()         {}
func (SetFollowers) isMsg()        {}
func (AddKeyword) isMsg()          {}
func (UpdateKeyword) isMsg()       {}
func (RemoveKeyword) isMsg()       {}
func (SetToggle) isMsg()           {}
func (SetRadius) isMsg()           {}
func (SetMailings) isMsg()         {}
func (SetThirdPartyOrders) isMsg() {}
func (SetLoyaltyMembers) isMsg()   {}
func (RunAnalysis) isMsg()         {}
func (ToggleLever) isMsg()         {}
func (Fail) isMsg()                {}
func (Resume) isMsg()              {}
func (StartOver) isMsg()           {}
