package model

import "time"

// Channel identifies a marketing channel with its own estimator.
type Channel string

const (
	ChannelSEO        Channel = "seo"
	ChannelSMS        Channel = "sms"
	ChannelEmail      Channel = "email"
	ChannelSocial     Channel = "social"
	ChannelLoyalty    Channel = "loyalty"
	ChannelDirectMail Channel = "direct_mail"
	ChannelThirdParty Channel = "third_party"
)

// Channels lists every channel in display order.
var Channels = []Channel{
	ChannelSEO,
	ChannelSocial,
	ChannelSMS,
	ChannelEmail,
	ChannelLoyalty,
	ChannelDirectMail,
	ChannelThirdParty,
}

// Confidence is a qualitative label reflecting estimator maturity for a
// channel-and-path combination. It is a fixed annotation, not computed from
// data variance.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ServiceRevenue is the per-channel output of the aggregator. Additional may
// be negative when a channel already outperforms its naive potential; such
// channels are filtered out of the opportunity view, never zeroed.
type ServiceRevenue struct {
	Channel    Channel    `json:"channel"`
	Current    float64    `json:"current_revenue"`
	Potential  float64    `json:"potential_revenue"`
	Additional float64    `json:"additional_revenue"`
	Method     string     `json:"method"` // which estimator path produced the figures
	Confidence Confidence `json:"confidence"`
}

// AggregateResult maps every channel to its revenue estimate plus the total
// positive-and-negative gap sum. It is a pure function of one snapshot and is
// recomputed from scratch on every input change.
type AggregateResult struct {
	Services        map[Channel]ServiceRevenue `json:"services"`
	TotalAdditional float64                    `json:"total_additional_revenue"`
}

// Opportunities returns only the channels with a positive gap, in display
// order. Negative "upside" is confusing, so over-performing channels are
// excluded rather than shown at zero.
func (r *AggregateResult) Opportunities() []ServiceRevenue {
	var out []ServiceRevenue
	for _, ch := range Channels {
		if sr, ok := r.Services[ch]; ok && sr.Additional > 0 {
			out = append(out, sr)
		}
	}
	return out
}

// LeverState tracks the what-if toggles shown alongside an analysis. Levers
// are presentation-layer switches; toggling one does not invalidate the
// stored AggregateResult.
type LeverState map[string]bool

// Clone returns a copy safe to mutate.
func (l LeverState) Clone() LeverState {
	out := make(LeverState, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// AnalysisRun is a persisted, completed analysis.
type AnalysisRun struct {
	ID         string            `json:"id"`
	Restaurant Restaurant        `json:"restaurant"`
	Snapshot   *BusinessSnapshot `json:"snapshot"`
	Result     *AggregateResult  `json:"result"`
	CreatedAt  time.Time         `json:"created_at"`
}
