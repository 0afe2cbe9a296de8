package model

// Platform identifies a social media platform.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// Restaurant identifies a business selected from the places search.
type Restaurant struct {
	PlaceID         string  `json:"place_id" yaml:"place_id"`
	Name            string  `json:"name" yaml:"name"`
	Address         string  `json:"address,omitempty" yaml:"address,omitempty"`
	Rating          float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	UserRatingCount int     `json:"user_rating_count,omitempty" yaml:"user_rating_count,omitempty"`
}

// KeywordEntry is a single tracked search keyword with its current and
// target rank. When a snapshot carries keyword entries, they take precedence
// over the position-only SEO fallback.
type KeywordEntry struct {
	Keyword         string `json:"keyword" yaml:"keyword"`
	SearchVolume    int    `json:"search_volume" yaml:"search_volume"`       // monthly searches, >= 0
	CurrentPosition int    `json:"current_position" yaml:"current_position"` // >= 1
	TargetPosition  int    `json:"target_position" yaml:"target_position"`   // >= 1
	IsLocalPack     bool   `json:"is_local_pack" yaml:"is_local_pack"`
}

// PlatformMetrics holds detected engagement metrics for one social platform.
// All fields are optional enhancements; a zero value means "not detected".
type PlatformMetrics struct {
	Followers     int     `json:"followers" yaml:"followers"`
	AvgLikes      float64 `json:"avg_likes" yaml:"avg_likes"` // average likes across recent posts
	PageLikes     int     `json:"page_likes,omitempty" yaml:"page_likes,omitempty"`
	PaidPromotion bool    `json:"paid_promotion,omitempty" yaml:"paid_promotion,omitempty"`
	Inactive      bool    `json:"inactive,omitempty" yaml:"inactive,omitempty"`
	HasEngagement bool    `json:"has_engagement" yaml:"has_engagement"` // true when AvgLikes was actually measured
}

// EngagementRate returns the empirical engagement rate (avg likes per
// follower). Zero followers yields zero.
func (m PlatformMetrics) EngagementRate() float64 {
	if m.Followers <= 0 {
		return 0
	}
	return m.AvgLikes / float64(m.Followers)
}

// Enhanced reports whether the platform has measured engagement data,
// enabling the enhanced-metrics social estimator path.
func (m PlatformMetrics) Enhanced() bool {
	return m.HasEngagement && m.Followers > 0
}

// BusinessSnapshot accumulates everything the revenue aggregator needs. It is
// created with defaults at flow start, mutated one field per message during
// data entry, and consumed read-only by Aggregate.
type BusinessSnapshot struct {
	Restaurant Restaurant `json:"restaurant" yaml:"restaurant"`

	// Core financials. AvgTicket is shared by every channel estimator in a
	// single aggregation pass.
	MonthlyRevenue      float64 `json:"monthly_revenue" yaml:"monthly_revenue"`
	AvgTicket           float64 `json:"avg_ticket" yaml:"avg_ticket"`
	MonthlyTransactions int     `json:"monthly_transactions" yaml:"monthly_transactions"`

	// SEO. Keywords take precedence over the position fallback when present.
	Keywords          []KeywordEntry `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	LocalPackPosition int            `json:"local_pack_position" yaml:"local_pack_position"` // 0 = not ranked / unknown
	OrganicPosition   int            `json:"organic_position" yaml:"organic_position"`       // 0 = not ranked / unknown

	// List channels.
	SMSListSize   int `json:"sms_list_size" yaml:"sms_list_size"`
	SMSCampaigns  int `json:"sms_campaigns" yaml:"sms_campaigns"` // per month
	EmailListSize int `json:"email_list_size" yaml:"email_list_size"`

	// Social.
	Instagram PlatformMetrics `json:"instagram" yaml:"instagram"`
	Facebook  PlatformMetrics `json:"facebook" yaml:"facebook"`

	// Loyalty.
	HasLoyaltyProgram     bool    `json:"has_loyalty_program" yaml:"has_loyalty_program"`
	LoyaltyMembers        int     `json:"loyalty_members" yaml:"loyalty_members"`
	LoyaltyVisitsPerMonth float64 `json:"loyalty_visits_per_month" yaml:"loyalty_visits_per_month"`

	// Direct mail.
	UsesDirectMail     bool    `json:"uses_direct_mail" yaml:"uses_direct_mail"`
	ServiceRadiusMiles float64 `json:"service_radius_miles" yaml:"service_radius_miles"`
	MailingsPerMonth   float64 `json:"mailings_per_month" yaml:"mailings_per_month"`

	// Third-party delivery.
	UsesThirdParty   bool `json:"uses_third_party" yaml:"uses_third_party"`
	ThirdPartyOrders int  `json:"third_party_orders" yaml:"third_party_orders"` // per month
}

// NewSnapshot returns a snapshot with flow-start defaults.
func NewSnapshot(r Restaurant) *BusinessSnapshot {
	return &BusinessSnapshot{
		Restaurant:            r,
		SMSCampaigns:          4,
		LoyaltyVisitsPerMonth: 2,
		MailingsPerMonth:      1,
	}
}

// Clone returns a deep copy. The reducer never mutates a prior state's
// snapshot in place; it clones, applies one change, and carries the copy
// forward.
func (s *BusinessSnapshot) Clone() *BusinessSnapshot {
	out := *s
	if s.Keywords != nil {
		out.Keywords = make([]KeywordEntry, len(s.Keywords))
		copy(out.Keywords, s.Keywords)
	}
	return &out
}
