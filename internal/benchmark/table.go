// Package benchmark holds the static per-channel marketing benchmarks used by
// the channel estimators. The values are heuristic industry benchmarks, not
// guaranteed-correct economics; they are loaded once and never mutated.
package benchmark

import "math"

// PackType distinguishes the two search result surfaces a keyword can rank in.
type PackType string

const (
	LocalPack PackType = "local_pack"
	Organic   PackType = "organic"
)

// CTR curves in percent, keyed by rank position. Positions within a curve are
// unique by construction.
var localPackCTR = map[int]float64{
	1: 17.8,
	2: 15.2,
	3: 12.4,
}

var organicCTR = map[int]float64{
	1:  31.7,
	2:  24.7,
	3:  18.7,
	4:  13.6,
	5:  9.5,
	6:  6.3,
	7:  4.3,
	8:  3.1,
	9:  2.6,
	10: 2.4,
}

// residualLocalPackCTR is the click share attributed to a business that ranks
// below the visible local pack. Not zero: the pack expands on "more places".
const residualLocalPackCTR = 1.0

// organicFloor clamps the long-tail organic decay.
const organicFloor = 0.1

// Scalar benchmark constants shared by the estimators.
const (
	// Search.
	SEOConversionRate = 0.03
	// Position-fallback path: search volume approximated from transaction
	// count, current SEO assumed to carry a fixed share of revenue, and any
	// rank below the visible pack treated as position 5.
	SearchesPerTransaction = 2.5
	SEOCurrentRevenueShare = 0.10
	FallbackUnrankedPos    = 5

	// Target list sizes as a share of monthly transactions, for the SMS and
	// email growth scenarios.
	SMSTargetListShare   = 0.15
	EmailTargetListShare = 0.35

	// SMS.
	SMSOpenRate       = 0.98
	SMSClickRate      = 0.195
	SMSConversionRate = 0.15

	// Email fixed funnel.
	EmailOpenRate       = 0.284
	EmailClickRate      = 0.042
	EmailConversionRate = 0.028
	EmailCampaignsPerMo = 4

	// Social, basic path: flat monthly follower-to-customer conversion.
	// Instagram is weighted above Facebook, reflecting engagement norms.
	InstagramConversionRate = 0.012
	FacebookConversionRate  = 0.008
	ContentUpliftMultiplier = 1.25

	// Social, enhanced path.
	SocialCurrentConversion  = 0.005
	SocialHighTierConversion = 0.018
	SocialLowTierConversion  = 0.012
	EngagementTierThreshold  = 0.025
	PaidPromotionMultiplier  = 2.5
	InactivePageMultiplier   = 0.5
	PageLikeGapConversion    = 0.002
	CrossPlatformSynergy     = 1.10

	// Loyalty: enrolled members spend this much more per visit.
	LoyaltySpendUplift     = 0.20
	LoyaltyTargetEnrollPct = 0.25

	// Direct mail.
	DirectMailResponseRate = 0.0296
	DirectMailRepeatRate   = 0.20
	HouseholdsPerSqMile    = 500.0

	// Third-party delivery.
	ThirdPartyCommission = 0.225
)

// CTR returns the click-through rate (percent) for a rank position on the
// given surface. It never fails: local-pack positions beyond the tabulated
// range return a small residual constant, and organic positions follow a
// linear long-tail decay clamped at a floor.
func CTR(pack PackType, position int) float64 {
	if position < 1 {
		position = 1
	}
	switch pack {
	case LocalPack:
		if rate, ok := localPackCTR[position]; ok {
			return rate
		}
		return residualLocalPackCTR
	default:
		if rate, ok := organicCTR[position]; ok {
			return rate
		}
		return math.Max(1.5-0.2*float64(position), organicFloor)
	}
}

// CurvePositions returns the tabulated positions for a surface in ascending
// order, for display.
func CurvePositions(pack PackType) []int {
	curve := organicCTR
	if pack == LocalPack {
		curve = localPackCTR
	}
	positions := make([]int, 0, len(curve))
	for p := 1; p <= len(curve); p++ {
		if _, ok := curve[p]; ok {
			positions = append(positions, p)
		}
	}
	return positions
}
