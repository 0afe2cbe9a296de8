package estimate

import (
	"github.com/sells-group/opportunity-cli/internal/benchmark"
	"github.com/sells-group/opportunity-cli/internal/model"
)

// Estimator path names recorded on each ServiceRevenue.
const (
	MethodSEOKeywords    = "seo_keywords"
	MethodSEOPosition    = "seo_position_fallback"
	MethodSocialBasic    = "social_basic"
	MethodSocialEnhanced = "social_enhanced"
	MethodSMS            = "sms_funnel"
	MethodEmail          = "email_funnel"
	MethodLoyalty        = "loyalty_uplift"
	MethodDirectMail     = "direct_mail_radius"
	MethodThirdParty     = "third_party_net"
)

// socialBasic is the flat follower-conversion model for one platform.
// The improved-content uplift applies to the potential case only.
func socialBasic(platform model.Platform, followers int, avgTicket float64) (current, potential float64) {
	if followers <= 0 || avgTicket <= 0 {
		return 0, 0
	}
	rate := benchmark.FacebookConversionRate
	if platform == model.PlatformInstagram {
		rate = benchmark.InstagramConversionRate
	}
	current = float64(followers) * rate * avgTicket
	return current, current * benchmark.ContentUpliftMultiplier
}

// socialEnhanced uses measured engagement: a conservative flat conversion for
// current revenue, and a tiered conversion for potential keyed on whether the
// audience already engages above the benchmark threshold. Facebook potential
// is additionally scaled for paid promotion and page inactivity, and earns a
// bonus proportional to the gap between total page likes and followers
// (latent, not-yet-following brand affinity).
func socialEnhanced(platform model.Platform, m model.PlatformMetrics, avgTicket float64) (current, potential float64) {
	if m.Followers <= 0 || avgTicket <= 0 {
		return 0, 0
	}
	current = float64(m.Followers) * benchmark.SocialCurrentConversion * avgTicket

	conv := benchmark.SocialLowTierConversion
	if m.EngagementRate() > benchmark.EngagementTierThreshold {
		conv = benchmark.SocialHighTierConversion
	}
	potential = float64(m.Followers) * conv * avgTicket

	if platform == model.PlatformFacebook {
		if m.PaidPromotion {
			potential *= benchmark.PaidPromotionMultiplier
		}
		if m.Inactive {
			potential *= benchmark.InactivePageMultiplier
		}
		if gap := m.PageLikes - m.Followers; gap > 0 {
			potential += float64(gap) * benchmark.PageLikeGapConversion * avgTicket
		}
	}
	return current, potential
}

// Social combines both platforms, selecting the enhanced path per platform
// when engagement metrics were detected and the basic path otherwise. When
// both platforms carry enhanced metrics the combined potential receives a
// cross-platform synergy bonus; with only one platform's data the bonus is
// omitted.
func Social(ig, fb model.PlatformMetrics, avgTicket float64) (current, potential float64, method string) {
	method = MethodSocialBasic

	var igCur, igPot, fbCur, fbPot float64
	if ig.Enhanced() {
		igCur, igPot = socialEnhanced(model.PlatformInstagram, ig, avgTicket)
		method = MethodSocialEnhanced
	} else {
		igCur, igPot = socialBasic(model.PlatformInstagram, ig.Followers, avgTicket)
	}
	if fb.Enhanced() {
		fbCur, fbPot = socialEnhanced(model.PlatformFacebook, fb, avgTicket)
		method = MethodSocialEnhanced
	} else {
		fbCur, fbPot = socialBasic(model.PlatformFacebook, fb.Followers, avgTicket)
	}

	current = igCur + fbCur
	potential = igPot + fbPot
	if ig.Enhanced() && fb.Enhanced() {
		potential *= benchmark.CrossPlatformSynergy
	}
	return current, potential, method
}
