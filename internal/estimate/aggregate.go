package estimate

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// confidenceFor is the fixed qualitative label per channel-and-path
// combination. It reflects estimator maturity, not statistical confidence.
var confidenceFor = map[string]model.Confidence{
	MethodSEOKeywords:    model.ConfidenceHigh,
	MethodSEOPosition:    model.ConfidenceLow,
	MethodSocialEnhanced: model.ConfidenceMedium,
	MethodSocialBasic:    model.ConfidenceLow,
	MethodSMS:            model.ConfidenceMedium,
	MethodEmail:          model.ConfidenceMedium,
	MethodLoyalty:        model.ConfidenceLow,
	MethodDirectMail:     model.ConfidenceMedium,
	MethodThirdParty:     model.ConfidenceHigh,
}

// Aggregate runs every channel estimator against one snapshot and composes
// the unified result. Path selection (detailed data vs fallback) is made per
// channel, not globally. The function is pure and idempotent: identical
// snapshots produce field-for-field identical results, an invariant the UI
// relies on for re-render stability.
//
// The estimators are independent of one another, so they run concurrently;
// the snapshot is read-only for the duration of the call.
func Aggregate(snap *model.BusinessSnapshot) *model.AggregateResult {
	services := make(map[model.Channel]model.ServiceRevenue, len(model.Channels))
	results := make([]model.ServiceRevenue, len(model.Channels))
	ticket := snap.AvgTicket

	var g errgroup.Group

	g.Go(func() error {
		var cur, pot float64
		method := MethodSEOPosition
		if len(snap.Keywords) > 0 {
			cur, pot = SEOFromKeywords(snap.Keywords, ticket)
			method = MethodSEOKeywords
		} else {
			cur, pot = SEOFromPosition(snap.MonthlyRevenue, snap.MonthlyTransactions,
				snap.LocalPackPosition, snap.OrganicPosition, ticket)
		}
		results[0] = service(model.ChannelSEO, cur, pot, method)
		return nil
	})

	g.Go(func() error {
		cur, pot, method := Social(snap.Instagram, snap.Facebook, ticket)
		results[1] = service(model.ChannelSocial, cur, pot, method)
		return nil
	})

	g.Go(func() error {
		cur, pot := SMS(snap.SMSListSize, snap.SMSCampaigns, snap.MonthlyTransactions, ticket)
		results[2] = service(model.ChannelSMS, cur, pot, MethodSMS)
		return nil
	})

	g.Go(func() error {
		cur, pot := Email(snap.EmailListSize, snap.MonthlyTransactions, ticket)
		results[3] = service(model.ChannelEmail, cur, pot, MethodEmail)
		return nil
	})

	g.Go(func() error {
		cur, pot := Loyalty(snap.HasLoyaltyProgram, snap.LoyaltyMembers,
			snap.MonthlyTransactions, ticket, snap.LoyaltyVisitsPerMonth)
		results[4] = service(model.ChannelLoyalty, cur, pot, MethodLoyalty)
		return nil
	})

	g.Go(func() error {
		cur, pot := DirectMail(snap.UsesDirectMail, snap.ServiceRadiusMiles,
			snap.MailingsPerMonth, ticket)
		results[5] = service(model.ChannelDirectMail, cur, pot, MethodDirectMail)
		return nil
	})

	g.Go(func() error {
		cur, pot := ThirdParty(snap.UsesThirdParty, snap.ThirdPartyOrders, ticket)
		results[6] = service(model.ChannelThirdParty, cur, pot, MethodThirdParty)
		return nil
	})

	_ = g.Wait() // estimators never return errors

	var total float64
	for _, sr := range results {
		services[sr.Channel] = sr
		total += sr.Additional
	}

	zap.L().Debug("estimate: aggregation complete",
		zap.String("restaurant", snap.Restaurant.Name),
		zap.Float64("total_additional", total),
	)

	return &model.AggregateResult{
		Services:        services,
		TotalAdditional: total,
	}
}

func service(ch model.Channel, current, potential float64, method string) model.ServiceRevenue {
	return model.ServiceRevenue{
		Channel:    ch,
		Current:    current,
		Potential:  potential,
		Additional: potential - current,
		Method:     method,
		Confidence: confidenceFor[method],
	}
}
