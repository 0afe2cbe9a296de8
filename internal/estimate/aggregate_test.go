package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/model"
)

func sampleSnapshot() *model.BusinessSnapshot {
	snap := model.NewSnapshot(model.Restaurant{PlaceID: "p1", Name: "Mario's"})
	snap.MonthlyRevenue = 40_000
	snap.AvgTicket = 25
	snap.MonthlyTransactions = 1600
	snap.Keywords = []model.KeywordEntry{
		{Keyword: "pizza near me", SearchVolume: 2000, CurrentPosition: 4, TargetPosition: 1, IsLocalPack: true},
	}
	snap.SMSListSize = 500
	snap.EmailListSize = 1200
	snap.Instagram = model.PlatformMetrics{Followers: 10_000}
	snap.Facebook = model.PlatformMetrics{Followers: 5_000}
	snap.UsesThirdParty = true
	snap.ThirdPartyOrders = 300
	snap.ServiceRadiusMiles = 5
	return snap
}

func TestAggregate_AllChannelsPresent(t *testing.T) {
	res := Aggregate(sampleSnapshot())

	require.Len(t, res.Services, len(model.Channels))
	for _, ch := range model.Channels {
		assert.Contains(t, res.Services, ch)
	}
}

func TestAggregate_AdditionalIsExactDifference(t *testing.T) {
	res := Aggregate(sampleSnapshot())

	var total float64
	for _, sr := range res.Services {
		assert.Equal(t, sr.Potential-sr.Current, sr.Additional, "channel %s", sr.Channel)
		assert.False(t, math.IsNaN(sr.Additional))
		total += sr.Additional
	}
	assert.InDelta(t, total, res.TotalAdditional, 0.0001)
}

func TestAggregate_Idempotent(t *testing.T) {
	snap := sampleSnapshot()
	first := Aggregate(snap)
	second := Aggregate(snap)
	assert.Equal(t, first, second)
}

func TestAggregate_PerChannelPathSelection(t *testing.T) {
	snap := sampleSnapshot()
	// Keyword SEO data alongside basic-only social data: the selection is per
	// channel, not global.
	snap.Instagram.HasEngagement = false
	res := Aggregate(snap)

	assert.Equal(t, MethodSEOKeywords, res.Services[model.ChannelSEO].Method)
	assert.Equal(t, model.ConfidenceHigh, res.Services[model.ChannelSEO].Confidence)
	assert.Equal(t, MethodSocialBasic, res.Services[model.ChannelSocial].Method)
	assert.Equal(t, model.ConfidenceLow, res.Services[model.ChannelSocial].Confidence)

	snap.Keywords = nil
	snap.Instagram.AvgLikes = 300
	snap.Instagram.HasEngagement = true
	res = Aggregate(snap)

	assert.Equal(t, MethodSEOPosition, res.Services[model.ChannelSEO].Method)
	assert.Equal(t, model.ConfidenceLow, res.Services[model.ChannelSEO].Confidence)
	assert.Equal(t, MethodSocialEnhanced, res.Services[model.ChannelSocial].Method)
}

func TestAggregate_ZeroSnapshot(t *testing.T) {
	res := Aggregate(model.NewSnapshot(model.Restaurant{Name: "Empty"}))

	for _, sr := range res.Services {
		assert.False(t, math.IsNaN(sr.Current), "channel %s", sr.Channel)
		assert.False(t, math.IsNaN(sr.Potential), "channel %s", sr.Channel)
		assert.False(t, math.IsInf(sr.Potential, -1), "channel %s", sr.Channel)
		assert.GreaterOrEqual(t, sr.Current, 0.0)
	}
}

func TestAggregate_OpportunitiesFilterPositiveOnly(t *testing.T) {
	snap := sampleSnapshot()
	res := Aggregate(snap)

	for _, sr := range res.Opportunities() {
		assert.Greater(t, sr.Additional, 0.0, "channel %s", sr.Channel)
	}

	// Third-party is a pass-through: zero gap, never an opportunity.
	for _, sr := range res.Opportunities() {
		assert.NotEqual(t, model.ChannelThirdParty, sr.Channel)
	}
}
