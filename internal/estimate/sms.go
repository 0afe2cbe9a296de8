package estimate

import "github.com/sells-group/opportunity-cli/internal/benchmark"

// smsRevenue is the documented SMS funnel:
// list × open × click × conversion × ticket × campaigns.
func smsRevenue(listSize int, campaigns int, avgTicket float64) float64 {
	if listSize <= 0 || campaigns <= 0 || avgTicket <= 0 {
		return 0
	}
	return float64(listSize) *
		benchmark.SMSOpenRate *
		benchmark.SMSClickRate *
		benchmark.SMSConversionRate *
		avgTicket *
		float64(campaigns)
}

// SMS estimates current revenue from the existing list at the current cadence
// and potential revenue from growing the list to a benchmark share of monthly
// transactions at a four-per-month cadence. An empty list yields zero current
// revenue regardless of campaign count.
func SMS(listSize, campaigns, transactions int, avgTicket float64) (current, potential float64) {
	current = smsRevenue(listSize, campaigns, avgTicket)

	targetList := int(float64(transactions) * benchmark.SMSTargetListShare)
	if listSize > targetList {
		targetList = listSize
	}
	targetCampaigns := campaigns
	if targetCampaigns < 4 {
		targetCampaigns = 4
	}
	potential = smsRevenue(targetList, targetCampaigns, avgTicket)
	return current, potential
}
