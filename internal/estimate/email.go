package estimate

import "github.com/sells-group/opportunity-cli/internal/benchmark"

// emailRevenue is the fixed email funnel:
// list × open(28.4%) × CTR(4.2%) × conversion(2.8%) × ticket × 4 campaigns.
func emailRevenue(listSize int, avgTicket float64) float64 {
	if listSize <= 0 || avgTicket <= 0 {
		return 0
	}
	return float64(listSize) *
		benchmark.EmailOpenRate *
		benchmark.EmailClickRate *
		benchmark.EmailConversionRate *
		avgTicket *
		float64(benchmark.EmailCampaignsPerMo)
}

// Email estimates current revenue from the existing list and potential from
// growing the list to a benchmark share of monthly transactions.
func Email(listSize, transactions int, avgTicket float64) (current, potential float64) {
	current = emailRevenue(listSize, avgTicket)

	targetList := int(float64(transactions) * benchmark.EmailTargetListShare)
	if listSize > targetList {
		targetList = listSize
	}
	potential = emailRevenue(targetList, avgTicket)
	return current, potential
}
