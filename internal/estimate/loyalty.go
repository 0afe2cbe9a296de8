package estimate

import "github.com/sells-group/opportunity-cli/internal/benchmark"

// loyaltyRevenue models the monthly incremental spend of enrolled members
// only: members × ticket × visits × spend uplift.
func loyaltyRevenue(members int, avgTicket, visitsPerMonth float64) float64 {
	if members <= 0 || avgTicket <= 0 || visitsPerMonth <= 0 {
		return 0
	}
	return float64(members) * avgTicket * visitsPerMonth * benchmark.LoyaltySpendUplift
}

// Loyalty estimates current uplift from existing enrollment and potential
// uplift from enrolling a benchmark share of the monthly customer base
// (approximated by transaction count). Without a program there is no current
// loyalty revenue.
func Loyalty(hasProgram bool, members, transactions int, avgTicket, visitsPerMonth float64) (current, potential float64) {
	if visitsPerMonth <= 0 {
		visitsPerMonth = 2
	}
	if hasProgram {
		current = loyaltyRevenue(members, avgTicket, visitsPerMonth)
	}

	targetMembers := int(float64(transactions) * benchmark.LoyaltyTargetEnrollPct)
	if hasProgram && members > targetMembers {
		targetMembers = members
	}
	potential = loyaltyRevenue(targetMembers, avgTicket, visitsPerMonth)
	return current, potential
}
