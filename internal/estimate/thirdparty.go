package estimate

import "github.com/sells-group/opportunity-cli/internal/benchmark"

// ThirdPartyNet returns monthly delivery revenue net of the platform
// commission. This channel is a pass-through cost model, not an uplift model:
// potential equals current unless order volume changes.
func ThirdPartyNet(orders int, avgTicket float64) float64 {
	if orders <= 0 || avgTicket <= 0 {
		return 0
	}
	return float64(orders) * avgTicket * (1 - benchmark.ThirdPartyCommission)
}

// ThirdParty estimates the channel. Both figures are the same net amount; the
// gap is structurally zero.
func ThirdParty(uses bool, orders int, avgTicket float64) (current, potential float64) {
	if !uses {
		return 0, 0
	}
	net := ThirdPartyNet(orders, avgTicket)
	return net, net
}
