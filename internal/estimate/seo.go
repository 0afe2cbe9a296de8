// Package estimate computes per-channel monthly revenue estimates and
// composes them into a unified current-vs-potential result set. Every
// estimator is a pure function of its inputs plus the benchmark table:
// zero-valued inputs yield zero revenue, never an error, and no estimator
// depends on another estimator's output.
package estimate

import (
	"github.com/sells-group/opportunity-cli/internal/benchmark"
	"github.com/sells-group/opportunity-cli/internal/model"
)

// keywordRevenue computes monthly SEO revenue for one keyword at a given rank.
func keywordRevenue(kw model.KeywordEntry, position int, avgTicket float64) float64 {
	if kw.SearchVolume <= 0 || position < 1 || avgTicket <= 0 {
		return 0
	}
	pack := benchmark.Organic
	if kw.IsLocalPack {
		pack = benchmark.LocalPack
	}
	clicks := float64(kw.SearchVolume) * benchmark.CTR(pack, position) / 100
	conversions := clicks * benchmark.SEOConversionRate
	return conversions * avgTicket
}

// SEOFromKeywords is the keyword-level SEO path: current revenue sums each
// keyword at its current rank, potential at its target rank. Preferred over
// the position fallback whenever a keyword list exists.
func SEOFromKeywords(keywords []model.KeywordEntry, avgTicket float64) (current, potential float64) {
	for _, kw := range keywords {
		current += keywordRevenue(kw, kw.CurrentPosition, avgTicket)
		potential += keywordRevenue(kw, kw.TargetPosition, avgTicket)
	}
	return current, potential
}

// SEOFromPosition is the fallback SEO path used when no keyword list exists.
// Search volume is approximated from transaction count, current SEO is
// assumed to contribute a fixed share of revenue, and the potential uplift
// comes from moving the single aggregate rank (the worse of the local-pack
// and organic positions, with anything below the pack treated as position 5)
// to position 1.
func SEOFromPosition(monthlyRevenue float64, transactions, localPackPos, organicPos int, avgTicket float64) (current, potential float64) {
	if monthlyRevenue <= 0 && transactions <= 0 {
		return 0, 0
	}

	current = monthlyRevenue * benchmark.SEOCurrentRevenueShare

	pos := localPackPos
	if organicPos > pos {
		pos = organicPos
	}
	if pos < 1 || pos > 3 {
		pos = benchmark.FallbackUnrankedPos
	}

	volume := float64(transactions) * benchmark.SearchesPerTransaction
	gain := volume * (benchmark.CTR(benchmark.LocalPack, 1) - benchmark.CTR(benchmark.LocalPack, pos)) / 100 *
		benchmark.SEOConversionRate * avgTicket
	if gain < 0 {
		gain = 0
	}
	return current, current + gain
}
