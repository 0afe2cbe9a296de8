package estimate

import (
	"math"

	"github.com/sells-group/opportunity-cli/internal/benchmark"
)

// Households returns the estimated household count within a service-radius
// circle at the benchmark suburban density.
func Households(radiusMiles float64) float64 {
	if radiusMiles <= 0 {
		return 0
	}
	return math.Pi * radiusMiles * radiusMiles * benchmark.HouseholdsPerSqMile
}

// directMailRevenue models one month of mailings: households × response rate
// × repeat-customer conversion × ticket × mailings. Linear in frequency.
func directMailRevenue(radiusMiles, mailingsPerMonth, avgTicket float64) float64 {
	if mailingsPerMonth <= 0 || avgTicket <= 0 {
		return 0
	}
	responders := Households(radiusMiles) * benchmark.DirectMailResponseRate
	customers := responders * benchmark.DirectMailRepeatRate
	return customers * avgTicket * mailingsPerMonth
}

// DirectMail estimates the channel. A business already mailing at some cadence
// earns that as current revenue; potential is the same model at no less than
// one mailing per month, so a non-mailing business sees the full figure as
// opportunity and an active mailer sees the channel as saturated.
func DirectMail(uses bool, radiusMiles, mailingsPerMonth, avgTicket float64) (current, potential float64) {
	if uses {
		current = directMailRevenue(radiusMiles, mailingsPerMonth, avgTicket)
	}
	target := mailingsPerMonth
	if target < 1 {
		target = 1
	}
	potential = directMailRevenue(radiusMiles, target, avgTicket)
	return current, potential
}
