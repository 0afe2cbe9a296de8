// Package report renders aggregation results for humans.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/opportunity-cli/internal/model"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats a monthly dollar amount with thousands separators.
func Currency(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}

var channelLabels = map[model.Channel]string{
	model.ChannelSEO:        "Search visibility",
	model.ChannelSocial:     "Social media",
	model.ChannelSMS:        "SMS campaigns",
	model.ChannelEmail:      "Email campaigns",
	model.ChannelLoyalty:    "Loyalty program",
	model.ChannelDirectMail: "Direct mail",
	model.ChannelThirdParty: "Third-party delivery",
}

// Label returns the display name for a channel.
func Label(ch model.Channel) string {
	if l, ok := channelLabels[ch]; ok {
		return l
	}
	return string(ch)
}

// Render writes a per-channel breakdown and the total opportunity figure.
// Channels whose gap is not positive appear in the breakdown but not in the
// opportunity section. Enabled levers are listed as what-if annotations; they
// do not change the figures.
func Render(restaurant model.Restaurant, res *model.AggregateResult, levers model.LeverState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Revenue opportunity analysis: %s\n", restaurant.Name)
	if restaurant.Address != "" {
		fmt.Fprintf(&b, "%s\n", restaurant.Address)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-22s %14s %14s %14s  %s\n", "Channel", "Current/mo", "Potential/mo", "Gap/mo", "Confidence")
	for _, ch := range model.Channels {
		sr, ok := res.Services[ch]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-22s %14s %14s %14s  %s\n",
			Label(ch),
			Currency(sr.Current),
			Currency(sr.Potential),
			Currency(sr.Additional),
			sr.Confidence,
		)
	}

	opps := res.Opportunities()
	b.WriteString("\n")
	if len(opps) == 0 {
		b.WriteString("No positive revenue gaps found.\n")
	} else {
		b.WriteString("Top opportunities:\n")
		sorted := make([]model.ServiceRevenue, len(opps))
		copy(sorted, opps)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Additional > sorted[j].Additional })
		for i, sr := range sorted {
			fmt.Fprintf(&b, "  %d. %s: %s additional per month\n", i+1, Label(sr.Channel), Currency(sr.Additional))
		}
	}

	fmt.Fprintf(&b, "\nTotal additional revenue: %s per month\n", Currency(res.TotalAdditional))

	if enabled := enabledLevers(levers); len(enabled) > 0 {
		fmt.Fprintf(&b, "\nWhat-if levers enabled (presentation only): %s\n", strings.Join(enabled, ", "))
	}

	return b.String()
}

func enabledLevers(levers model.LeverState) []string {
	var out []string
	for name, on := range levers {
		if on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
