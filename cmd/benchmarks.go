package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/opportunity-cli/internal/benchmark"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Print the benchmark rates the estimators use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatBenchmarks(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}

func formatBenchmarks(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "CTR curves (percent by position)")
	_, _ = fmt.Fprintln(w, "POS\tLOCAL PACK\tORGANIC")
	for _, pos := range benchmark.CurvePositions(benchmark.Organic) {
		lp := "-"
		if pos <= 3 {
			lp = fmt.Sprintf("%.1f", benchmark.CTR(benchmark.LocalPack, pos))
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.1f\n", pos, lp, benchmark.CTR(benchmark.Organic, pos))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Funnel rates")
	_, _ = fmt.Fprintf(w, "SEO conversion:\t%.1f%%\n", benchmark.SEOConversionRate*100)
	_, _ = fmt.Fprintf(w, "SMS open/click/convert:\t%.1f%% / %.2f%% / %.1f%%\n",
		benchmark.SMSOpenRate*100, benchmark.SMSClickRate*100, benchmark.SMSConversionRate*100)
	_, _ = fmt.Fprintf(w, "Email open/click/convert:\t%.1f%% / %.1f%% / %.1f%%\n",
		benchmark.EmailOpenRate*100, benchmark.EmailClickRate*100, benchmark.EmailConversionRate*100)
	_, _ = fmt.Fprintf(w, "Instagram follower conversion:\t%.1f%%\n", benchmark.InstagramConversionRate*100)
	_, _ = fmt.Fprintf(w, "Facebook follower conversion:\t%.1f%%\n", benchmark.FacebookConversionRate*100)
	_, _ = fmt.Fprintf(w, "Loyalty spend uplift:\t%.0f%%\n", benchmark.LoyaltySpendUplift*100)
	_, _ = fmt.Fprintf(w, "Direct mail response rate:\t%.2f%%\n", benchmark.DirectMailResponseRate*100)
	_, _ = fmt.Fprintf(w, "Third-party commission:\t%.1f%%\n", benchmark.ThirdPartyCommission*100)

	_ = w.Flush()
}
