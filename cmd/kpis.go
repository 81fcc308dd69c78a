package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitesuae/bitesdata/internal/analytics"
	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/bitesuae/bitesdata/internal/output"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Compute dashboard KPIs over the cleaned workbook",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		workbook, _ := cmd.Flags().GetString("workbook")
		if workbook == "" {
			workbook = cfg.CleanedWorkbook
		}

		filter, err := filterFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing filter: %v\n", err)
			os.Exit(1)
		}

		ds, err := output.ReadWorkbook(workbook)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading workbook: %v\n", err)
			os.Exit(1)
		}

		views := filter.Apply(analytics.BuildOrderViews(ds))
		printSummary(analytics.Compute(views))
	},
}

func filterFromFlags(cmd *cobra.Command) (analytics.Filter, error) {
	var f analytics.Filter
	var err error

	if s, _ := cmd.Flags().GetString("start-date"); s != "" {
		if f.StartDate, err = time.Parse("2006-01-02", s); err != nil {
			return f, fmt.Errorf("invalid start-date %q: %w", s, err)
		}
	}
	if s, _ := cmd.Flags().GetString("end-date"); s != "" {
		if f.EndDate, err = time.Parse("2006-01-02", s); err != nil {
			return f, fmt.Errorf("invalid end-date %q: %w", s, err)
		}
		// Inclusive day filter.
		f.EndDate = f.EndDate.Add(24*time.Hour - time.Second)
	}

	f.Cities, _ = cmd.Flags().GetStringSlice("city")
	f.Zones, _ = cmd.Flags().GetStringSlice("zone")
	f.Cuisines, _ = cmd.Flags().GetStringSlice("cuisine")
	f.Tiers, _ = cmd.Flags().GetStringSlice("tier")
	f.TimeOfDay, _ = cmd.Flags().GetString("time-of-day")
	return f, nil
}

func printSummary(s analytics.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total orders\t%d\n", s.TotalOrders)
	fmt.Fprintf(w, "Delivered orders\t%d\n", s.DeliveredOrders)
	fmt.Fprintf(w, "Cancelled orders\t%d\n", s.CancelledOrders)
	fmt.Fprintf(w, "GMV (AED)\t%.2f\n", s.GMV)
	fmt.Fprintf(w, "Net revenue (AED)\t%.2f\n", s.NetRevenue)
	fmt.Fprintf(w, "Average order value (AED)\t%.2f\n", s.AvgOrderValue)
	fmt.Fprintf(w, "Discount burn rate\t%.1f%%\n", s.DiscountBurnRate)
	fmt.Fprintf(w, "Repeat customer rate\t%.1f%%\n", s.RepeatCustomerRate)
	fmt.Fprintf(w, "Orders per customer\t%.2f\n", s.OrderFrequency)
	fmt.Fprintf(w, "On-time delivery rate\t%.1f%%\n", s.OnTimeRate)
	fmt.Fprintf(w, "Avg delivery time (mins)\t%.1f\n", s.AvgDeliveryTimeMins)
	fmt.Fprintf(w, "Avg prep time (mins)\t%.1f\n", s.AvgPrepTimeMins)
	fmt.Fprintf(w, "Avg rider time (mins)\t%.1f\n", s.AvgRiderTimeMins)
	fmt.Fprintf(w, "Cancellation rate\t%.1f%%\n", s.CancellationRate)
	fmt.Fprintf(w, "Peak hour delay rate\t%.1f%%\n", s.PeakHourDelayRate)
	w.Flush()
}

func init() {
	kpisCmd.Flags().String("workbook", "", "Cleaned workbook path (defaults to the configured one)")
	kpisCmd.Flags().String("start-date", "", "Earliest order date (YYYY-MM-DD)")
	kpisCmd.Flags().String("end-date", "", "Latest order date, inclusive (YYYY-MM-DD)")
	kpisCmd.Flags().StringSlice("city", nil, "Restrict to these cities")
	kpisCmd.Flags().StringSlice("zone", nil, "Restrict to these zones")
	kpisCmd.Flags().StringSlice("cuisine", nil, "Restrict to these cuisines")
	kpisCmd.Flags().StringSlice("tier", nil, "Restrict to these restaurant tiers")
	kpisCmd.Flags().String("time-of-day", "", `Time-of-day bucket ("Lunch (12-2 PM)", "Peak (7-10 PM)", "Off-Peak")`)
}
