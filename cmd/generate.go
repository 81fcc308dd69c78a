package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bitesuae/bitesdata/internal/generator"
	"github.com/bitesuae/bitesdata/internal/injector"
	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/bitesuae/bitesdata/internal/output"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the raw dataset with injected data-quality defects",
	// Flags are bound here rather than in init so the binding belongs to
	// the command actually running; generate and clean share key names.
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("seed", cmd.Flags().Lookup("seed"))
		viper.BindPFlag("num_customers", cmd.Flags().Lookup("num-customers"))
		viper.BindPFlag("num_restaurants", cmd.Flags().Lookup("num-restaurants"))
		viper.BindPFlag("num_riders", cmd.Flags().Lookup("num-riders"))
		viper.BindPFlag("num_orders", cmd.Flags().Lookup("num-orders"))
		viper.BindPFlag("raw_workbook", cmd.Flags().Lookup("raw-workbook"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		rng := rand.New(rand.NewSource(int64(cfg.Seed)))

		gen := generator.New(cfg, rng)
		ds := gen.Generate()

		injector.Inject(ds, cfg.Defects, rng)

		if err := output.WriteWorkbook(cfg.RawWorkbook, ds, false); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing workbook: %v\n", err)
			os.Exit(1)
		}
		log.Printf("wrote raw workbook %s: %d customers, %d restaurants, %d riders, %d orders, %d items, %d events",
			cfg.RawWorkbook, len(ds.Customers), len(ds.Restaurants), len(ds.Riders),
			len(ds.Orders), len(ds.OrderItems), len(ds.DeliveryEvents))

		if exportRaw, _ := cmd.Flags().GetBool("export-raw"); exportRaw {
			if err := exportRawTables(cfg, ds); err != nil {
				fmt.Fprintf(os.Stderr, "Error exporting raw tables: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

// exportRawTables mirrors the cleaned exports for the raw tables, mostly
// useful for eyeballing the injected defects outside a spreadsheet.
func exportRawTables(cfg *models.Config, ds *models.Dataset) error {
	dir := filepath.Join(cfg.OutputPath, "raw")
	switch cfg.OutputFormat {
	case "csv":
		_, err := output.ExportCSV(dir, ds, false)
		return err
	case "parquet":
		_, err := output.ExportParquet(dir, ds)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
}

func init() {
	generateCmd.Flags().Int("seed", 42, "Random seed for generation")
	generateCmd.Flags().Int("num-customers", 10000, "Number of customers")
	generateCmd.Flags().Int("num-restaurants", 500, "Number of restaurants")
	generateCmd.Flags().Int("num-riders", 300, "Number of riders")
	generateCmd.Flags().Int("num-orders", 25000, "Number of orders")
	generateCmd.Flags().String("raw-workbook", "output/Dataset.xlsx", "Raw workbook path")
	generateCmd.Flags().Bool("export-raw", false, "Also export the raw tables as csv/parquet")
}
