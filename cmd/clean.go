package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bitesuae/bitesdata/internal/cleaner"
	"github.com/bitesuae/bitesdata/internal/cloudwriter"
	"github.com/bitesuae/bitesdata/internal/models"
	"github.com/bitesuae/bitesdata/internal/output"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw workbook and export the analysis-ready dataset",
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("raw_workbook", cmd.Flags().Lookup("raw-workbook"))
		viper.BindPFlag("cleaned_workbook", cmd.Flags().Lookup("cleaned-workbook"))
		viper.BindPFlag("output_path", cmd.Flags().Lookup("output-path"))
		viper.BindPFlag("output_format", cmd.Flags().Lookup("output-format"))
		viper.BindPFlag("output_destination", cmd.Flags().Lookup("output-destination"))
		viper.BindPFlag("kafka_enabled", cmd.Flags().Lookup("kafka-enabled"))
		viper.BindPFlag("kafka_broker_list", cmd.Flags().Lookup("kafka-broker-list"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		ds, err := output.ReadWorkbook(cfg.RawWorkbook)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading workbook: %v\n", err)
			os.Exit(1)
		}

		cleaner.Assess(ds).Log()

		rng := rand.New(rand.NewSource(int64(cfg.Seed)))
		cleaned, report := cleaner.New(rng, cfg.Today()).Clean(ds)
		report.Log()

		if err := runExports(cfg, cleaned); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
	},
}

func runExports(cfg *models.Config, cleaned *models.Dataset) error {
	if err := output.WriteWorkbook(cfg.CleanedWorkbook, cleaned, true); err != nil {
		return err
	}
	log.Printf("wrote cleaned workbook %s", cfg.CleanedWorkbook)

	exported := []string{cfg.CleanedWorkbook}
	switch cfg.OutputFormat {
	case "csv":
		paths, err := output.ExportCSV(cfg.OutputPath, cleaned, true)
		if err != nil {
			return err
		}
		exported = append(exported, paths...)
	case "parquet":
		paths, err := output.ExportParquet(cfg.OutputPath, cleaned)
		if err != nil {
			return err
		}
		exported = append(exported, paths...)
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}

	if cfg.OutputDestination == "s3" {
		uploader, err := cloudwriter.NewS3Uploader(cfg.CloudStorage.Region, cfg.CloudStorage.BucketName)
		if err != nil {
			return err
		}
		ctx := context.Background()
		for _, p := range exported {
			if err := uploader.Upload(ctx, path.Join("bitesdata", filepath.Base(p)), p); err != nil {
				return err
			}
		}
	}

	if cfg.KafkaEnabled {
		publisher, err := output.NewPublisher(cfg.KafkaBrokerList, cfg.KafkaTopicPrefix)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.Publish(cleaned); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	cleanCmd.Flags().String("raw-workbook", "output/Dataset.xlsx", "Raw workbook path")
	cleanCmd.Flags().String("cleaned-workbook", "output/Dataset_Cleaned.xlsx", "Cleaned workbook path")
	cleanCmd.Flags().String("output-path", "output", "Directory for csv/parquet exports")
	cleanCmd.Flags().String("output-format", "csv", "Export format (csv or parquet)")
	cleanCmd.Flags().String("output-destination", "local", "Export destination (local or s3)")
	cleanCmd.Flags().Bool("kafka-enabled", false, "Publish cleaned rows to Kafka")
	cleanCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
}
