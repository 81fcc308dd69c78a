package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefectConfig quantifies the injected data-quality issues. Counts are
// clamped to table size at injection time; rates are fractions of rows.
type DefectConfig struct {
	MissingOrderDiscounts int `mapstructure:"missing_order_discounts"`
	MissingDelayReasons   int `mapstructure:"missing_delay_reasons"`
	MissingRiderZones     int `mapstructure:"missing_rider_zones"`

	DuplicateOrders    int `mapstructure:"duplicate_orders"`
	DuplicateEvents    int `mapstructure:"duplicate_events"`
	DuplicateCustomers int `mapstructure:"duplicate_customers"`

	CityVariantRate    float64 `mapstructure:"city_variant_rate"`
	CuisineVariantRate float64 `mapstructure:"cuisine_variant_rate"`
	StatusVariantRate  float64 `mapstructure:"status_variant_rate"`

	GrossOutliers    int `mapstructure:"gross_outliers"`
	DurationOutliers int `mapstructure:"duration_outliers"`
	PrepOutliers     int `mapstructure:"prep_outliers"`

	ImpossibleTimestamps int `mapstructure:"impossible_timestamps"`
	NegativeDurations    int `mapstructure:"negative_durations"`
	ExcessiveDiscounts   int `mapstructure:"excessive_discounts"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	Seed int `mapstructure:"seed"`

	NumCustomers   int `mapstructure:"num_customers"`
	NumRestaurants int `mapstructure:"num_restaurants"`
	NumRiders      int `mapstructure:"num_riders"`
	NumOrders      int `mapstructure:"num_orders"`

	// ReferenceDate anchors all relative windows; zero means "now".
	ReferenceDate       time.Time `mapstructure:"reference_date"`
	OrderWindowDays     int       `mapstructure:"order_window_days"`
	SignupWindowDays    int       `mapstructure:"signup_window_days"`
	RiderJoinWindowDays int       `mapstructure:"rider_join_window_days"`

	Defects DefectConfig `mapstructure:"defects"`

	RawWorkbook     string `mapstructure:"raw_workbook"`
	CleanedWorkbook string `mapstructure:"cleaned_workbook"`
	OutputPath      string `mapstructure:"output_path"`
	OutputFormat    string `mapstructure:"output_format"` // csv or parquet

	OutputDestination string             `mapstructure:"output_destination"` // local or s3
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	KafkaTopicPrefix string `mapstructure:"kafka_topic_prefix"`
}

// Today returns the reference date truncated to midnight.
func (cfg *Config) Today() time.Time {
	ref := cfg.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
}

func setDefaults() {
	viper.SetDefault("seed", 42)
	viper.SetDefault("num_customers", 10000)
	viper.SetDefault("num_restaurants", 500)
	viper.SetDefault("num_riders", 300)
	viper.SetDefault("num_orders", 25000)
	viper.SetDefault("order_window_days", 90)
	viper.SetDefault("signup_window_days", 540)
	viper.SetDefault("rider_join_window_days", 730)

	viper.SetDefault("defects.missing_order_discounts", 100)
	viper.SetDefault("defects.missing_delay_reasons", 50)
	viper.SetDefault("defects.missing_rider_zones", 15)
	viper.SetDefault("defects.duplicate_orders", 100)
	viper.SetDefault("defects.duplicate_events", 80)
	viper.SetDefault("defects.duplicate_customers", 50)
	viper.SetDefault("defects.city_variant_rate", 0.10)
	viper.SetDefault("defects.cuisine_variant_rate", 0.12)
	viper.SetDefault("defects.status_variant_rate", 0.08)
	viper.SetDefault("defects.gross_outliers", 50)
	viper.SetDefault("defects.duration_outliers", 40)
	viper.SetDefault("defects.prep_outliers", 20)
	viper.SetDefault("defects.impossible_timestamps", 20)
	viper.SetDefault("defects.negative_durations", 15)
	viper.SetDefault("defects.excessive_discounts", 10)

	viper.SetDefault("raw_workbook", "output/Dataset.xlsx")
	viper.SetDefault("cleaned_workbook", "output/Dataset_Cleaned.xlsx")
	viper.SetDefault("output_path", "output")
	viper.SetDefault("output_format", "csv")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("kafka_enabled", false)
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic_prefix", "bitesdata")
}

// LoadConfig initialises and reads the configuration using Viper. A missing
// config file is fine when none was named explicitly; defaults carry the run.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("bitesdata")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
