package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bitesdata",
	Short: "Generates, cleans and analyses synthetic food delivery data",
	Long: `bitesdata is a CLI tool that produces a realistic, deliberately messy
food delivery dataset for a UAE marketplace, cleans it with an auditable
repair pipeline, and reports the operational KPIs a BI dashboard would show.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bitesdata.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(kpisCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
