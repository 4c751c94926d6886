package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "smartsupport",
	Short: "AI customer-support backend with tools and retrieval",
	Long: `SmartSupport runs an AI customer-support assistant for a water company.
The assistant answers in Hebrew, can schedule technicians, send
confirmation emails, check the weather, and ground its answers in a
semantic knowledge base built from your support documents.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".smartsupport.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
