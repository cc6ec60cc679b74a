package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "bid-dashboard",
		Short:   "Живая лента торгов с аналитикой и AI-сводками",
		Version: Version,
	}
	rootCmd.PersistentFlags().StringP("config", "c", os.Getenv("APP_CONFIG"), "Path to YAML config")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to .env file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
