// Package main provides the talentscout command line tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tbxark/talentscout/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "talentscout",
	Short: "Conversational candidate intake assistant",
	Long:  "TalentScout collects candidate details through a chat, asks technical questions about the declared stack, and stores finished candidates in a CSV file.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		conf, err := config.Load(configPath)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: conf.SlogLevel()})))
		appConfig = conf
		return nil
	},
	SilenceUsage: true,
}

var appConfig *config.Config

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Path to JSON config file (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
