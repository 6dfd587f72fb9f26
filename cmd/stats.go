package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/inma-labs/inma-matcher/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard totals and top audience segments",
	Run: func(_ *cobra.Command, _ []string) {
		runStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(ctx, config, logger)
	if err != nil {
		logger.Fatal("building backend client", zap.Error(err))
	}

	stats, err := client.GetStats()
	if err != nil {
		logger.Fatal("getting stats", zap.Error(err))
	}

	fmt.Printf("influencers: %d\n", stats.TotalInfluencers)
	fmt.Printf("products: %d\n", stats.TotalProducts)
	fmt.Printf("active campaigns: %d\n", stats.ActiveCampaigns)
	fmt.Printf("emails sent: %d\n", stats.EmailsSent)

	if len(stats.Segments) > 0 {
		fmt.Println("top segments:")
		for _, segment := range stats.Segments {
			fmt.Printf("  %s: %d\n", segment.Name, segment.Value)
		}
	}
}
