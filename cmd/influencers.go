package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/inma-labs/inma-matcher/internal/inma"
	"github.com/inma-labs/inma-matcher/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var influencersCmd = &cobra.Command{
	Use:   "influencers",
	Short: "Browse the stored influencer records",
	Run: func(cmd *cobra.Command, _ []string) {
		runInfluencers(cmd)
	},
}

func init() {
	rootCmd.AddCommand(influencersCmd)

	influencersCmd.Flags().Int("page", inma.DefaultInfluencersPage, "page number to fetch")
	influencersCmd.Flags().Int("limit", inma.DefaultInfluencersLimit, "records per page")
	influencersCmd.Flags().Float64("min-score", 0, "only records with at least this score")
	influencersCmd.Flags().StringP("category", "c", "", "filter by category keyword")
	influencersCmd.Flags().StringP("search", "s", "", "search in titles, descriptions and emails")
}

func runInfluencers(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building backend client", zap.Error(err))
	}

	query := buildInfluencerQuery(cmd)

	page, err := client.GetInfluencers(query)
	if err != nil {
		zlog.Fatal("listing influencers", zap.Error(err))
	}

	zlog.Info("listing influencers", zap.Int("count", page.Len()), zap.Int("total", page.Total))

	if page.Len() == 0 {
		fmt.Println("no influencer records found")
		return
	}

	for _, rec := range page.Items {
		line := fmt.Sprintf("%s | score: %.2f | subscribers: %d | %s",
			rec.Title, rec.Score, rec.Stats.Subscribers, rec.Email)
		if len(rec.Keywords) > 0 {
			line += fmt.Sprintf(" | keywords: %s", strings.Join(rec.Keywords, ", "))
		}
		fmt.Println(line)
	}

	fmt.Printf("page %d (%d of %d records)\n", page.Page, page.Len(), page.Total)
}

func buildInfluencerQuery(cmd *cobra.Command) *inma.InfluencerQuery {
	query := &inma.InfluencerQuery{}

	query.Page, _ = cmd.Flags().GetInt("page")
	query.Limit, _ = cmd.Flags().GetInt("limit")
	query.MinScore, _ = cmd.Flags().GetFloat64("min-score")
	query.Category, _ = cmd.Flags().GetString("category")
	query.Search, _ = cmd.Flags().GetString("search")

	return query
}
