package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/inma-labs/inma-matcher/internal/inma"
	"github.com/inma-labs/inma-matcher/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultTagPrefix       = "INMA"
	defaultCampaignStart   = 1
	defaultCampaignLimit   = 200
	defaultCampaignDelayMs = 250
	defaultCampaignMaxFail = 20
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Outreach campaign operations",
}

var campaignSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a bulk outreach email to the top-scored influencers",
	Run: func(cmd *cobra.Command, _ []string) {
		runCampaignSend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignSendCmd)

	campaignSendCmd.Flags().StringP("subject", "s", "", "email subject (required)")
	campaignSendCmd.Flags().StringP("body", "b", "", "email body text")
	campaignSendCmd.Flags().String("body-file", "", "file with the email body, takes precedence over --body")
	campaignSendCmd.Flags().Int("limit", 0, "maximum number of targets")
	campaignSendCmd.Flags().Float64("min-score", 0, "minimum influencer score to target")
	campaignSendCmd.Flags().Bool("execute", false, "actually send emails instead of the default dry run")
}

func runCampaignSend(cmd *cobra.Command) {
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

	req, err := buildCampaignRequest(cmd, config)
	if err != nil {
		logger.Fatal("building campaign request", zap.Error(err))
	}

	if req.DryRun {
		logger.Info("dry run: the backend only reports targets, nothing is sent",
			zap.String("hint", "pass --execute to send for real"),
		)
	}

	report, err := client.SendCampaign(req)
	if err != nil {
		logger.Fatal("sending campaign", zap.Error(err))
	}

	logger.Info("campaign settled",
		zap.Int("total_targets", report.TotalTargets),
		zap.Int("attempted", report.Attempted),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
	)

	for _, item := range report.Items {
		line := fmt.Sprintf("%-10s %s %s", item.Status, item.Tag, item.Email)
		if item.Error != "" {
			line += fmt.Sprintf(" | error: %s", item.Error)
		}
		fmt.Println(line)
	}
}

func buildCampaignRequest(cmd *cobra.Command, config *Config) (*inma.CampaignRequest, error) {
	subject, _ := cmd.Flags().GetString("subject")
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	body, _ := cmd.Flags().GetString("body")
	if bodyFile, _ := cmd.Flags().GetString("body-file"); bodyFile != "" {
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}
		body = string(data)
	}
	if body == "" {
		return nil, fmt.Errorf("body is required (use --body or --body-file)")
	}

	execute, _ := cmd.Flags().GetBool("execute")

	req := &inma.CampaignRequest{
		Subject:         subject,
		Body:            body,
		TagPrefix:       defaultTagPrefix,
		StartIndex:      defaultCampaignStart,
		Limit:           defaultCampaignLimit,
		SortByScoreDesc: true,
		DryRun:          !execute,
		DelayMs:         defaultCampaignDelayMs,
		MaxFail:         defaultCampaignMaxFail,
	}

	if config.Campaign != nil {
		if config.Campaign.TagPrefix != "" {
			req.TagPrefix = config.Campaign.TagPrefix
		}
		if config.Campaign.StartIndex > 0 {
			req.StartIndex = config.Campaign.StartIndex
		}
		if config.Campaign.Limit > 0 {
			req.Limit = config.Campaign.Limit
		}
		if config.Campaign.DelayMs > 0 {
			req.DelayMs = config.Campaign.DelayMs
		}
		if config.Campaign.MaxFail > 0 {
			req.MaxFail = config.Campaign.MaxFail
		}
		if config.Campaign.MinScore > 0 {
			minScore := config.Campaign.MinScore
			req.MinScore = &minScore
		}
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		req.Limit = limit
	}

	if minScore, _ := cmd.Flags().GetFloat64("min-score"); minScore > 0 {
		req.MinScore = &minScore
	}

	return req, nil
}
