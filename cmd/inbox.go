package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/inma-labs/inma-matcher/internal/inma"
	"github.com/inma-labs/inma-matcher/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultNewerThanDays = 14
	defaultMaxResults    = 10
	bodyPreviewLimit     = 200
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List reply messages from the outreach inbox",
	Run: func(cmd *cobra.Command, _ []string) {
		runInbox(cmd)
	},
}

func init() {
	rootCmd.AddCommand(inboxCmd)

	inboxCmd.Flags().StringP("tag", "t", "", `campaign tag to filter by (for example "[INMA-001]")`)
	inboxCmd.Flags().Int("max-results", 0, "maximum number of messages to fetch")
	inboxCmd.Flags().Bool("keep-unread", false, "do not mark fetched messages as read")
}

func runInbox(cmd *cobra.Command) {
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

	req := buildPollRequest(cmd, config)

	messages, err := client.Poll(req)
	if err != nil {
		zlog.Fatal("polling inbox", zap.Error(err))
	}

	zlog.Info("polling inbox", zap.Int("count", messages.Len()))

	if messages.Len() == 0 {
		fmt.Println("inbox is empty")
		return
	}

	for _, msg := range messages.Items {
		fmt.Printf("%s | %s | %s\n", msg.FromEmail, msg.Subject, logger.Truncate(msg.Body, bodyPreviewLimit))
	}
}

func buildPollRequest(cmd *cobra.Command, config *Config) *inma.PollRequest {
	req := &inma.PollRequest{
		NewerThanDays: defaultNewerThanDays,
		MaxResults:    defaultMaxResults,
		MarkRead:      true,
	}

	if config.Inbox != nil {
		if config.Inbox.NewerThanDays > 0 {
			req.NewerThanDays = config.Inbox.NewerThanDays
		}
		if config.Inbox.MaxResults > 0 {
			req.MaxResults = config.Inbox.MaxResults
		}
		req.MarkRead = config.Inbox.MarkRead
	}

	if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
		req.Tag = tag
	}

	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		req.MaxResults = maxResults
	}

	if keepUnread, _ := cmd.Flags().GetBool("keep-unread"); keepUnread {
		req.MarkRead = false
	}

	return req
}
