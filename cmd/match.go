package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/inma-labs/inma-matcher/internal/inma"
	"github.com/inma-labs/inma-matcher/internal/logger"
	"github.com/inma-labs/inma-matcher/internal/matching"
	"github.com/inma-labs/inma-matcher/internal/render"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptRequestMatches = "Request matches"
	PromptChangeProduct  = "Change product"
	PromptDumpResults    = "Dump results to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptRequestMatches, PromptChangeProduct, PromptDumpResults, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Pick a product and request ranked influencer matches",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("product", "p", "", "product id to select without prompting")
	matchCmd.Flags().IntP("limit", "l", 0, "maximum number of matches to request")
	matchCmd.Flags().BoolP("yes", "y", false, "request matches immediately and exit, without the action prompt")
}

// runMatch is the main matching workflow: load products, pick one, request
// matches, render them.
func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the inma-matcher", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	client, err := newClient(ctx, config, logger)
	if err != nil {
		logger.Fatal("building backend client", zap.Error(err))
	}

	products, err := client.GetProducts()
	if err != nil {
		logger.Fatal("getting products", zap.Error(err))
	}

	logger.Info("getting products", zap.Int("count", products.Len()))

	if products.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no products available"))
		return
	}

	picker := matching.NewPicker(products)
	requestor := matching.NewRequestor(client, logger)
	limit := matchLimit(cmd, config)

	productID, _ := cmd.Flags().GetString("product")
	if productID != "" {
		if _, err := picker.Select(productID); err != nil {
			logger.Fatal("selecting product",
				zap.Error(err),
				zap.String("product_id", productID),
				zap.Any("available products", products.Titles()),
			)
		}
	} else if err := selectProduct(picker, products); err != nil {
		logger.Fatal("selecting product", zap.Error(err))
	}

	logger.Info("product selected",
		zap.String("product_id", picker.Current().ID),
		zap.String("title", picker.Current().Title),
	)

	if cmd.Flag("yes").Value.String() == "true" {
		if err := requestAndRender(requestor, picker, limit, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, picker, requestor, products, limit, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleMatchAction(action string, picker *matching.Picker, requestor *matching.Requestor, products *inma.Products, limit int, logger *zap.Logger) error {
	switch action {
	case PromptRequestMatches:
		return requestAndRender(requestor, picker, limit, logger)
	case PromptChangeProduct:
		// Previously displayed results are kept until the next request
		// settles, even when they belong to another product.
		return selectProduct(picker, products)
	case PromptDumpResults:
		results := requestor.Results()
		if results == nil {
			fmt.Println(render.MsgNotRequested)
			return nil
		}

		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func requestAndRender(requestor *matching.Requestor, picker *matching.Picker, limit int, logger *zap.Logger) error {
	if !picker.HasSelection() {
		return matching.ErrNoSelection
	}
	product := picker.Current()

	results, err := requestor.Request(product.ID, limit)
	if err != nil {
		if errors.Is(err, matching.ErrRequestInFlight) {
			// A pending request already covers this trigger. Refusing it
			// must not tear the workflow down.
			logger.Warn("match request already in flight",
				zap.String("product_id", product.ID),
			)
			fmt.Println("a match request is already in flight")
			return nil
		}

		// All failure kinds settle into the same failed state. The
		// trigger stays usable for a manual retry.
		logger.Warn("match request failed",
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		fmt.Println(render.Failure(err))
		return nil
	}

	logger.Info("got matches",
		zap.String("product_id", product.ID),
		zap.Int("count", results.Len()),
	)
	fmt.Println(render.Results(results))
	return nil
}

func selectProduct(picker *matching.Picker, products *inma.Products) error {
	items := make([]string, 0, products.Len())
	for _, product := range products.Items {
		label := fmt.Sprintf("%s %s / %s / %s",
			product.ID, product.Title, product.Brand, product.Price,
		)
		items = append(items, label)
	}

	productPrompt := promptui.Select{
		Label: "Choose a product and press ENTER",
		Items: items,
	}

	_, selected, err := productPrompt.Run()
	if err != nil {
		return err
	}

	productID := strings.Split(selected, " ")[0]

	if _, err := picker.Select(productID); err != nil {
		return fmt.Errorf("there is no such product id %s", productID)
	}

	return nil
}

func matchLimit(cmd *cobra.Command, config *Config) int {
	if limit, err := cmd.Flags().GetInt("limit"); err == nil && limit > 0 {
		return limit
	}

	if config.Match != nil && config.Match.Limit > 0 {
		return config.Match.Limit
	}

	return inma.DefaultMatchLimit
}
