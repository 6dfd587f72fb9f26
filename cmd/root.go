package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "inma-matcher"
)

type Config struct {
	BaseURL        string          `mapstructure:"base-url"`
	TokenFile      string          `mapstructure:"token-file"`
	UserAgent      string          `mapstructure:"user-agent"`
	TimeoutSeconds int             `mapstructure:"timeout-seconds"`
	Match          *MatchConfig    `mapstructure:"match"`
	Campaign       *CampaignConfig `mapstructure:"campaign"`
	Inbox          *InboxConfig    `mapstructure:"inbox"`
}

type MatchConfig struct {
	Limit int `mapstructure:"limit"`
}

type CampaignConfig struct {
	TagPrefix  string  `mapstructure:"tag-prefix"`
	StartIndex int     `mapstructure:"start-index"`
	Limit      int     `mapstructure:"limit"`
	MinScore   float64 `mapstructure:"min-score"`
	DelayMs    int     `mapstructure:"delay-ms"`
	MaxFail    int     `mapstructure:"max-fail"`
}

type InboxConfig struct {
	NewerThanDays int  `mapstructure:"newer-than-days"`
	MaxResults    int  `mapstructure:"max-results"`
	MarkRead      bool `mapstructure:"mark-read"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "inma-matcher is a cli for matching products to influencers and running outreach campaigns via the INMA backend",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("base-url", "INMA_BASE_URL"); err != nil {
		log.Fatalf("binding INMA_BASE_URL environment variable: %v", err)
	}

	if err := viper.BindEnv("token-file", "INMA_TOKEN_FILE"); err != nil {
		log.Fatalf("binding INMA_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is inma-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicitly requested config file is broken.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// Without a config file the cli can still run from flags and
	// environment variables.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
