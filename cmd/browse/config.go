package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type browseConfig struct {
	BaseURL      string
	ClientID     string
	HeaderOffset float64
	SettleDelay  time.Duration
	Timeout      time.Duration
	LogFile      string
}

// loadConfig reads .techforge.yaml from the working directory (or
// TECHFORGE_CONFIG_PATH) and TECHFORGE_* environment variables. Flags bound
// to viper take precedence.
func loadConfig() (browseConfig, error) {
	viper.SetDefault("base-url", "http://localhost:8080")
	viper.SetDefault("client-id", uuid.NewString())
	viper.SetDefault("header-offset", 2)
	viper.SetDefault("settle-delay", 300*time.Millisecond)
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("log-file", "techforge-browse.log")

	viper.SetConfigName(".techforge")
	viper.SetEnvPrefix("TECHFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("TECHFORGE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[CONFIG] error reading config file: %v", err)
			return browseConfig{}, err
		}
	}

	return browseConfig{
		BaseURL:      viper.GetString("base-url"),
		ClientID:     viper.GetString("client-id"),
		HeaderOffset: viper.GetFloat64("header-offset"),
		SettleDelay:  viper.GetDuration("settle-delay"),
		Timeout:      viper.GetDuration("timeout"),
		LogFile:      viper.GetString("log-file"),
	}, nil
}
