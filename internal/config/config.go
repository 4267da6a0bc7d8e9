package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	defaultRegion        = "us-east-2"
	defaultModelID       = "anthropic.claude-3-sonnet-20240229-v1:0"
	defaultMaxLogEntries = 1000
)

// Config is the immutable process configuration. It is built once in main
// and passed into every component; nothing reads the environment after
// startup.
type Config struct {
	// Region is the AWS region every client targets.
	Region string
	// ModelID is the Bedrock model used for all questions.
	ModelID string
	// MaxLogEntries is the total record budget for one retrieval run.
	MaxLogEntries int
	// ParamPrefix, when set, names an SSM parameter prefix consulted for
	// optional model-id and persona overrides.
	ParamPrefix string
}

// Load resolves configuration from the environment with defaults applied.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("aws_region", defaultRegion)
	v.SetDefault("bedrock_model_id", defaultModelID)
	v.SetDefault("max_log_entries", defaultMaxLogEntries)
	v.SetDefault("param_prefix", "")

	for _, key := range []string{"aws_region", "bedrock_model_id", "max_log_entries", "param_prefix"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	cfg := Config{
		Region:        v.GetString("aws_region"),
		ModelID:       v.GetString("bedrock_model_id"),
		MaxLogEntries: v.GetInt("max_log_entries"),
		ParamPrefix:   v.GetString("param_prefix"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Region == "" {
		return fmt.Errorf("config: region must not be empty")
	}
	if c.ModelID == "" {
		return fmt.Errorf("config: model id must not be empty")
	}
	if c.MaxLogEntries <= 0 {
		return fmt.Errorf("config: max log entries must be positive, got %d", c.MaxLogEntries)
	}
	return nil
}
