package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"GoldPulse/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		Symbol         string        `yaml:"symbol"`
		BaseURL        string        `yaml:"base_url"`
		LookbackDays   []int         `yaml:"lookback_days"`
		MaxAttempts    int           `yaml:"max_attempts"`
		BackoffStep    time.Duration `yaml:"backoff_step"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		RequestsPerSec int           `yaml:"requests_per_sec"`
	} `yaml:"market"`
	Artifacts struct {
		ModelPath   string `yaml:"model_path"`
		ScalerXPath string `yaml:"scaler_x_path"`
		ScalerYPath string `yaml:"scaler_y_path"`
		Cache       bool   `yaml:"cache"`
	} `yaml:"artifacts"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.Market.Symbol = v
	}
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		c.Artifacts.ModelPath = v
	}
	if v := os.Getenv("SCALER_X_PATH"); v != "" {
		c.Artifacts.ScalerXPath = v
	}
	if v := os.Getenv("SCALER_Y_PATH"); v != "" {
		c.Artifacts.ScalerYPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 7860
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 60 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Market.Symbol == "" {
		c.Market.Symbol = "GC=F"
	}
	if len(c.Market.LookbackDays) == 0 {
		c.Market.LookbackDays = []int{90, 60, 30}
	}
	if c.Market.MaxAttempts == 0 {
		c.Market.MaxAttempts = 3
	}
	if c.Market.BackoffStep == 0 {
		c.Market.BackoffStep = 2 * time.Second
	}
	if c.Market.RequestTimeout == 0 {
		c.Market.RequestTimeout = 30 * time.Second
	}
	if c.Market.RequestsPerSec == 0 {
		c.Market.RequestsPerSec = 5
	}
	if c.Artifacts.ModelPath == "" {
		c.Artifacts.ModelPath = "artifacts/gold_model.json"
	}
	if c.Artifacts.ScalerXPath == "" {
		c.Artifacts.ScalerXPath = "artifacts/gold_scaler_x.json"
	}
	if c.Artifacts.ScalerYPath == "" {
		c.Artifacts.ScalerYPath = "artifacts/gold_scaler_y.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Market.Symbol) == "" {
		return fmt.Errorf("market.symbol is required")
	}
	for _, d := range c.Market.LookbackDays {
		if d <= 0 {
			return fmt.Errorf("market.lookback_days must be positive, got %d", d)
		}
	}
	if c.Market.MaxAttempts <= 0 {
		return fmt.Errorf("market.max_attempts must be positive, got %d", c.Market.MaxAttempts)
	}
	return nil
}
