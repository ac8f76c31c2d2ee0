package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"MacroPull/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	FRED struct {
		APIKey            string        `yaml:"api_key"`
		BaseURL           string        `yaml:"base_url"`
		ObservationWindow int           `yaml:"observation_window"` // points fetched per series
		LookbackDays      int           `yaml:"lookback_days"`
		Timeout           time.Duration `yaml:"timeout"`
		RateLimit         struct {
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
	} `yaml:"fred"`
	Analysis struct {
		Schedule  time.Duration `yaml:"schedule"` // 0 disables the periodic run
		RunOnBoot bool          `yaml:"run_on_boot"`
		RulesPath string        `yaml:"rules_path"` // optional override for built-in tables
	} `yaml:"analysis"`
	Report struct {
		OutputDir  string `yaml:"output_dir"`
		Console    bool   `yaml:"console"`
		FilePrefix string `yaml:"file_prefix"`
	} `yaml:"report"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		ReportTopic  string   `yaml:"report_topic"`
		RequestTopic string   `yaml:"request_topic"`
		LogTopic     string   `yaml:"log_topic"` // aggregated error logs, empty disables
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled   bool          `yaml:"enabled"`
		Host      string        `yaml:"host"`
		Port      int           `yaml:"port"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		BundleTTL time.Duration `yaml:"bundle_ttl"`
		SeriesTTL time.Duration `yaml:"series_ttl"` // observation reuse window, 0 disables
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

// LoadWithEnv loads config from YAML, overrides with environment variables,
// and validates the result. Secrets like the FRED key usually arrive this way.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.FRED.APIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		c.FRED.BaseURL = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REPORT_OUTPUT_DIR"); v != "" {
		c.Report.OutputDir = v
	}
	c.Server.Port = util.ParseIntDefault(os.Getenv("SERVER_PORT"), c.Server.Port)
	c.FRED.LookbackDays = util.ParseIntDefault(os.Getenv("FRED_LOOKBACK_DAYS"), c.FRED.LookbackDays)
	c.FRED.RateLimit.RefillPerSec = util.ParseFloatDefault(os.Getenv("FRED_RATE_PER_SEC"), c.FRED.RateLimit.RefillPerSec)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.FRED.BaseURL == "" {
		c.FRED.BaseURL = "https://api.stlouisfed.org/fred"
	}
	if c.FRED.ObservationWindow <= 0 {
		c.FRED.ObservationWindow = 12
	}
	if c.FRED.LookbackDays <= 0 {
		c.FRED.LookbackDays = 365
	}
	if c.FRED.Timeout <= 0 {
		c.FRED.Timeout = 15 * time.Second
	}
	if c.FRED.RateLimit.Capacity <= 0 {
		c.FRED.RateLimit.Capacity = 5
	}
	if c.FRED.RateLimit.RefillPerSec <= 0 {
		c.FRED.RateLimit.RefillPerSec = 2
	}
	if c.Report.FilePrefix == "" {
		c.Report.FilePrefix = "economic_report"
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}
	if c.Redis.BundleTTL <= 0 {
		c.Redis.BundleTTL = time.Hour
	}
	if c.Redis.SeriesTTL <= 0 {
		c.Redis.SeriesTTL = 30 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.FRED.APIKey == "" {
		return fmt.Errorf("fred.api_key is required")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.ReportTopic == "" {
		return fmt.Errorf("kafka.report_topic is required when brokers are set")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis.host is required when redis is enabled")
	}
	return nil
}
