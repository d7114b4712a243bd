package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onsenswap/onsenswap/app/telemetry"
)

// Config keys shared by the node and the CLI
const (
	FlagHome          = "home"
	FlagDBBackend     = "db-backend"
	FlagLogLevel      = "log-level"
	FlagLogJSON       = "log-json"
	FlagAPIEnable     = "api.enable"
	FlagAPIAddress    = "api.address"
	FlagAPIRateLimit  = "api.rate-limit"
	FlagAPIAuthSecret = "api.auth-secret"
	FlagMetricsEnable = "metrics.enable"
	FlagMetricsAddr   = "metrics.address"
	FlagJournalSize   = "journal-size"

	FlagTracingEnable     = "tracing.enable"
	FlagTracingEndpoint   = "tracing.endpoint"
	FlagTracingSampleRate = "tracing.sample-rate"

	EnvPrefix      = "ONSENSWAP"
	ConfigFileName = "config"
)

// DefaultNodeHome is the default home directory for the node.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".onsenswap")
}

// Config holds node configuration loaded from flags, env, or config file.
type Config struct {
	Home        string
	DBBackend   string
	LogLevel    string
	LogJSON     bool
	JournalSize int

	API     APIConfig
	Metrics MetricsConfig
	Tracing TracingConfig
}

// APIConfig configures the HTTP surface.
type APIConfig struct {
	Enable    bool
	Address   string
	RateLimit int

	// AuthSecret signs the bearer tokens /api/tx requires. Empty leaves the
	// tx routes open.
	AuthSecret string
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enable  bool
	Address string
}

// TracingConfig configures OTLP span export.
type TracingConfig struct {
	Enable     bool
	Endpoint   string
	SampleRate float64
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Home:        DefaultNodeHome,
		DBBackend:   "goleveldb",
		LogLevel:    "info",
		JournalSize: 100,
		API: APIConfig{
			Enable:    true,
			Address:   "127.0.0.1:1317",
			RateLimit: 20,
		},
		Metrics: MetricsConfig{
			Enable:  true,
			Address: "127.0.0.1:26660",
		},
		Tracing: TracingConfig{
			Endpoint:   "localhost:4318",
			SampleRate: 1,
		},
	}
}

// LoadConfig merges <home>/config.toml, ONSENSWAP_* environment variables and
// flags into Config. Flags win over env, env wins over the file.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(FlagHome, def.Home)
	v.SetDefault(FlagDBBackend, def.DBBackend)
	v.SetDefault(FlagLogLevel, def.LogLevel)
	v.SetDefault(FlagLogJSON, def.LogJSON)
	v.SetDefault(FlagJournalSize, def.JournalSize)
	v.SetDefault(FlagAPIEnable, def.API.Enable)
	v.SetDefault(FlagAPIAddress, def.API.Address)
	v.SetDefault(FlagAPIRateLimit, def.API.RateLimit)
	v.SetDefault(FlagAPIAuthSecret, def.API.AuthSecret)
	v.SetDefault(FlagMetricsEnable, def.Metrics.Enable)
	v.SetDefault(FlagMetricsAddr, def.Metrics.Address)
	v.SetDefault(FlagTracingEnable, def.Tracing.Enable)
	v.SetDefault(FlagTracingEndpoint, def.Tracing.Endpoint)
	v.SetDefault(FlagTracingSampleRate, def.Tracing.SampleRate)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString(FlagHome))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Home:        v.GetString(FlagHome),
		DBBackend:   v.GetString(FlagDBBackend),
		LogLevel:    v.GetString(FlagLogLevel),
		LogJSON:     cast.ToBool(v.Get(FlagLogJSON)),
		JournalSize: cast.ToInt(v.Get(FlagJournalSize)),
		API: APIConfig{
			Enable:     cast.ToBool(v.Get(FlagAPIEnable)),
			Address:    v.GetString(FlagAPIAddress),
			RateLimit:  cast.ToInt(v.Get(FlagAPIRateLimit)),
			AuthSecret: v.GetString(FlagAPIAuthSecret),
		},
		Metrics: MetricsConfig{
			Enable:  cast.ToBool(v.Get(FlagMetricsEnable)),
			Address: v.GetString(FlagMetricsAddr),
		},
		Tracing: TracingConfig{
			Enable:     cast.ToBool(v.Get(FlagTracingEnable)),
			Endpoint:   v.GetString(FlagTracingEndpoint),
			SampleRate: cast.ToFloat64(v.Get(FlagTracingSampleRate)),
		},
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late at startup.
func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("%s must be set", FlagHome)
	}
	switch c.DBBackend {
	case "goleveldb", "memdb", "pebbledb":
	default:
		return fmt.Errorf("unsupported %s %q", FlagDBBackend, c.DBBackend)
	}
	if c.JournalSize < 0 {
		return fmt.Errorf("%s must be non-negative", FlagJournalSize)
	}
	if c.API.RateLimit <= 0 {
		return fmt.Errorf("%s must be positive", FlagAPIRateLimit)
	}
	if c.API.AuthSecret != "" && len(c.API.AuthSecret) < 32 {
		return fmt.Errorf("%s must be at least 32 bytes", FlagAPIAuthSecret)
	}
	return c.TelemetryConfig("").Validate()
}

// TelemetryConfig maps the tracing settings onto the telemetry package.
func (c Config) TelemetryConfig(chainID string) telemetry.Config {
	return telemetry.Config{
		Enabled:    c.Tracing.Enable,
		Endpoint:   c.Tracing.Endpoint,
		SampleRate: c.Tracing.SampleRate,
		ChainID:    chainID,
	}
}

// DataDir is where the node database lives.
func (c Config) DataDir() string {
	return filepath.Join(c.Home, "data")
}

// GenesisFile is the genesis document of the node.
func (c Config) GenesisFile() string {
	return filepath.Join(c.Home, "config", "genesis.json")
}

// WriteConfigFile writes the current settings to <home>/config.toml
// unless it already exists.
func (c Config) WriteConfigFile() (string, error) {
	path := filepath.Join(c.Home, ConfigFileName+".toml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	v := viper.New()
	v.Set(FlagDBBackend, c.DBBackend)
	v.Set(FlagLogLevel, c.LogLevel)
	v.Set(FlagLogJSON, c.LogJSON)
	v.Set(FlagJournalSize, c.JournalSize)
	v.Set(FlagAPIEnable, c.API.Enable)
	v.Set(FlagAPIAddress, c.API.Address)
	v.Set(FlagAPIRateLimit, c.API.RateLimit)
	v.Set(FlagMetricsEnable, c.Metrics.Enable)
	v.Set(FlagMetricsAddr, c.Metrics.Address)
	v.Set(FlagTracingEnable, c.Tracing.Enable)
	v.Set(FlagTracingEndpoint, c.Tracing.Endpoint)
	v.Set(FlagTracingSampleRate, c.Tracing.SampleRate)

	if err := os.MkdirAll(c.Home, 0o755); err != nil {
		return "", err
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
