package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app/telemetry"
	dextypes "github.com/paw-chain/pawswap/x/dex/types"
)

// Configuration keys, as they appear in app.toml. Environment variables use
// the PAWSWAP_ prefix with dots and dashes turned into underscores, e.g.
// PAWSWAP_DEX_MINIMUM_LIQUIDITY.
const (
	FlagChainID        = "chain-id"
	FlagDBBackend      = "db-backend"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagMetricsEnabled = "metrics.enabled"
	FlagMetricsPort    = "metrics.port"
	FlagOTLPEndpoint   = "telemetry.otlp-endpoint"
	FlagSampleRate     = "telemetry.sample-rate"
	FlagEnvironment    = "telemetry.environment"

	FlagDefaultFeeNumerator   = "dex.default-fee-numerator"
	FlagDefaultFeeDenominator = "dex.default-fee-denominator"
	FlagMaxFeeNumerator       = "dex.max-fee-numerator"
	FlagMinimumLiquidity      = "dex.minimum-liquidity"

	EnvPrefix = "PAWSWAP"

	defaultMetricsPort = 36660
)

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// DexConfig seeds the dex params written into a new genesis.
type DexConfig struct {
	DefaultFeeNumerator   uint64
	DefaultFeeDenominator uint64
	// MaxFeeNumerator is read over DefaultFeeDenominator.
	MaxFeeNumerator  uint64
	MinimumLiquidity int64
}

// Config is the node configuration loaded from app.toml, flags and env.
type Config struct {
	ChainID   string
	DBBackend string
	LogLevel  string
	LogFormat string
	Metrics   MetricsConfig
	Telemetry telemetry.Config
	Dex       DexConfig
}

// DefaultConfig returns the configuration of a fresh home directory.
func DefaultConfig() Config {
	return Config{
		ChainID:   DefaultChainID,
		DBBackend: string(dbm.GoLevelDBBackend),
		LogLevel:  "info",
		LogFormat: "plain",
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    defaultMetricsPort,
		},
		Telemetry: telemetry.Config{
			SampleRate:  1.0,
			Environment: "local",
		},
		Dex: DexConfig{
			DefaultFeeNumerator:   dextypes.DefaultFeeNumerator,
			DefaultFeeDenominator: dextypes.DefaultFeeDenominator,
			MaxFeeNumerator:       100,
			MinimumLiquidity:      dextypes.DefaultMinimumLiquidity,
		},
	}
}

// ReadConfig builds a Config from opts, keeping defaults for unset keys.
func ReadConfig(opts servertypes.AppOptions) (Config, error) {
	cfg := DefaultConfig()

	cfg.ChainID = readString(opts, FlagChainID, cfg.ChainID)
	cfg.DBBackend = readString(opts, FlagDBBackend, cfg.DBBackend)
	cfg.LogLevel = readString(opts, FlagLogLevel, cfg.LogLevel)
	cfg.LogFormat = readString(opts, FlagLogFormat, cfg.LogFormat)
	if v := opts.Get(FlagMetricsEnabled); v != nil {
		enabled, err := cast.ToBoolE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagMetricsEnabled, err)
		}
		cfg.Metrics.Enabled = enabled
	}
	if v := opts.Get(FlagMetricsPort); v != nil {
		port, err := cast.ToIntE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagMetricsPort, err)
		}
		cfg.Metrics.Port = port
	}
	if v := opts.Get(FlagOTLPEndpoint); v != nil {
		cfg.Telemetry.OTLPEndpoint = cast.ToString(v)
	}
	if v := opts.Get(FlagSampleRate); v != nil {
		rate, err := cast.ToFloat64E(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagSampleRate, err)
		}
		cfg.Telemetry.SampleRate = rate
	}
	cfg.Telemetry.Environment = readString(opts, FlagEnvironment, cfg.Telemetry.Environment)

	var err error
	if cfg.Dex.DefaultFeeNumerator, err = readUint64(opts, FlagDefaultFeeNumerator, cfg.Dex.DefaultFeeNumerator); err != nil {
		return cfg, err
	}
	if cfg.Dex.DefaultFeeDenominator, err = readUint64(opts, FlagDefaultFeeDenominator, cfg.Dex.DefaultFeeDenominator); err != nil {
		return cfg, err
	}
	if cfg.Dex.MaxFeeNumerator, err = readUint64(opts, FlagMaxFeeNumerator, cfg.Dex.MaxFeeNumerator); err != nil {
		return cfg, err
	}
	if v := opts.Get(FlagMinimumLiquidity); v != nil {
		minLiq, err := cast.ToInt64E(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagMinimumLiquidity, err)
		}
		cfg.Dex.MinimumLiquidity = minLiq
	}

	return cfg, cfg.Validate()
}

// readString treats an empty value as unset, so unchanged string flags do
// not clobber the file or the defaults.
func readString(opts servertypes.AppOptions, key, fallback string) string {
	if s := cast.ToString(opts.Get(key)); s != "" {
		return s
	}
	return fallback
}

func readUint64(opts servertypes.AppOptions, key string, fallback uint64) (uint64, error) {
	v := opts.Get(key)
	if v == nil {
		return fallback, nil
	}
	n, err := cast.ToUint64E(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Validate checks the configuration for values the node cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ChainID) == "" {
		return fmt.Errorf("chain id cannot be empty")
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1")
	}
	if _, err := c.DexParams(); err != nil {
		return err
	}
	return nil
}

// DexParams converts the dex section into module params.
func (c Config) DexParams() (dextypes.Params, error) {
	params := dextypes.Params{
		DefaultFee:       dextypes.NewFee(c.Dex.DefaultFeeNumerator, c.Dex.DefaultFeeDenominator),
		MaxFee:           dextypes.NewFee(c.Dex.MaxFeeNumerator, c.Dex.DefaultFeeDenominator),
		MinimumLiquidity: math.NewInt(c.Dex.MinimumLiquidity),
	}
	if err := params.Validate(); err != nil {
		return dextypes.Params{}, fmt.Errorf("invalid dex config: %w", err)
	}
	return params, nil
}

// NewViper returns a viper instance reading home/config/app.toml, PAWSWAP_*
// environment variables and the given flags, in increasing precedence.
// A missing config file is not an error.
func NewViper(home string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(ConfigPath(home))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigPath(home), err)
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ConfigPath is the location of app.toml under home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", "app.toml")
}

// GenesisPath is the location of genesis.json under home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

const configTemplate = `# pawswap node configuration

chain-id = "{{ .ChainID }}"

# Database backend: goleveldb or memdb.
db-backend = "{{ .DBBackend }}"

log-level = "{{ .LogLevel }}"
# plain or json
log-format = "{{ .LogFormat }}"

[metrics]
enabled = {{ .Metrics.Enabled }}
port = {{ .Metrics.Port }}

[telemetry]
# OTLP/HTTP collector address. Tracing is disabled when empty.
otlp-endpoint = "{{ .Telemetry.OTLPEndpoint }}"
sample-rate = {{ .Telemetry.SampleRate }}
environment = "{{ .Telemetry.Environment }}"

# Parameters written into genesis by init.
[dex]
default-fee-numerator = {{ .Dex.DefaultFeeNumerator }}
default-fee-denominator = {{ .Dex.DefaultFeeDenominator }}
max-fee-numerator = {{ .Dex.MaxFeeNumerator }}
minimum-liquidity = {{ .Dex.MinimumLiquidity }}
`

var appConfigTemplate = template.Must(template.New("app.toml").Parse(configTemplate))

// WriteConfigFile renders cfg as app.toml under home.
func WriteConfigFile(home string, cfg Config) error {
	path := ConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return appConfigTemplate.Execute(f, cfg)
}
