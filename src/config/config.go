package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration accepts human-readable YAML values like "5m" or "90s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}

	*d = Duration(parsed)

	return nil
}

func (d Duration) Value() time.Duration {
	return time.Duration(d)
}

type BinanceConfig struct {
	ApiKey    string `yaml:"api_key"`
	ApiSecret string `yaml:"api_secret"`
	WsApiDSN  string `yaml:"ws_api_dsn" default:"wss://ws-api.binance.com:443/ws-api/v3" validate:"required,url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" default:"redis:6379" validate:"required"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" default:"0"`
}

type ClassifierConfig struct {
	BaseURL string   `yaml:"base_url" default:"http://model-server:5000" validate:"required,url"`
	Timeout Duration `yaml:"timeout" default:"10s"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatId   string `yaml:"chat_id"`
}

type SentimentConfig struct {
	BaseURL  string   `yaml:"base_url" default:"https://cryptopanic.com/api/v1"`
	ApiToken string   `yaml:"api_token"`
	CacheTTL Duration `yaml:"cache_ttl" default:"10m"`
}

type TradingConfig struct {
	ConfidenceThreshold float64  `yaml:"confidence_threshold" default:"75" validate:"gt=50,lte=100"`
	NotionalUsd         float64  `yaml:"notional_usd" default:"20" validate:"gt=0"`
	Interval            Duration `yaml:"interval" default:"5m" validate:"required"`
	CycleDeadline       Duration `yaml:"cycle_deadline" default:"4m" validate:"required"`
	Concurrency         int      `yaml:"concurrency" default:"4" validate:"gte=1,lte=32"`
	Timeframes          []string `yaml:"timeframes" default:"[\"1h\",\"15m\",\"5m\"]" validate:"min=1"`
	KlineLimit          int64    `yaml:"kline_limit" default:"100" validate:"gte=16"`
}

type LiquidityConfig struct {
	MinQuoteVolume   float64 `yaml:"min_quote_volume" default:"5000000" validate:"gt=0"`
	MinBidAskRatio   float64 `yaml:"min_bid_ask_ratio" default:"0.95" validate:"gt=0,lte=1"`
	ExitSafetyMargin float64 `yaml:"exit_safety_margin" default:"0.95" validate:"gt=0,lte=1"`
	ExitDepthLevels  int     `yaml:"exit_depth_levels" default:"10" validate:"gte=1"`
}

type UniverseConfig struct {
	QuoteAsset       string   `yaml:"quote_asset" default:"USDT" validate:"required"`
	CoreSymbols      []string `yaml:"core_symbols" default:"[\"BTCUSDT\",\"ETHUSDT\",\"BNBUSDT\",\"SOLUSDT\",\"XRPUSDT\",\"ADAUSDT\",\"AVAXUSDT\",\"DOTUSDT\",\"TONUSDT\",\"DOGEUSDT\",\"SHIBUSDT\",\"PEPEUSDT\",\"WIFUSDT\"]"`
	TopCount         int      `yaml:"top_count" default:"15" validate:"gte=0"`
	ExcludedBases    []string `yaml:"excluded_bases" default:"[\"BUSD\",\"USDC\",\"TUSD\",\"FDUSD\",\"DAI\",\"SUSDT\",\"TUSDT\"]"`
	ExcludedPrefixes []string `yaml:"excluded_prefixes" default:"[\"LD\"]"`
	ExcludedSuffixes []string `yaml:"excluded_suffixes" default:"[\"UPUSDT\",\"DOWNUSDT\",\"BULLUSDT\",\"BEARUSDT\"]"`
}

type StorageConfig struct {
	PositionsFile  string `yaml:"positions_file" default:"var/positions.json" validate:"required"`
	TradeLogFile   string `yaml:"trade_log_file" default:"var/executed_trades.csv" validate:"required"`
	PnlSummaryFile string `yaml:"pnl_summary_file" default:"var/daily_pnl_summary.csv" validate:"required"`
}

type ServerConfig struct {
	Port int `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
}

type Config struct {
	Binance    BinanceConfig    `yaml:"binance"`
	Redis      RedisConfig      `yaml:"redis"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Sentiment  SentimentConfig  `yaml:"sentiment"`
	Trading    TradingConfig    `yaml:"trading"`
	Liquidity  LiquidityConfig  `yaml:"liquidity"`
	Universe   UniverseConfig   `yaml:"universe"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
}

// Load reads the YAML file, fills defaults, applies environment overrides
// for secrets and validates the result. A missing file is not an error:
// the defaults alone describe a runnable testnet setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	content, err := os.ReadFile(path)
	if err == nil {
		if err = yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		c.Binance.ApiKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		c.Binance.ApiSecret = v
	}
	if v := os.Getenv("BINANCE_WS_DSN"); v != "" {
		c.Binance.WsApiDSN = v
	}
	if v := os.Getenv("REDIS_DSN"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("MODEL_SERVER_DSN"); v != "" {
		c.Classifier.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatId = v
	}
	if v := os.Getenv("CRYPTOPANIC_API_TOKEN"); v != "" {
		c.Sentiment.ApiToken = v
	}
	if v := os.Getenv("CORE_SYMBOLS"); v != "" {
		c.Universe.CoreSymbols = strings.Split(v, ",")
	}
}
