package exchange

import (
	"context"
	"encoding/json"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/client"
	"gitlab.com/open-soft/go-signal-bot/src/config"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"log"
	"time"
)

type LiquidityGuardInterface interface {
	CanEnter(symbol string) bool
	CanExit(symbol string, positionNotional float64) bool
}

// LiquidityGuard evaluates live order-book and ticker snapshots before any
// order is placed. Every failure path denies: missing liquidity data is
// never a reason to trade.
type LiquidityGuard struct {
	Binance client.ExchangePriceAPIInterface
	RDB     *redis.Client
	Ctx     *context.Context
	Config  config.LiquidityConfig
}

// CanEnter requires the trailing 24h quote volume above the configured
// floor and a tight spread, measured as best-bid/best-ask ratio.
func (g *LiquidityGuard) CanEnter(symbol string) bool {
	ticker, err := g.getTicker(symbol)
	if err != nil {
		log.Printf("[%s] Entry gate: ticker unavailable: %s", symbol, err.Error())

		return false
	}

	if ticker.QuoteVolume.Value() < g.Config.MinQuoteVolume {
		return false
	}

	orderBook, err := g.Binance.GetDepth(symbol, 20)
	if err != nil {
		log.Printf("[%s] Entry gate: depth unavailable: %s", symbol, err.Error())

		return false
	}

	if orderBook.IsEmpty() {
		return false
	}

	return orderBook.GetSpreadRatio() >= g.Config.MinBidAskRatio
}

// CanExit requires enough resting bid value on the top depth levels to
// absorb the position without excessive slippage.
func (g *LiquidityGuard) CanExit(symbol string, positionNotional float64) bool {
	orderBook, err := g.Binance.GetDepth(symbol, int64(g.Config.ExitDepthLevels))
	if err != nil {
		log.Printf("[%s] Exit gate: depth unavailable: %s", symbol, err.Error())

		return false
	}

	if orderBook.IsEmpty() {
		return false
	}

	return orderBook.GetBidValueSum(g.Config.ExitDepthLevels) >= positionNotional*g.Config.ExitSafetyMargin
}

func (g *LiquidityGuard) getTicker(symbol string) (model.Ticker24, error) {
	cacheKey := "ticker-24h-snapshot"
	res := g.RDB.Get(*g.Ctx, cacheKey).Val()

	var tickers []model.Ticker24

	if len(res) > 0 {
		if err := json.Unmarshal([]byte(res), &tickers); err != nil {
			g.RDB.Del(*g.Ctx, cacheKey)
			tickers = nil
		}
	}

	if tickers == nil {
		fetched, err := g.Binance.GetTickers24h()
		if err != nil {
			return model.Ticker24{}, err
		}

		if encoded, err := json.Marshal(fetched); err == nil {
			g.RDB.Set(*g.Ctx, cacheKey, string(encoded), time.Minute*1)
		}

		tickers = fetched
	}

	for _, ticker := range tickers {
		if ticker.Symbol == symbol {
			return ticker, nil
		}
	}

	return model.Ticker24{}, model.DataError{Symbol: symbol, Reason: "no 24h ticker entry"}
}
