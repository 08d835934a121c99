package service

import (
	"context"
	"encoding/json"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/client"
	"gitlab.com/open-soft/go-signal-bot/src/config"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"log"
	"slices"
	"sort"
	"strings"
	"time"
)

type SymbolUniverseResolverInterface interface {
	Resolve() ([]string, error)
}

// SymbolUniverseResolver recomputes the tradeable pair set every cycle:
// quote-volume ranked pairs of the configured quote asset, minus
// stablecoin bases and leveraged/earn tokens. Core symbols always lead.
type SymbolUniverseResolver struct {
	Binance client.ExchangePriceAPIInterface
	RDB     *redis.Client
	Ctx     *context.Context
	Config  config.UniverseConfig
}

func (r *SymbolUniverseResolver) Resolve() ([]string, error) {
	tickers, err := r.getTickersCached()
	if err != nil {
		return nil, err
	}

	eligible := make([]model.Ticker24, 0)
	for _, ticker := range tickers {
		if r.isEligible(ticker) {
			eligible = append(eligible, ticker)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].QuoteVolume.Value() > eligible[j].QuoteVolume.Value()
	})

	universe := make([]string, 0, len(r.Config.CoreSymbols)+r.Config.TopCount)
	universe = append(universe, r.Config.CoreSymbols...)

	added := 0
	for _, ticker := range eligible {
		if added >= r.Config.TopCount {
			break
		}

		if slices.Contains(universe, ticker.Symbol) {
			continue
		}

		universe = append(universe, ticker.Symbol)
		added++
	}

	return universe, nil
}

func (r *SymbolUniverseResolver) isEligible(ticker model.Ticker24) bool {
	if !ticker.HasQuoteAsset(r.Config.QuoteAsset) {
		return false
	}

	baseAsset := ticker.GetBaseAsset(r.Config.QuoteAsset)
	if slices.Contains(r.Config.ExcludedBases, baseAsset) {
		return false
	}

	for _, prefix := range r.Config.ExcludedPrefixes {
		if strings.HasPrefix(ticker.Symbol, prefix) {
			return false
		}
	}

	for _, suffix := range r.Config.ExcludedSuffixes {
		if strings.HasSuffix(ticker.Symbol, suffix) {
			return false
		}
	}

	return true
}

func (r *SymbolUniverseResolver) getTickersCached() ([]model.Ticker24, error) {
	cacheKey := "ticker-24h-snapshot"
	res := r.RDB.Get(*r.Ctx, cacheKey).Val()

	if len(res) > 0 {
		var tickers []model.Ticker24
		if err := json.Unmarshal([]byte(res), &tickers); err == nil {
			return tickers, nil
		}

		log.Printf("Ticker snapshot cache invalid, refetching")
		r.RDB.Del(*r.Ctx, cacheKey)
	}

	tickers, err := r.Binance.GetTickers24h()
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(tickers); err == nil {
		r.RDB.Set(*r.Ctx, cacheKey, string(encoded), time.Minute*1)
	}

	return tickers, nil
}
