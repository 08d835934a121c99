package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/client"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"gitlab.com/open-soft/go-signal-bot/src/utils"
	"log"
	"time"
)

type OrderExecutorInterface interface {
	Buy(symbol string, notionalUsd float64) (model.BinanceOrder, error)
	Sell(symbol string, quantity float64) (model.BinanceOrder, error)
}

// OrderExecutor turns decisions into MARKET orders. Quantities are derived
// from exchange-reported lot-size rules and always rounded down; the fill
// reported by the confirmation is the only price and quantity callers may
// persist. A rejected order is abandoned for the cycle, never retried
// against a stale quote.
type OrderExecutor struct {
	Binance        client.ExchangeTradeAPIInterface
	PriceAPI       client.ExchangePriceAPIInterface
	BalanceService BalanceServiceInterface
	Formatter      *utils.Formatter
	RDB            *redis.Client
	Ctx            *context.Context
}

func (e *OrderExecutor) Buy(symbol string, notionalUsd float64) (model.BinanceOrder, error) {
	exchangeSymbol, err := e.getExchangeSymbol(symbol)
	if err != nil {
		return model.BinanceOrder{}, err
	}

	orderBook, err := e.PriceAPI.GetDepth(symbol, 5)
	if err != nil {
		return model.BinanceOrder{}, model.NewTransientExchangeError(symbol, err)
	}

	askPrice := orderBook.GetBestAsk()
	if askPrice <= 0.00 {
		return model.BinanceOrder{}, model.DataError{Symbol: symbol, Reason: "no ask price available"}
	}

	precision := e.Formatter.StepPrecision(exchangeSymbol.GetLotSizeStep())
	quantity := e.Formatter.FloorByPrecision(notionalUsd/askPrice, precision)

	if quantity <= 0.00 {
		return model.BinanceOrder{}, model.DataError{
			Symbol: symbol,
			Reason: fmt.Sprintf("notional %.2f too small for lot step %f", notionalUsd, exchangeSymbol.GetLotSizeStep()),
		}
	}

	if minNotional := exchangeSymbol.GetMinNotional(); minNotional > 0.00 && quantity*askPrice < minNotional {
		return model.BinanceOrder{}, model.DataError{
			Symbol: symbol,
			Reason: fmt.Sprintf("order value %.2f below exchange minimum %.2f", quantity*askPrice, minNotional),
		}
	}

	order, err := e.Binance.MarketOrder(symbol, model.OrderSideBuy, quantity)

	// even a rejected attempt may have raced a fill report, drop the cache
	e.BalanceService.InvalidateBalanceCache(exchangeSymbol.BaseAsset)
	e.BalanceService.InvalidateBalanceCache(exchangeSymbol.QuoteAsset)

	if err != nil {
		return model.BinanceOrder{}, err
	}

	return order, nil
}

// Sell clamps to the free balance and steps one precision unit below the
// rounded amount. The margin absorbs balance-rounding races between the
// snapshot read and the order hitting the matching engine.
func (e *OrderExecutor) Sell(symbol string, quantity float64) (model.BinanceOrder, error) {
	exchangeSymbol, err := e.getExchangeSymbol(symbol)
	if err != nil {
		return model.BinanceOrder{}, err
	}

	free, err := e.BalanceService.GetAssetBalance(exchangeSymbol.BaseAsset, true)
	if err != nil {
		return model.BinanceOrder{}, model.NewTransientExchangeError(symbol, err)
	}

	if free < quantity {
		log.Printf("[%s] Sell clamped to free balance: requested %f, free %f", symbol, quantity, free)
		quantity = free
	}

	precision := e.Formatter.StepPrecision(exchangeSymbol.GetLotSizeStep())
	quantity = e.Formatter.FloorByPrecision(quantity, precision) - e.Formatter.OnePrecisionStep(precision)

	if quantity <= 0.00 {
		return model.BinanceOrder{}, model.DataError{Symbol: symbol, Reason: "sell quantity rounds to zero"}
	}

	order, err := e.Binance.MarketOrder(symbol, model.OrderSideSell, quantity)

	e.BalanceService.InvalidateBalanceCache(exchangeSymbol.BaseAsset)
	e.BalanceService.InvalidateBalanceCache(exchangeSymbol.QuoteAsset)

	if err != nil {
		return model.BinanceOrder{}, err
	}

	return order, nil
}

func (e *OrderExecutor) getExchangeSymbol(symbol string) (model.ExchangeSymbol, error) {
	cacheKey := fmt.Sprintf("exchange-info-%s", symbol)
	res := e.RDB.Get(*e.Ctx, cacheKey).Val()

	if len(res) > 0 {
		var exchangeSymbol model.ExchangeSymbol
		if err := json.Unmarshal([]byte(res), &exchangeSymbol); err == nil {
			return exchangeSymbol, nil
		}

		e.RDB.Del(*e.Ctx, cacheKey)
	}

	exchangeInfo, err := e.PriceAPI.GetExchangeData([]string{symbol})
	if err != nil {
		return model.ExchangeSymbol{}, model.NewTransientExchangeError(symbol, err)
	}

	for _, exchangeSymbol := range exchangeInfo.Symbols {
		if exchangeSymbol.Symbol != symbol {
			continue
		}

		if !exchangeSymbol.IsTrading() {
			return model.ExchangeSymbol{}, model.DataError{Symbol: symbol, Reason: "symbol is not trading"}
		}

		if encoded, err := json.Marshal(exchangeSymbol); err == nil {
			e.RDB.Set(*e.Ctx, cacheKey, string(encoded), time.Hour*1)
		}

		return exchangeSymbol, nil
	}

	return model.ExchangeSymbol{}, model.DataError{Symbol: symbol, Reason: "unknown symbol"}
}
