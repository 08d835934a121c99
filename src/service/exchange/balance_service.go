package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/client"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"time"
)

type BalanceServiceInterface interface {
	GetAssetBalance(asset string, cache bool) (float64, error)
	InvalidateBalanceCache(asset string)
}

// BalanceService caches free balances per asset. Every order invalidates
// the involved assets so the next read reflects the fill.
type BalanceService struct {
	Binance client.ExchangeTradeAPIInterface
	RDB     *redis.Client
	Ctx     *context.Context
}

func (b *BalanceService) GetAssetBalance(asset string, cache bool) (float64, error) {
	cacheKey := fmt.Sprintf("balance-%s-account", asset)

	if cache {
		res := b.RDB.Get(*b.Ctx, cacheKey).Val()
		if len(res) > 0 {
			var balance model.Balance
			if err := json.Unmarshal([]byte(res), &balance); err == nil {
				return balance.Free.Value(), nil
			}
		}
	}

	accountStatus, err := b.Binance.GetAccountStatus()
	if err != nil {
		return 0.00, err
	}

	free := 0.00
	for _, balance := range accountStatus.Balances {
		encoded, err := json.Marshal(balance)
		if err == nil {
			b.RDB.Set(*b.Ctx, fmt.Sprintf("balance-%s-account", balance.Asset), string(encoded), time.Minute*1)
		}

		if balance.Asset == asset {
			free = balance.Free.Value()
		}
	}

	return free, nil
}

func (b *BalanceService) InvalidateBalanceCache(asset string) {
	b.RDB.Del(*b.Ctx, fmt.Sprintf("balance-%s-account", asset))
}
