package controller

import (
	"encoding/json"
	"gitlab.com/open-soft/go-signal-bot/src/repository"
	"net/http"
	"time"
)

// BotController serves the read-only status API. It exposes persisted state
// only and never triggers trading actions.
type BotController struct {
	PositionRepository repository.PositionStorageInterface
	TradeRepository    repository.TradeLogInterface

	StartedAt time.Time
}

func (b *BotController) GetPositionList(w http.ResponseWriter, req *http.Request) {
	b.writeJson(w, b.PositionRepository.Snapshot())
}

func (b *BotController) GetTradeList(w http.ResponseWriter, req *http.Request) {
	trades, err := b.TradeRepository.GetTrades()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	b.writeJson(w, trades)
}

func (b *BotController) GetDailyPnl(w http.ResponseWriter, req *http.Request) {
	summary, err := b.TradeRepository.DailyPnl()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	b.writeJson(w, summary)
}

func (b *BotController) GetHealth(w http.ResponseWriter, req *http.Request) {
	b.writeJson(w, map[string]any{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(b.StartedAt).Seconds()),
		"openPositions": len(b.PositionRepository.Snapshot()),
	})
}

func (b *BotController) writeJson(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	encoded, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	_, _ = w.Write(encoded)
}
