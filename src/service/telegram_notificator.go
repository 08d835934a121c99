package service

import (
	"fmt"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"log"
	"net/http"
	"net/url"
)

type AlertNotificatorInterface interface {
	BuyAlert(symbol string, price float64, quantity float64, confidence model.Percent)
	SellAlert(symbol string, price float64, profit float64, confidence model.Percent)
	NoTradesAlert()
	Info(message string)
}

// TelegramNotificator pushes trade alerts through the Bot API. Delivery is
// best effort: a Telegram outage is logged and ignored, alerts never block
// or fail a trading cycle. An empty token disables the notificator.
type TelegramNotificator struct {
	BotToken   string
	ChatId     string
	HttpClient *http.Client
}

func (t *TelegramNotificator) BuyAlert(symbol string, price float64, quantity float64, confidence model.Percent) {
	t.send(fmt.Sprintf(
		"✅ BUY %s\nPrice: %.8f\nQuantity: %.8f\nConfidence: %.2f%%",
		symbol,
		price,
		quantity,
		confidence.Value(),
	))
}

func (t *TelegramNotificator) SellAlert(symbol string, price float64, profit float64, confidence model.Percent) {
	t.send(fmt.Sprintf(
		"🔻 SELL %s\nPrice: %.8f\nRealized PnL: %.2f USD\nConfidence: %.2f%%",
		symbol,
		price,
		profit,
		confidence.Value(),
	))
}

func (t *TelegramNotificator) NoTradesAlert() {
	t.send("💤 No trades this cycle")
}

func (t *TelegramNotificator) Info(message string) {
	t.send(message)
}

func (t *TelegramNotificator) send(text string) {
	if t.BotToken == "" || t.ChatId == "" {
		return
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.BotToken)

	response, err := t.HttpClient.PostForm(endpoint, url.Values{
		"chat_id": {t.ChatId},
		"text":    {text},
	})
	if err != nil {
		log.Printf("Telegram send failed: %s", err.Error())

		return
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		log.Printf("Telegram send failed: status %d", response.StatusCode)
	}
}
