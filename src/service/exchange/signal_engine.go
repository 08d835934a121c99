package exchange

import (
	"fmt"
	"gitlab.com/open-soft/go-signal-bot/src/metrics"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"gitlab.com/open-soft/go-signal-bot/src/repository"
	"gitlab.com/open-soft/go-signal-bot/src/utils"
	"log"
)

type FeatureSourceInterface interface {
	Build(symbol string) (model.FeatureVector, error)
}

type PredictorInterface interface {
	Predict(symbol string, features model.FeatureVector) (model.Prediction, error)
}

type TradeAlertInterface interface {
	BuyAlert(symbol string, price float64, quantity float64, confidence model.Percent)
	SellAlert(symbol string, price float64, profit float64, confidence model.Percent)
	Info(message string)
}

// SignalEngine runs the per-symbol state machine: FLAT opens on a confident
// BUY through the entry gate, OPEN closes on a confident SELL through the
// exit gate, everything else holds. Symbols are processed in isolation; any
// error here is contained to its own Outcome.
type SignalEngine struct {
	Features    FeatureSourceInterface
	Classifier  PredictorInterface
	Liquidity   LiquidityGuardInterface
	Positions   repository.PositionStorageInterface
	Executor    OrderExecutorInterface
	Trades      repository.TradeLogInterface
	Notificator TradeAlertInterface
	TimeService utils.TimeServiceInterface
	Metrics     metrics.RecorderInterface

	ConfidenceThreshold model.Percent
	NotionalUsd         float64
}

func (e *SignalEngine) ProcessSymbol(symbol string) model.Outcome {
	features, err := e.Features.Build(symbol)
	if err != nil {
		return e.skip(symbol, "insufficient_data", err)
	}

	prediction, err := e.Classifier.Predict(symbol, features)
	if err != nil {
		if model.IsSchemaError(err) {
			// deployment mismatch between the served model and the
			// feature builder, an operator has to look at it
			e.Notificator.Info(fmt.Sprintf("⚠️ Feature schema mismatch: %s", err.Error()))

			return e.skip(symbol, "schema_mismatch", err)
		}

		return e.skip(symbol, "classifier_error", err)
	}

	buyConfidence := prediction.BuyConfidence()
	sellConfidence := prediction.SellConfidence()

	position, hasPosition := e.Positions.Get(symbol)

	if !hasPosition && buyConfidence.Gte(e.ConfidenceThreshold) {
		return e.enter(symbol, buyConfidence, sellConfidence)
	}

	if hasPosition && sellConfidence.Gte(e.ConfidenceThreshold) {
		return e.exit(symbol, position, buyConfidence, sellConfidence)
	}

	return model.Outcome{
		Symbol:         symbol,
		Action:         model.OutcomeHold,
		Reason:         "confidence below threshold",
		BuyConfidence:  buyConfidence,
		SellConfidence: sellConfidence,
	}
}

func (e *SignalEngine) enter(symbol string, buyConfidence model.Percent, sellConfidence model.Percent) model.Outcome {
	if !e.Liquidity.CanEnter(symbol) {
		log.Printf("[%s] BUY signal %.2f%% blocked by entry liquidity gate", symbol, buyConfidence.Value())

		return model.Outcome{
			Symbol:         symbol,
			Action:         model.OutcomeHold,
			Reason:         "entry liquidity gate not satisfied",
			BuyConfidence:  buyConfidence,
			SellConfidence: sellConfidence,
		}
	}

	order, err := e.Executor.Buy(symbol, e.NotionalUsd)
	if err != nil {
		return e.skip(symbol, "order_rejected", err)
	}

	price := order.GetAvgPrice()
	quantity := order.GetExecutedQuantity()

	position := model.Position{
		Symbol:     symbol,
		EntryPrice: price,
		Quantity:   quantity,
		OpenedAt:   e.TimeService.GetNow(),
	}

	if err = e.Positions.Open(symbol, position); err != nil {
		log.Printf("[%s] Filled BUY could not be recorded: %s", symbol, err.Error())

		return e.skip(symbol, "position_conflict", err)
	}

	e.appendTrade(symbol, model.OrderSideBuy, buyConfidence, price, quantity)
	e.Metrics.RecordTrade(model.OrderSideBuy, symbol)
	e.Notificator.BuyAlert(symbol, price, quantity, buyConfidence)

	log.Printf("[%s] BUY filled: price %.8f, quantity %f, confidence %.2f%%", symbol, price, quantity, buyConfidence.Value())

	return model.Outcome{
		Symbol:         symbol,
		Action:         model.OutcomeBuy,
		Reason:         "buy confidence above threshold",
		BuyConfidence:  buyConfidence,
		SellConfidence: sellConfidence,
	}
}

func (e *SignalEngine) exit(
	symbol string,
	position model.Position,
	buyConfidence model.Percent,
	sellConfidence model.Percent,
) model.Outcome {
	if !e.Liquidity.CanExit(symbol, position.GetNotional(position.EntryPrice)) {
		log.Printf("[%s] SELL signal %.2f%% blocked by exit liquidity gate", symbol, sellConfidence.Value())

		return model.Outcome{
			Symbol:         symbol,
			Action:         model.OutcomeHold,
			Reason:         "exit liquidity gate not satisfied",
			BuyConfidence:  buyConfidence,
			SellConfidence: sellConfidence,
		}
	}

	order, err := e.Executor.Sell(symbol, position.Quantity)
	if err != nil {
		return e.skip(symbol, "order_rejected", err)
	}

	price := order.GetAvgPrice()
	quantity := order.GetExecutedQuantity()

	if _, err = e.Positions.Close(symbol); err != nil {
		log.Printf("[%s] Filled SELL could not be recorded: %s", symbol, err.Error())
	}

	profit := position.GetProfit(price, quantity)

	e.appendTrade(symbol, model.OrderSideSell, sellConfidence, price, quantity)
	e.Metrics.RecordTrade(model.OrderSideSell, symbol)
	e.Notificator.SellAlert(symbol, price, profit, sellConfidence)

	log.Printf("[%s] SELL filled: price %.8f, quantity %f, PnL %.2f, confidence %.2f%%", symbol, price, quantity, profit, sellConfidence.Value())

	return model.Outcome{
		Symbol:         symbol,
		Action:         model.OutcomeSell,
		Reason:         "sell confidence above threshold",
		BuyConfidence:  buyConfidence,
		SellConfidence: sellConfidence,
	}
}

func (e *SignalEngine) skip(symbol string, reason string, err error) model.Outcome {
	log.Printf("[%s] Skipped (%s): %s", symbol, reason, err.Error())
	e.Metrics.RecordSkip(reason)

	return model.Outcome{
		Symbol: symbol,
		Action: model.OutcomeSkip,
		Reason: reason,
	}
}

func (e *SignalEngine) appendTrade(symbol string, side string, confidence model.Percent, price float64, quantity float64) {
	record := model.TradeRecord{
		Timestamp:  e.TimeService.GetNow(),
		Symbol:     symbol,
		Side:       side,
		Confidence: confidence,
		Price:      price,
		Quantity:   quantity,
		Tag:        model.TradeTagCore,
	}

	if err := e.Trades.Append(record); err != nil {
		log.Printf("[%s] Trade log append failed: %s", symbol, err.Error())
	}
}
