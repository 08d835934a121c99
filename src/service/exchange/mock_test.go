package exchange

import (
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"time"
)

type ExchangePriceAPIMock struct {
	mock.Mock
}

func (m *ExchangePriceAPIMock) GetTickers24h() ([]model.Ticker24, error) {
	args := m.Called()
	return args.Get(0).([]model.Ticker24), args.Error(1)
}
func (m *ExchangePriceAPIMock) GetKLines(symbol string, interval string, limit int64) []model.KLineHistory {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).([]model.KLineHistory)
}
func (m *ExchangePriceAPIMock) GetKLinesCached(symbol string, interval string, limit int64) model.CandleSeries {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).(model.CandleSeries)
}
func (m *ExchangePriceAPIMock) GetDepth(symbol string, limit int64) (model.OrderBook, error) {
	args := m.Called(symbol, limit)
	return args.Get(0).(model.OrderBook), args.Error(1)
}
func (m *ExchangePriceAPIMock) GetExchangeData(symbols []string) (*model.ExchangeInfo, error) {
	args := m.Called(symbols)
	return args.Get(0).(*model.ExchangeInfo), args.Error(1)
}

type ExchangeTradeAPIMock struct {
	mock.Mock
}

func (m *ExchangeTradeAPIMock) GetAccountStatus() (*model.AccountStatus, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccountStatus), args.Error(1)
}
func (m *ExchangeTradeAPIMock) MarketOrder(symbol string, side string, quantity float64) (model.BinanceOrder, error) {
	args := m.Called(symbol, side, quantity)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}

type BalanceServiceMock struct {
	mock.Mock
}

func (m *BalanceServiceMock) GetAssetBalance(asset string, cache bool) (float64, error) {
	args := m.Called(asset, cache)
	return args.Get(0).(float64), args.Error(1)
}
func (m *BalanceServiceMock) InvalidateBalanceCache(asset string) {
	m.Called(asset)
}

type FeatureSourceMock struct {
	mock.Mock
}

func (m *FeatureSourceMock) Build(symbol string) (model.FeatureVector, error) {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.FeatureVector), args.Error(1)
}

type PredictorMock struct {
	mock.Mock
}

func (m *PredictorMock) Predict(symbol string, features model.FeatureVector) (model.Prediction, error) {
	args := m.Called(symbol, features)
	return args.Get(0).(model.Prediction), args.Error(1)
}

type LiquidityGuardMock struct {
	mock.Mock
}

func (m *LiquidityGuardMock) CanEnter(symbol string) bool {
	args := m.Called(symbol)
	return args.Bool(0)
}
func (m *LiquidityGuardMock) CanExit(symbol string, positionNotional float64) bool {
	args := m.Called(symbol, positionNotional)
	return args.Bool(0)
}

type OrderExecutorMock struct {
	mock.Mock
}

func (m *OrderExecutorMock) Buy(symbol string, notionalUsd float64) (model.BinanceOrder, error) {
	args := m.Called(symbol, notionalUsd)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}
func (m *OrderExecutorMock) Sell(symbol string, quantity float64) (model.BinanceOrder, error) {
	args := m.Called(symbol, quantity)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}

type TradeAlertMock struct {
	mock.Mock
}

func (m *TradeAlertMock) BuyAlert(symbol string, price float64, quantity float64, confidence model.Percent) {
	m.Called(symbol, price, quantity, confidence)
}
func (m *TradeAlertMock) SellAlert(symbol string, price float64, profit float64, confidence model.Percent) {
	m.Called(symbol, price, profit, confidence)
}
func (m *TradeAlertMock) Info(message string) {
	m.Called(message)
}

type TradeLogMock struct {
	mock.Mock
}

func (m *TradeLogMock) Append(record model.TradeRecord) error {
	args := m.Called(record)
	return args.Error(0)
}
func (m *TradeLogMock) GetTrades() ([]model.TradeRecord, error) {
	args := m.Called()
	return args.Get(0).([]model.TradeRecord), args.Error(1)
}
func (m *TradeLogMock) DailyPnl() ([]model.DailyPnl, error) {
	args := m.Called()
	return args.Get(0).([]model.DailyPnl), args.Error(1)
}
func (m *TradeLogMock) WritePnlSummary(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

type TimeServiceMock struct {
	mock.Mock
}

func (m *TimeServiceMock) WaitSeconds(seconds int64) {
	m.Called(seconds)
}
func (m *TimeServiceMock) GetNow() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
func (m *TimeServiceMock) GetNowUnix() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}
func (m *TimeServiceMock) GetNowDateTimeString() string {
	args := m.Called()
	return args.String(0)
}

type RecorderMock struct {
	mock.Mock
}

func (m *RecorderMock) RecordCycle(durationSeconds float64) {
	m.Called(durationSeconds)
}
func (m *RecorderMock) RecordTrade(side string, symbol string) {
	m.Called(side, symbol)
}
func (m *RecorderMock) RecordSkip(reason string) {
	m.Called(reason)
}
func (m *RecorderMock) SetOpenPositions(count int) {
	m.Called(count)
}
