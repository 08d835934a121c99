package service

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-signal-bot/src/config"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"gitlab.com/open-soft/go-signal-bot/src/repository"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestScheduler(t *testing.T, universe *UniverseResolverMock, processor *SymbolProcessorMock, notificator *AlertNotificatorMock, recorder *RecorderMock) (*Scheduler, string) {
	dir := t.TempDir()

	positions := &repository.PositionRepository{FilePath: filepath.Join(dir, "positions.json")}
	positions.Load()

	trades := &repository.TradeRepository{FilePath: filepath.Join(dir, "executed_trades.csv")}

	return &Scheduler{
		Universe:    universe,
		Processor:   processor,
		Positions:   positions,
		Trades:      trades,
		Notificator: notificator,
		Metrics:     recorder,
		Config: config.TradingConfig{
			Interval:      config.Duration(time.Minute * 5),
			CycleDeadline: config.Duration(time.Minute * 4),
			Concurrency:   2,
		},
		PnlSummaryFile: filepath.Join(dir, "daily_pnl_summary.csv"),
	}, dir
}

func TestCycleProcessesEverySymbolAndPersists(t *testing.T) {
	assertion := assert.New(t)

	universe := new(UniverseResolverMock)
	processor := new(SymbolProcessorMock)
	notificator := new(AlertNotificatorMock)
	recorder := new(RecorderMock)

	universe.On("Resolve").Return([]string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}, nil)

	for _, symbol := range []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"} {
		processor.On("ProcessSymbol", symbol).Return(model.Outcome{
			Symbol: symbol,
			Action: model.OutcomeHold,
			Reason: "confidence below threshold",
		})
	}

	notificator.On("NoTradesAlert")
	recorder.On("RecordCycle", mock.Anything)
	recorder.On("SetOpenPositions", 0)

	scheduler, dir := newTestScheduler(t, universe, processor, notificator, recorder)
	scheduler.RunCycle(context.Background())

	processor.AssertNumberOfCalls(t, "ProcessSymbol", 3)
	notificator.AssertCalled(t, "NoTradesAlert")

	_, err := os.Stat(filepath.Join(dir, "positions.json"))
	assertion.NoError(err)

	_, err = os.Stat(filepath.Join(dir, "daily_pnl_summary.csv"))
	assertion.NoError(err)
}

func TestCycleSkipsNoTradesAlertWhenTradeHappened(t *testing.T) {
	universe := new(UniverseResolverMock)
	processor := new(SymbolProcessorMock)
	notificator := new(AlertNotificatorMock)
	recorder := new(RecorderMock)

	universe.On("Resolve").Return([]string{"ETHUSDT"}, nil)
	processor.On("ProcessSymbol", "ETHUSDT").Return(model.Outcome{
		Symbol: "ETHUSDT",
		Action: model.OutcomeBuy,
		Reason: "buy confidence above threshold",
	})

	recorder.On("RecordCycle", mock.Anything)
	recorder.On("SetOpenPositions", 0)

	scheduler, _ := newTestScheduler(t, universe, processor, notificator, recorder)
	scheduler.RunCycle(context.Background())

	notificator.AssertNotCalled(t, "NoTradesAlert")
}

func TestCycleRetriesNextTickOnUniverseFailure(t *testing.T) {
	universe := new(UniverseResolverMock)
	processor := new(SymbolProcessorMock)
	notificator := new(AlertNotificatorMock)
	recorder := new(RecorderMock)

	universe.On("Resolve").Return(nil, assert.AnError)

	scheduler, _ := newTestScheduler(t, universe, processor, notificator, recorder)
	scheduler.RunCycle(context.Background())

	processor.AssertNotCalled(t, "ProcessSymbol", mock.Anything)
	notificator.AssertNotCalled(t, "NoTradesAlert")
	recorder.AssertNotCalled(t, "RecordCycle", mock.Anything)
}

func TestCycleIsolatesSymbolsAcrossWorkers(t *testing.T) {
	universe := new(UniverseResolverMock)
	processor := new(SymbolProcessorMock)
	notificator := new(AlertNotificatorMock)
	recorder := new(RecorderMock)

	symbols := []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "ADAUSDT", "DOTUSDT"}
	universe.On("Resolve").Return(symbols, nil)

	// one symbol skipping must not prevent the rest from being processed
	processor.On("ProcessSymbol", "ETHUSDT").Return(model.Outcome{
		Symbol: "ETHUSDT",
		Action: model.OutcomeSkip,
		Reason: "insufficient_data",
	})
	for _, symbol := range symbols {
		if symbol == "ETHUSDT" {
			continue
		}
		processor.On("ProcessSymbol", symbol).Return(model.Outcome{
			Symbol: symbol,
			Action: model.OutcomeHold,
			Reason: "confidence below threshold",
		})
	}

	notificator.On("NoTradesAlert")
	recorder.On("RecordCycle", mock.Anything)
	recorder.On("SetOpenPositions", 0)

	scheduler, _ := newTestScheduler(t, universe, processor, notificator, recorder)
	scheduler.RunCycle(context.Background())

	processor.AssertNumberOfCalls(t, "ProcessSymbol", len(symbols))
}

func TestCycleContainsWorkerPanic(t *testing.T) {
	universe := new(UniverseResolverMock)
	processor := new(SymbolProcessorMock)
	notificator := new(AlertNotificatorMock)
	recorder := new(RecorderMock)

	universe.On("Resolve").Return([]string{"ETHUSDT", "BTCUSDT"}, nil)

	processor.On("ProcessSymbol", "ETHUSDT").Run(func(args mock.Arguments) {
		panic("indicator blew up")
	}).Return(model.Outcome{})
	processor.On("ProcessSymbol", "BTCUSDT").Return(model.Outcome{
		Symbol: "BTCUSDT",
		Action: model.OutcomeHold,
		Reason: "confidence below threshold",
	})

	notificator.On("NoTradesAlert")
	recorder.On("RecordSkip", "panic")
	recorder.On("RecordCycle", mock.Anything)
	recorder.On("SetOpenPositions", 0)

	scheduler, _ := newTestScheduler(t, universe, processor, notificator, recorder)
	scheduler.RunCycle(context.Background())

	processor.AssertNumberOfCalls(t, "ProcessSymbol", 2)
	recorder.AssertCalled(t, "RecordSkip", "panic")
}
