package service

import (
	"context"
	"gitlab.com/open-soft/go-signal-bot/src/config"
	"gitlab.com/open-soft/go-signal-bot/src/metrics"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"gitlab.com/open-soft/go-signal-bot/src/repository"
	"log"
	"sync"
	"time"
)

type SymbolProcessorInterface interface {
	ProcessSymbol(symbol string) model.Outcome
}

// Scheduler drives the fixed-interval trading loop. Each cycle resolves the
// universe, fans symbols out to a bounded worker pool, persists state and
// reports. A failing cycle logs and waits for the next tick; nothing inside
// a cycle is fatal to the process.
type Scheduler struct {
	Universe    SymbolUniverseResolverInterface
	Processor   SymbolProcessorInterface
	Positions   repository.PositionStorageInterface
	Trades      repository.TradeLogInterface
	Notificator AlertNotificatorInterface
	Metrics     metrics.RecorderInterface

	Config         config.TradingConfig
	PnlSummaryFile string
}

func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Config.Interval.Value())
	defer ticker.Stop()

	s.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Scheduler stopped: %s", ctx.Err())
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle processes one full pass over the universe. The cycle deadline is
// soft: running workers finish their symbol, queued symbols are dropped.
func (s *Scheduler) RunCycle(ctx context.Context) {
	started := time.Now()

	cycleCtx, cancel := context.WithTimeout(ctx, s.Config.CycleDeadline.Value())
	defer cancel()

	universe, err := s.Universe.Resolve()
	if err != nil {
		log.Printf("Universe resolution failed, retry next tick: %s", err.Error())

		return
	}

	log.Printf("Cycle started: %d symbols", len(universe))

	outcomes := make([]model.Outcome, 0, len(universe))
	outcomesLock := sync.Mutex{}

	semaphore := make(chan struct{}, s.Config.Concurrency)
	waitGroup := sync.WaitGroup{}

	for _, symbol := range universe {
		if cycleCtx.Err() != nil {
			log.Printf("[%s] Dropped: cycle deadline reached", symbol)
			s.Metrics.RecordSkip("cycle_deadline")

			continue
		}

		waitGroup.Add(1)
		semaphore <- struct{}{}

		go func(symbol string) {
			defer waitGroup.Done()
			defer func() { <-semaphore }()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[%s] Worker panic contained: %v", symbol, r)
					s.Metrics.RecordSkip("panic")
				}
			}()

			outcome := s.Processor.ProcessSymbol(symbol)

			outcomesLock.Lock()
			outcomes = append(outcomes, outcome)
			outcomesLock.Unlock()
		}(symbol)
	}

	waitGroup.Wait()

	s.finishCycle(outcomes, started)
}

func (s *Scheduler) finishCycle(outcomes []model.Outcome, started time.Time) {
	tradeCount := 0
	for _, outcome := range outcomes {
		if outcome.IsTrade() {
			tradeCount++
		}
	}

	if err := s.Positions.Persist(); err != nil {
		log.Printf("Position snapshot persist failed: %s", err.Error())
	}

	if err := s.Trades.WritePnlSummary(s.PnlSummaryFile); err != nil {
		log.Printf("PnL summary write failed: %s", err.Error())
	}

	s.Metrics.SetOpenPositions(len(s.Positions.Snapshot()))

	if tradeCount == 0 {
		s.Notificator.NoTradesAlert()
	}

	duration := time.Since(started)
	s.Metrics.RecordCycle(duration.Seconds())

	log.Printf("Cycle finished in %s: %d symbols processed, %d trades", duration, len(outcomes), tradeCount)
}
