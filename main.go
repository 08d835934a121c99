package main

import (
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/client"
	"gitlab.com/open-soft/go-signal-bot/src/config"
	"gitlab.com/open-soft/go-signal-bot/src/controller"
	"gitlab.com/open-soft/go-signal-bot/src/metrics"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"gitlab.com/open-soft/go-signal-bot/src/repository"
	"gitlab.com/open-soft/go-signal-bot/src/service"
	"gitlab.com/open-soft/go-signal-bot/src/service/exchange"
	"gitlab.com/open-soft/go-signal-bot/src/service/ml"
	"gitlab.com/open-soft/go-signal-bot/src/utils"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	binance := client.Binance{
		ApiKey:       cfg.Binance.ApiKey,
		ApiSecret:    cfg.Binance.ApiSecret,
		Channel:      make(chan []byte),
		SocketWriter: make(chan []byte),
		RDB:          rdb,
		Ctx:          &ctx,
		Lock:         &sync.Mutex{},
	}
	binance.Connect(cfg.Binance.WsApiDSN)

	classifier := ml.ClassifierClient{
		BaseURL:    cfg.Classifier.BaseURL,
		HttpClient: &http.Client{Timeout: cfg.Classifier.Timeout.Value()},
	}
	if err = classifier.Initialize(); err != nil {
		log.Fatal(err)
	}

	positionRepository := repository.PositionRepository{
		FilePath: cfg.Storage.PositionsFile,
	}
	positionRepository.Load()

	tradeRepository := repository.TradeRepository{
		FilePath: cfg.Storage.TradeLogFile,
	}

	timeService := utils.TimeHelper{}
	formatter := utils.Formatter{}
	recorder := metrics.New()

	notificator := service.TelegramNotificator{
		BotToken:   cfg.Telegram.BotToken,
		ChatId:     cfg.Telegram.ChatId,
		HttpClient: &http.Client{Timeout: time.Second * 10},
	}

	sentiment := service.CryptoPanicSentiment{
		HttpClient: &http.Client{Timeout: time.Second * 10},
		RDB:        rdb,
		Ctx:        &ctx,
		Config:     cfg.Sentiment,
		QuoteAsset: cfg.Universe.QuoteAsset,
	}

	featureBuilder := service.FeatureBuilder{
		Binance:    &binance,
		Sentiment:  &sentiment,
		Timeframes: cfg.Trading.Timeframes,
		KlineLimit: cfg.Trading.KlineLimit,
	}

	universeResolver := service.SymbolUniverseResolver{
		Binance: &binance,
		RDB:     rdb,
		Ctx:     &ctx,
		Config:  cfg.Universe,
	}

	balanceService := exchange.BalanceService{
		Binance: &binance,
		RDB:     rdb,
		Ctx:     &ctx,
	}

	liquidityGuard := exchange.LiquidityGuard{
		Binance: &binance,
		RDB:     rdb,
		Ctx:     &ctx,
		Config:  cfg.Liquidity,
	}

	orderExecutor := exchange.OrderExecutor{
		Binance:        &binance,
		PriceAPI:       &binance,
		BalanceService: &balanceService,
		Formatter:      &formatter,
		RDB:            rdb,
		Ctx:            &ctx,
	}

	signalEngine := exchange.SignalEngine{
		Features:    &featureBuilder,
		Classifier:  &classifier,
		Liquidity:   &liquidityGuard,
		Positions:   &positionRepository,
		Executor:    &orderExecutor,
		Trades:      &tradeRepository,
		Notificator: &notificator,
		TimeService: &timeService,
		Metrics:     recorder,

		ConfidenceThreshold: model.Percent(cfg.Trading.ConfidenceThreshold),
		NotionalUsd:         cfg.Trading.NotionalUsd,
	}

	scheduler := service.Scheduler{
		Universe:    &universeResolver,
		Processor:   &signalEngine,
		Positions:   &positionRepository,
		Trades:      &tradeRepository,
		Notificator: &notificator,
		Metrics:     recorder,

		Config:         cfg.Trading,
		PnlSummaryFile: cfg.Storage.PnlSummaryFile,
	}

	botController := controller.BotController{
		PositionRepository: &positionRepository,
		TradeRepository:    &tradeRepository,
		StartedAt:          timeService.GetNow(),
	}

	http.HandleFunc("/position/list", botController.GetPositionList)
	http.HandleFunc("/trade/list", botController.GetTradeList)
	http.HandleFunc("/pnl/daily", botController.GetDailyPnl)
	http.HandleFunc("/health", botController.GetHealth)
	http.Handle("/metrics", promhttp.Handler())

	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port), nil))
	}()

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	notificator.Info(fmt.Sprintf("🤖 Signal bot started, model %s", classifier.GetModelVersion()))
	log.Printf("Signal bot started, model %s, interval %s", classifier.GetModelVersion(), cfg.Trading.Interval.Value())

	scheduler.Run(runCtx)

	if err = positionRepository.Persist(); err != nil {
		log.Printf("Final position snapshot persist failed: %s", err.Error())
	}
}
