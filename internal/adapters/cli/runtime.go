package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/andrescamacho/trading-engine-go/internal/adapters/dataset"
	"github.com/andrescamacho/trading-engine-go/internal/adapters/logging"
	"github.com/andrescamacho/trading-engine-go/internal/adapters/metrics"
	"github.com/andrescamacho/trading-engine-go/internal/adapters/persistence"
	"github.com/andrescamacho/trading-engine-go/internal/adapters/pipeline"
	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/application/mediator"
	"github.com/andrescamacho/trading-engine-go/internal/application/setup"
	appTrading "github.com/andrescamacho/trading-engine-go/internal/application/trading"
	tradingCommands "github.com/andrescamacho/trading-engine-go/internal/application/trading/commands"
	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
	"github.com/andrescamacho/trading-engine-go/internal/domain/dice"
	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
	"github.com/andrescamacho/trading-engine-go/internal/domain/trading"
	"github.com/andrescamacho/trading-engine-go/internal/infrastructure/config"
	"github.com/andrescamacho/trading-engine-go/internal/infrastructure/database"
)

// runtime is everything one CLI invocation needs, built from config and torn down by close
type runtime struct {
	cfg      *config.Config
	session  *config.UserConfigHandler
	db       *gorm.DB
	data     *persistence.GormDataRepository
	ledger   *persistence.GormLedgerAdapter
	engine   *appTrading.TradingEngine
	mediator mediator.Mediator
	registry *prometheus.Registry
	logClose io.Closer
}

// newRuntime loads config, opens the database, seeds it on first use, builds the
// engine and applies the season. The returned context carries the logger.
func newRuntime(ctx context.Context) (context.Context, *runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if pipelineFlag {
		cfg.Trading.Pipeline.Enabled = true
	}

	slogger, logClose, err := logging.New(cfg.Logging)
	if err != nil {
		return ctx, nil, err
	}
	ctx = common.WithLogger(ctx, logging.NewSlogLogger(slogger))

	rt := &runtime{cfg: cfg, logClose: logClose}
	if err := rt.open(ctx); err != nil {
		rt.close(ctx)
		return ctx, nil, err
	}
	return ctx, rt, nil
}

func (rt *runtime) open(ctx context.Context) error {
	session, err := config.NewUserConfigHandler()
	if err != nil {
		return err
	}
	rt.session = session

	rt.db, err = database.NewConnection(&rt.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(rt.db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	ds, err := dataset.LoadOrDefault(rt.cfg.Trading.DatasetPath)
	if err != nil {
		return err
	}
	rt.data = persistence.NewGormDataRepository(rt.db)
	if err := rt.seedIfEmpty(ctx, ds); err != nil {
		return err
	}

	var (
		engineMetrics  = services.NoopMetrics()
		commandMetrics *metrics.CommandMetricsCollector
		ledgerMetrics  *metrics.LedgerMetricsCollector
	)
	if rt.cfg.Metrics.Enabled {
		tm := metrics.NewTradingMetricsCollector(rt.cfg.Metrics.Namespace)
		commandMetrics = metrics.NewCommandMetricsCollector(rt.cfg.Metrics.Namespace)
		ledgerMetrics = metrics.NewLedgerMetricsCollector(rt.cfg.Metrics.Namespace)
		rt.registry, err = metrics.NewRegistry(tm, commandMetrics, ledgerMetrics)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		engineMetrics = tm
	}

	merchantCfg, err := rt.cfg.Trading.MerchantDomainConfig()
	if err != nil {
		return err
	}
	engineCfg := appTrading.DefaultEngineConfig()
	engineCfg.Metrics = engineMetrics
	engineCfg.Merchant = merchantCfg
	engineCfg.ResaleCooldownDays = rt.cfg.Trading.ResaleCooldownDays
	if rt.cfg.Trading.Pipeline.Enabled {
		engineCfg.Pipeline = pipeline.NewTableProvider(ds).Generator()
	}

	rt.engine, err = appTrading.NewTradingEngine(rt.data, rt.randomSource(), engineCfg)
	if err != nil {
		return err
	}

	rt.ledger = persistence.NewGormLedgerAdapter(rt.db, engineCfg.Clock)
	registry := setup.NewHandlerRegistry(rt.engine, rt.ledgerPort(ledgerMetrics), engineCfg.Clock)
	rt.mediator, err = registry.CreateConfiguredMediator(metrics.PrometheusMiddleware(commandMetrics))
	if err != nil {
		return err
	}

	return rt.applySeason(ctx)
}

func (rt *runtime) ledgerPort(collector *metrics.LedgerMetricsCollector) trading.LedgerAdapter {
	if collector == nil {
		return rt.ledger
	}
	return collector.Instrument(rt.ledger)
}

func (rt *runtime) randomSource() dice.Source {
	seed := seedFlag
	if seed == 0 {
		seed = rt.cfg.Trading.Seed
	}
	if seed == 0 {
		return dice.NewRandomSource()
	}
	return dice.NewMathSource(seed)
}

// seedIfEmpty imports the dataset when the settlements table has no rows
func (rt *runtime) seedIfEmpty(ctx context.Context, ds *dataset.Dataset) error {
	settlements, err := rt.data.AllSettlements(ctx)
	if err != nil {
		return err
	}
	if len(settlements) > 0 {
		return nil
	}
	_, err = dataset.Import(ctx, ds, rt.data)
	return err
}

// applySeason sets the season from --season, the session file or config, in that order
func (rt *runtime) applySeason(ctx context.Context) error {
	season := seasonFlag
	if season == "" {
		state, err := rt.session.Load()
		if err != nil {
			return err
		}
		season = state.Season
	}
	if season == "" {
		season = rt.cfg.Trading.Season
	}
	if season == "" {
		return nil
	}
	_, err := rt.mediator.Send(ctx, &tradingCommands.SetSeasonCommand{Season: season})
	return err
}

// actorID resolves --actor, then the session default
func (rt *runtime) actorID() (string, error) {
	if actorFlag != "" {
		return actorFlag, nil
	}
	state, err := rt.session.Load()
	if err != nil {
		return "", err
	}
	if state.DefaultActor == "" {
		return "", shared.NewValidationError("actor", "no actor specified: use --actor or 'trading actor use <id>'")
	}
	return state.DefaultActor, nil
}

func (rt *runtime) close(ctx context.Context) {
	if rt.registry != nil && rt.cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(rt.cfg.Metrics.Textfile, rt.registry); err != nil {
			common.LoggerFromContext(ctx).Log(common.LevelWarning, "Metrics not written", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if rt.db != nil {
		_ = database.Close(rt.db)
	}
	if rt.logClose != nil {
		_ = rt.logClose.Close()
	}
}

// withRuntime wraps a command body with runtime setup and teardown
func withRuntime(run func(ctx context.Context, rt *runtime) error) error {
	ctx, rt, err := newRuntime(context.Background())
	if err != nil {
		return err
	}
	defer rt.close(ctx)
	return run(ctx, rt)
}
