package di

import (
	"math/rand"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/adapters/httpapi"
	"github.com/riskdash/riskdash/internal/adapters/smtpingest"
	"github.com/riskdash/riskdash/internal/config"
	"github.com/riskdash/riskdash/internal/core"
	"github.com/riskdash/riskdash/internal/factory"
	"github.com/riskdash/riskdash/internal/logging"
	"github.com/riskdash/riskdash/internal/utils"
	"github.com/riskdash/riskdash/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIngestFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register record store
	if err := container.Provide(func(f *factory.StoreFactory) (core.RecordStore, error) {
		return f.CreateRecordStore()
	}); err != nil {
		return nil, err
	}

	// Register jitter source for the evaluator's display sub-scores
	if err := container.Provide(func(cfg *config.Config) core.JitterFunc {
		if cfg.GetEngine().JitterEnabled {
			return rand.Float64
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// Register trusted sender checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetEngine().TrustedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register evaluator and analysis service
	if err := container.Provide(core.NewEvaluator); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewAnalysisService); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register API server
	if err := container.Provide(func(
		cfg *config.Config,
		service *core.AnalysisService,
		textProc *utils.TextProcessor,
		logger *zap.Logger,
	) *httpapi.Server {
		serverCfg := cfg.GetServer()
		return httpapi.NewServer(
			service,
			textProc,
			logger,
			serverCfg.ListenAddress,
			serverCfg.Mode,
			serverCfg.MaxContentBytes,
		)
	}); err != nil {
		return nil, err
	}

	// Register SMTP ingest (nil when disabled)
	if err := container.Provide(func(f *factory.IngestFactory) *smtpingest.Ingest {
		return f.CreateIngest()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
