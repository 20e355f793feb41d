package factory

import (
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/adapters/smtpingest"
	"github.com/riskdash/riskdash/internal/config"
	"github.com/riskdash/riskdash/internal/core"
)

// IngestFactory creates the optional SMTP ingest adapter.
type IngestFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalysisService
}

// NewIngestFactory creates a new ingest factory.
func NewIngestFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalysisService) *IngestFactory {
	return &IngestFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateIngest returns the configured SMTP ingest, or nil when disabled.
func (f *IngestFactory) CreateIngest() *smtpingest.Ingest {
	ingestCfg := f.cfg.GetIngest()
	if !ingestCfg.Enabled {
		return nil
	}

	return smtpingest.NewIngest(
		f.service,
		f.logger,
		ingestCfg.ListenAddress,
		ingestCfg.BlockSpam,
		ingestCfg.StatusHeader,
		ingestCfg.ScoreHeader,
		ingestCfg.FlagsHeader,
		ingestCfg.RelayAddress,
		ingestCfg.RelayPort,
		ingestCfg.RelayEnabled,
	)
}
