package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/adapters/store"
	"github.com/riskdash/riskdash/internal/config"
	"github.com/riskdash/riskdash/internal/core"
)

// StoreFactory creates record stores based on configuration.
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory.
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRecordStore creates a record store based on the configuration. A SQL
// store that cannot be opened degrades to the in-memory mock so the service
// keeps classifying; only history is lost.
func (f *StoreFactory) CreateRecordStore() (core.RecordStore, error) {
	storeCfg := f.cfg.GetStore()

	backed, err := f.createConfigured(storeCfg)
	if err != nil {
		f.logger.Error("Record store unavailable, falling back to in-memory mock",
			zap.String("type", storeCfg.Type),
			zap.Error(err))
		backed = f.memoryStore(storeCfg)
	}
	return backed, nil
}

func (f *StoreFactory) createConfigured(storeCfg config.StoreConfig) (core.RecordStore, error) {
	switch storeCfg.Type {
	case "memory", "":
		return f.memoryStore(storeCfg), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}

func (f *StoreFactory) memoryStore(storeCfg config.StoreConfig) *store.MemoryStore {
	m := store.NewMemoryStore(f.logger)
	if storeCfg.SeedDemo {
		m.SeedDemo()
	}
	return m
}
