// Package storage provides the top-level StorageManager that coordinates
// the bar, indicator, and system key-value storage areas.
package storage

import (
	"context"
	"fmt"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerDB.
type Manager struct {
	store      *badger.Store
	bars       interfaces.BarStorage
	indicators interfaces.IndicatorStorage
	kv         kvStore
	logger     *common.Logger
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// NewManager opens the database at the configured path and wires the
// storage areas.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:      store,
		bars:       badger.NewBarStorage(store, logger),
		indicators: badger.NewIndicatorStorage(store, logger),
		kv:         badger.NewKVStorage(store, logger),
		logger:     logger,
	}, nil
}

func (m *Manager) Bars() interfaces.BarStorage {
	return m.bars
}

func (m *Manager) Indicators() interfaces.IndicatorStorage {
	return m.indicators
}

func (m *Manager) GetSystemKV(ctx context.Context, key string) (string, error) {
	return m.kv.Get(ctx, key)
}

func (m *Manager) SetSystemKV(ctx context.Context, key, value string) error {
	return m.kv.Set(ctx, key, value)
}

func (m *Manager) Close() error {
	return m.store.Close()
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
