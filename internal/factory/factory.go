package factory

import (
	"fmt"

	"go-menu-gallery/internal/config"
	"go-menu-gallery/internal/repository"
	"go-menu-gallery/internal/storage"
	"go-menu-gallery/internal/strategy"

	"github.com/redis/go-redis/v9"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// MemoryStorage keeps documents in process memory
	MemoryStorage StorageType = config.StoreMemory
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = config.StoreAzure
	// RedisStorage for a Redis key/value store
	RedisStorage StorageType = config.StoreRedis
)

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ObjectStore, error)
}

// StrategyFactory creates write strategies
type StrategyFactory interface {
	CreateWriteStrategy(mode string) (strategy.WriteStrategy, error)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ObjectStore, error) {
	switch storageType {
	case "", MemoryStorage:
		return storage.NewMemoryStorage(), nil
	case AzureStorage:
		az := f.cfg.Azure
		return storage.NewAzureStorage(az.AccountName, az.AccountKey, az.Container, az.ServiceURL)
	case RedisStorage:
		client := redis.NewClient(&redis.Options{
			Addr:     f.cfg.Redis.Addr,
			Password: f.cfg.Redis.Password,
			DB:       f.cfg.Redis.DB,
		})
		return storage.NewRedisStorage(client, f.cfg.Redis.Namespace), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// strategyFactory implements StrategyFactory
type strategyFactory struct{}

// NewStrategyFactory creates a new strategy factory
func NewStrategyFactory() StrategyFactory {
	return &strategyFactory{}
}

// CreateWriteStrategy creates a write strategy for the configured mode
func (f *strategyFactory) CreateWriteStrategy(mode string) (strategy.WriteStrategy, error) {
	return strategy.ForMode(mode)
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	StorageFactory  StorageFactory
	StrategyFactory StrategyFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		StorageFactory:  NewStorageFactory(cfg),
		StrategyFactory: NewStrategyFactory(),
	}
}

// CreateRepository builds the menu image repository on top of the configured store
func (f *ComponentFactory) CreateRepository(storageType StorageType) (repository.MenuImageRepository, error) {
	store, err := f.StorageFactory.CreateStorage(storageType)
	if err != nil {
		return nil, err
	}
	return repository.NewDocumentRepository(store), nil
}
