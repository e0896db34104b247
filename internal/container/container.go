package container

import (
	"fmt"
	"net/http"

	"go-menu-gallery/internal/config"
	"go-menu-gallery/internal/factory"
	"go-menu-gallery/internal/logger"
	"go-menu-gallery/internal/observer"
	"go-menu-gallery/internal/repository"
	"go-menu-gallery/internal/service"
	"go-menu-gallery/internal/storage"
	"go-menu-gallery/internal/transport"
	"go-menu-gallery/pkg/validation"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	config           *config.Config
	imageProber      storage.ImageProber
	imageRepository  repository.MenuImageRepository
	publisher        *observer.EventPublisher
	metrics          *observer.MetricsObserver
	menuImageService service.MenuImageService
	handler          http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory(cfg)

	// Build dependency graph
	urls, err := validation.NewURLValidatorWithPattern(cfg.StorageHostPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to build url validator: %w", err)
	}

	imageRepository, err := components.CreateRepository(factory.StorageType(cfg.StoreType))
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	writes, err := components.StrategyFactory.CreateWriteStrategy(cfg.WriteMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create write strategy: %w", err)
	}

	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	imageProber := storage.NewHTTPImageProber(cfg.ProbeTimeout)
	menuImageService := service.NewMenuImageService(imageRepository, writes, urls, imageProber, publisher, service.Settings{
		MaxUploadSizeMB: cfg.MaxUploadSizeMB(),
		ProbeTimeout:    cfg.ProbeTimeout,
	})
	handler := transport.NewHandler(menuImageService, metrics, cfg)

	logger.WithFields(logrus.Fields{
		"store":          imageRepository.Backend(),
		"write_strategy": writes.GetStrategyName(),
	}).Info("Container initialized")

	return &Container{
		config:           cfg,
		imageProber:      imageProber,
		imageRepository:  imageRepository,
		publisher:        publisher,
		metrics:          metrics,
		menuImageService: menuImageService,
		handler:          handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the menu image service
func (c *Container) Service() service.MenuImageService {
	return c.menuImageService
}

// Close waits for in-flight event observers to finish
func (c *Container) Close() {
	c.publisher.Wait()
}
