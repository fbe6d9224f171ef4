package config

import (
	"pdf-toolbox/internal/domain"
	"pdf-toolbox/internal/repository"
	"pdf-toolbox/internal/service"
	"pdf-toolbox/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config    domain.Config
	Logger    domain.Logger
	Store     domain.ArtifactStore
	Scheduler domain.CleanupScheduler
	Intake    domain.UploadIntake
	Extractor domain.TextExtractor
	PDFOps    domain.PDFOperations
	Converter domain.Converter
	Protector domain.Protector
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	store := repository.NewFileArtifactStore(config.GetUploadPath(), appLogger)
	scheduler := service.NewCleanupScheduler(appLogger)
	intake := service.NewUploadIntake(store, config.GetMaxFileSize(), appLogger)
	runner := service.NewQPDFRunner(config.GetQPDFPath())

	return &Container{
		Config:    config,
		Logger:    appLogger,
		Store:     store,
		Scheduler: scheduler,
		Intake:    intake,
		Extractor: service.NewOCRService(appLogger),
		PDFOps:    service.NewPDFService(store, scheduler, config.GetSplitRetention(), appLogger),
		Converter: service.NewConvertService(store, scheduler, config.GetBatchRetention(), appLogger),
		Protector: service.NewProtectService(store, runner, appLogger),
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetStore returns the artifact store instance
func (c *Container) GetStore() domain.ArtifactStore {
	return c.Store
}

// GetScheduler returns the cleanup scheduler instance
func (c *Container) GetScheduler() domain.CleanupScheduler {
	return c.Scheduler
}
