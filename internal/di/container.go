package di

import (
	"github.com/GoArmGo/TextForge/internal/adapter/engine"
	"github.com/GoArmGo/TextForge/internal/adapter/storage/minio"
	"github.com/GoArmGo/TextForge/internal/app"
	"github.com/GoArmGo/TextForge/internal/config"
	"github.com/GoArmGo/TextForge/internal/database/client"
	"github.com/GoArmGo/TextForge/internal/database/storage"
	"github.com/GoArmGo/TextForge/internal/handler"
	"github.com/GoArmGo/TextForge/internal/logger"
	"github.com/GoArmGo/TextForge/internal/rabbitmq"
	"github.com/GoArmGo/TextForge/internal/session"
	"github.com/GoArmGo/TextForge/internal/usecase"
)

// BuildApp initializes all dependencies and returns a ready App.
func BuildApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	dbClient, err := client.NewClient(cfg.DatabaseURL, slogger)
	if err != nil {
		return nil, err
	}

	userStorage := storage.NewUserStorage(dbClient.DB)
	eventStorage := storage.NewGenerationEventStorage(dbClient.DB)

	// The engine client is the process-wide handle to the loaded model; built
	// once here and injected everywhere.
	engineClient := engine.NewClient(cfg)

	archiveStorage, err := minio.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	accountUseCase := usecase.NewAccountUseCase(userStorage, slogger)
	generationUseCase := usecase.NewGenerationUseCase(eventStorage, engineClient, rabbitMQClient, cfg.MaxPromptChars, slogger)

	sessionStore := session.NewStore(cfg.SessionTTL)
	tokenCodec := session.NewTokenCodec(cfg.SessionSecret, cfg.SessionTTL)

	h := handler.NewHandler(accountUseCase, generationUseCase, sessionStore, tokenCodec, slogger)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		h,
		rabbitMQClient,
		archiveStorage,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
