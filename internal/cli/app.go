package cli

import (
	"context"

	"pokelearn/internal/config"
	"pokelearn/internal/content"
	"pokelearn/internal/creature"
	"pokelearn/internal/logger"
	"pokelearn/internal/models"
	"pokelearn/internal/repository"
	"pokelearn/internal/service"
)

// StarterPokemonID is the creature granted when the tutorial is completed
const StarterPokemonID = 25

// RewardSource supplies reward creatures
type RewardSource interface {
	FetchByID(ctx context.Context, id int) (models.Pokemon, error)
	FetchRandom(ctx context.Context, legendaryOnly bool) (models.Pokemon, error)
}

// App bundles the services a command needs
type App struct {
	Log         *logger.Logger
	Content     *content.Provider
	Rewards     RewardSource
	Progression *service.ProgressionService
	Backup      *service.BackupService

	close func() error
}

// NewApp wires services over an already opened store
func NewApp(store repository.Store, provider *content.Provider, rewards RewardSource, log *logger.Logger) *App {
	collectionRepo := repository.NewCollectionRepository(store)
	progressRepo := repository.NewProgressRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)

	return &App{
		Log:         log,
		Content:     provider,
		Rewards:     rewards,
		Progression: service.NewProgressionService(collectionRepo, progressRepo, settingsRepo, provider, log),
		Backup:      service.NewBackupService(collectionRepo, progressRepo, log),
		close:       store.Close,
	}
}

// Close releases the storage handle
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// Bootstrap opens storage and remote clients from configuration. A storage
// engine that cannot be opened is logged and replaced by an in-memory store
// for the session.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) *App {
	connector := repository.NewConnector(func(ctx context.Context) (repository.Store, error) {
		return repository.NewByEngine(ctx, cfg)
	})

	store, err := connector.Store(ctx)
	if err != nil {
		log.Warn("storage unavailable, progress will not be kept after exit",
			"engine", cfg.DatabaseType,
			"error", err,
		)
		store = repository.NewMemoryStore()
	}

	var primary content.Source
	if cfg.SanityConfigured() {
		primary = content.NewSanityClient(content.SanityConfig{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			Token:      cfg.SanityToken,
			UseCDN:     cfg.SanityUseCDN,
			Timeout:    cfg.HTTPTimeout,
		})
	}
	provider := content.NewProvider(primary, log)
	rewards := creature.NewClient(cfg.PokeAPIBaseURL, cfg.HTTPTimeout)

	app := NewApp(store, provider, rewards, log)
	if err == nil {
		app.close = connector.Close
	}
	return app
}
