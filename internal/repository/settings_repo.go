package repository

import (
	"context"

	"pokelearn/internal/models"
)

// SettingsRepository stores the single settings document
type SettingsRepository struct {
	store Store
}

func NewSettingsRepository(store Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get retrieves the stored settings, or found=false if never written
func (r *SettingsRepository) Get(ctx context.Context) (models.Settings, bool, error) {
	return getJSON[models.Settings](ctx, r.store, PartitionSettings, SingletonKey)
}

// Save updates or inserts the settings
func (r *SettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	return putJSON(ctx, r.store, PartitionSettings, SingletonKey, settings)
}
