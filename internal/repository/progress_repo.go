package repository

import (
	"context"

	"pokelearn/internal/models"
)

// ProgressRepository stores the single progress document
type ProgressRepository struct {
	store Store
}

func NewProgressRepository(store Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

// Get returns the stored progress, or found=false if it was never written.
// Records written before completedChallengeSets existed come back with an empty list.
func (r *ProgressRepository) Get(ctx context.Context) (models.UserProgress, bool, error) {
	progress, found, err := getJSON[models.UserProgress](ctx, r.store, PartitionProgress, SingletonKey)
	if err != nil || !found {
		return progress, found, err
	}
	return progress.Clone(), true, nil
}

// Save overwrites the progress document
func (r *ProgressRepository) Save(ctx context.Context, progress models.UserProgress) error {
	return putJSON(ctx, r.store, PartitionProgress, SingletonKey, progress)
}
