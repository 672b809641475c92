package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"pokelearn/internal/models"
)

// CollectionRepository stores saved creatures keyed by their numeric id
type CollectionRepository struct {
	store Store
}

func NewCollectionRepository(store Store) *CollectionRepository {
	return &CollectionRepository{store: store}
}

func pokemonKey(id int) string {
	return strconv.Itoa(id)
}

// Save upserts a creature
func (r *CollectionRepository) Save(ctx context.Context, p models.SavedPokemon) error {
	return putJSON(ctx, r.store, PartitionPokemon, pokemonKey(p.ID), p)
}

// GetAll returns every saved creature ordered by id
func (r *CollectionRepository) GetAll(ctx context.Context) ([]models.SavedPokemon, error) {
	records, err := r.store.GetAll(ctx, PartitionPokemon)
	if err != nil {
		return nil, err
	}
	collection := make([]models.SavedPokemon, 0, len(records))
	for _, rec := range records {
		var p models.SavedPokemon
		if err := json.Unmarshal(rec.Value, &p); err != nil {
			return nil, fmt.Errorf("failed to decode pokemon %s: %w", rec.Key, err)
		}
		collection = append(collection, p)
	}
	sort.Slice(collection, func(i, j int) bool { return collection[i].ID < collection[j].ID })
	return collection, nil
}

// Delete removes a creature; missing ids are ignored
func (r *CollectionRepository) Delete(ctx context.Context, id int) error {
	return r.store.Delete(ctx, PartitionPokemon, pokemonKey(id))
}

// Clear removes every creature
func (r *CollectionRepository) Clear(ctx context.Context) error {
	return r.store.Clear(ctx, PartitionPokemon)
}

// ReplaceAll swaps the whole collection for the given creatures
func (r *CollectionRepository) ReplaceAll(ctx context.Context, collection []models.SavedPokemon) error {
	records := make([]Record, 0, len(collection))
	for _, p := range collection {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode pokemon %d: %w", p.ID, err)
		}
		records = append(records, Record{Key: pokemonKey(p.ID), Value: data})
	}
	return r.store.Replace(ctx, PartitionPokemon, records)
}
