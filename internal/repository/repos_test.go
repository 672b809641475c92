package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokelearn/internal/models"
)

func TestCollectionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCollectionRepository(newSQLiteStore(t))

	pikachu := models.SavedPokemon{Pokemon: models.Pokemon{ID: 25, Name: "pikachu", Types: []string{"electric"}}, SavedAt: 1700000000000}
	bulbasaur := models.SavedPokemon{Pokemon: models.Pokemon{ID: 1, Name: "bulbasaur"}, SavedAt: 1700000000001}

	require.NoError(t, repo.Save(ctx, pikachu))
	require.NoError(t, repo.Save(ctx, bulbasaur))
	require.NoError(t, repo.Save(ctx, pikachu))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bulbasaur", all[0].Name)
	assert.Equal(t, pikachu, all[1])

	require.NoError(t, repo.Delete(ctx, 25))
	require.NoError(t, repo.Delete(ctx, 25))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.ReplaceAll(ctx, []models.SavedPokemon{pikachu}))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 25, all[0].ID)

	require.NoError(t, repo.Clear(ctx))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProgressRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewProgressRepository(store)

	_, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	name := "Luca"
	want := models.UserProgress{TotalPoints: 120, UserName: &name, CompletedChallengeSets: []string{"set-1"}}
	require.NoError(t, repo.Save(ctx, want))

	got, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestProgressRepositoryFillsMissingSetList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, PartitionProgress, SingletonKey, []byte(`{"totalPoints":40,"userName":null}`)))

	got, found, err := NewProgressRepository(store).Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 40, got.TotalPoints)
	assert.NotNil(t, got.CompletedChallengeSets)
	assert.Empty(t, got.CompletedChallengeSets)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(NewMemoryStore())

	_, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	want := models.Settings{Grade: 3, Difficulty: models.DifficultyHard, SoundEnabled: false, Language: "it"}
	require.NoError(t, repo.Save(ctx, want))

	got, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestCorruptRecordIsReported(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, PartitionSettings, SingletonKey, []byte(`not json`)))

	_, _, err := NewSettingsRepository(store).Get(ctx)
	assert.ErrorContains(t, err, "failed to decode settings")
}
