package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokelearn/internal/database"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	_, err = db.RunMigrations(context.Background())
	require.NoError(t, err)
	s := NewSQLStore(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func storeEngines(t *testing.T) map[string]func(t *testing.T) Store {
	engines := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return newSQLiteStore(t) },
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		engines["redis"] = func(t *testing.T) Store {
			client := redis.NewClient(&redis.Options{Addr: addr})
			prefix := "pokelearn-test:" + t.Name() + ":"
			s := NewRedisStore(client, prefix)
			t.Cleanup(func() {
				for _, p := range []Partition{PartitionPokemon, PartitionProgress, PartitionSettings} {
					_ = s.Clear(context.Background(), p)
				}
				s.Close()
			})
			return s
		}
	}
	return engines
}

func TestStoreContract(t *testing.T) {
	for name, newStore := range storeEngines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			_, found, err := s.Get(ctx, PartitionProgress, SingletonKey)
			require.NoError(t, err)
			assert.False(t, found)

			all, err := s.GetAll(ctx, PartitionPokemon)
			require.NoError(t, err)
			assert.Empty(t, all)

			require.NoError(t, s.Put(ctx, PartitionPokemon, "25", []byte(`{"id":25}`)))
			require.NoError(t, s.Put(ctx, PartitionPokemon, "1", []byte(`{"id":1}`)))
			require.NoError(t, s.Put(ctx, PartitionPokemon, "25", []byte(`{"id":25,"name":"pikachu"}`)))
			require.NoError(t, s.Put(ctx, PartitionProgress, SingletonKey, []byte(`{"totalPoints":5}`)))

			value, found, err := s.Get(ctx, PartitionPokemon, "25")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `{"id":25,"name":"pikachu"}`, string(value))

			all, err = s.GetAll(ctx, PartitionPokemon)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			// Partitions are independent
			require.NoError(t, s.Clear(ctx, PartitionPokemon))
			all, err = s.GetAll(ctx, PartitionPokemon)
			require.NoError(t, err)
			assert.Empty(t, all)
			_, found, err = GetSingleton(ctx, s, PartitionProgress)
			require.NoError(t, err)
			assert.True(t, found)

			// Idempotent removal
			require.NoError(t, s.Delete(ctx, PartitionPokemon, "999"))
			require.NoError(t, s.Clear(ctx, PartitionSettings))

			require.NoError(t, s.Put(ctx, PartitionPokemon, "7", []byte(`{"id":7}`)))
			require.NoError(t, s.Replace(ctx, PartitionPokemon, []Record{
				{Key: "4", Value: []byte(`{"id":4}`)},
				{Key: "6", Value: []byte(`{"id":6}`)},
			}))
			all, err = s.GetAll(ctx, PartitionPokemon)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "4", all[0].Key)
			assert.Equal(t, "6", all[1].Key)

			require.NoError(t, s.Replace(ctx, PartitionPokemon, nil))
			all, err = s.GetAll(ctx, PartitionPokemon)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestSQLStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := database.Initialize(path)
	require.NoError(t, err)
	_, err = db.RunMigrations(ctx)
	require.NoError(t, err)
	s := NewSQLStore(db)
	require.NoError(t, s.Put(ctx, PartitionSettings, SingletonKey, []byte(`{"grade":3}`)))
	require.NoError(t, s.Close())

	db, err = database.Initialize(path)
	require.NoError(t, err)
	_, err = db.RunMigrations(ctx)
	require.NoError(t, err)
	s = NewSQLStore(db)
	defer s.Close()

	value, found, err := s.Get(ctx, PartitionSettings, SingletonKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"grade":3}`, string(value))
}

func TestSQLStoreWrapsStorageErrors(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Close())

	err := s.Put(context.Background(), PartitionPokemon, "1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrStorage)
}
