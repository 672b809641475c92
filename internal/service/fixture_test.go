package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pokelearn/internal/content"
	"pokelearn/internal/logger"
	"pokelearn/internal/models"
	"pokelearn/internal/repository"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testDataset() *content.Dataset {
	challenge := func(id, answer string, points int) models.Challenge {
		return models.Challenge{
			ID:            id,
			Subject:       models.SubjectItalian,
			Grade:         2,
			Difficulty:    models.DifficultyEasy,
			Type:          models.ChallengeFillBlank,
			Question:      "question " + id,
			CorrectAnswer: answer,
			Points:        points,
		}
	}
	return &content.Dataset{
		Challenges: []models.Challenge{
			challenge("c1", "Paris", 10),
			challenge("c2", "4", 10),
			challenge("c3", "Città", 10),
			challenge("c-five", "cinque", 5),
		},
		ChallengeSets: []models.ChallengeSet{
			{ID: "set-1", Name: "Tre", Grade: 2, Subject: models.SubjectItalian, Difficulty: models.DifficultyMedium, ChallengeIDs: []string{"c1", "c2", "c3"}},
			{ID: "set-five", Name: "Cinque", Grade: 2, Subject: models.SubjectItalian, Difficulty: models.DifficultyEasy, ChallengeIDs: []string{"c-five"}},
			{ID: "set-broken", Name: "Rotto", Grade: 2, Subject: models.SubjectItalian, Difficulty: models.DifficultyHard, ChallengeIDs: []string{"missing"}},
			{ID: "set-gap", Name: "Buco", Grade: 2, Subject: models.SubjectItalian, Difficulty: models.DifficultyHard, ChallengeIDs: []string{"c1", "missing"}},
			{ID: "set-locked", Name: "Dopo", Grade: 2, Subject: models.SubjectItalian, Difficulty: models.DifficultyHard, ChallengeIDs: []string{"c1"}, Prerequisites: []string{"set-1", "set-five"}},
		},
	}
}

type fixture struct {
	store      repository.Store
	content    *content.Provider
	service    *ProgressionService
	backup     *BackupService
	progress   *repository.ProgressRepository
	settings   *repository.SettingsRepository
	collection *repository.CollectionRepository
}

func newFixture(t *testing.T, store repository.Store) *fixture {
	t.Helper()
	log := logger.NewNop()
	f := &fixture{
		store:      store,
		content:    content.NewProvider(nil, log, content.WithBundled(testDataset())),
		progress:   repository.NewProgressRepository(store),
		settings:   repository.NewSettingsRepository(store),
		collection: repository.NewCollectionRepository(store),
	}
	f.service = NewProgressionService(f.collection, f.progress, f.settings, f.content, log)
	f.service.SetClock(func() time.Time { return fixedNow })
	f.backup = NewBackupService(f.collection, f.progress, log)
	f.backup.SetClock(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) set(t *testing.T, id string) models.ChallengeSet {
	t.Helper()
	set, ok := f.content.ChallengeSetByID(context.Background(), id)
	if !ok {
		t.Fatalf("unknown set %s", id)
	}
	return set
}

func pokemon(id int, name string) models.Pokemon {
	return models.Pokemon{
		ID:        id,
		Name:      name,
		ImageURL:  fmt.Sprintf("https://img.example/%d.png", id),
		Types:     []string{"electric"},
		Height:    4,
		Weight:    60,
		Abilities: []string{"static"},
		Stats:     []models.PokemonStat{{Name: "hp", Value: 35}},
	}
}

// failingStore rejects every operation
type failingStore struct{}

func (failingStore) fail(op string) error {
	return fmt.Errorf("%w: %s: disk unavailable", repository.ErrStorage, op)
}

func (s failingStore) Put(context.Context, repository.Partition, string, []byte) error {
	return s.fail("put")
}

func (s failingStore) Get(context.Context, repository.Partition, string) ([]byte, bool, error) {
	return nil, false, s.fail("get")
}

func (s failingStore) GetAll(context.Context, repository.Partition) ([]repository.Record, error) {
	return nil, s.fail("get all")
}

func (s failingStore) Delete(context.Context, repository.Partition, string) error {
	return s.fail("delete")
}

func (s failingStore) Clear(context.Context, repository.Partition) error {
	return s.fail("clear")
}

func (s failingStore) Replace(context.Context, repository.Partition, []repository.Record) error {
	return s.fail("replace")
}

func (failingStore) Close() error { return nil }
