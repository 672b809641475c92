package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"pokelearn/internal/logger"
	"pokelearn/internal/models"
	"pokelearn/internal/repository"
)

// LegendaryThreshold is the point interval at which a legendary reward unlocks
const LegendaryThreshold = 100

// ContentProvider is the read side of the quiz content the service needs
type ContentProvider interface {
	ChallengeByID(ctx context.Context, id string) (models.Challenge, bool)
	ChallengeSetByID(ctx context.Context, id string) (models.ChallengeSet, bool)
	RandomChallenge(ctx context.Context, subject models.Subject, difficulty models.Difficulty) (models.Challenge, bool)
}

// State is a point-in-time copy of the session state
type State struct {
	Initialized           bool
	Settings              models.Settings
	Progress              models.UserProgress
	CurrentChallenge      *models.Challenge
	CurrentAttempt        *models.ChallengeAttempt
	Collection            []models.SavedPokemon
	LastRewardPokemon     *models.Pokemon
	SelectedChallengeSet  *models.ChallengeSet
	CurrentChallengeIndex int
	SelectedDifficulty    *models.Difficulty
}

// ProgressionService owns the session state of one player: the active
// challenge and its attempt, the traversal through a challenge set, and the
// durable progress, settings and collection. Every mutation that changes
// durable state is written through before the call returns.
type ProgressionService struct {
	collectionRepo *repository.CollectionRepository
	progressRepo   *repository.ProgressRepository
	settingsRepo   *repository.SettingsRepository
	content        ContentProvider
	log            *logger.Logger
	now            func() time.Time

	mu    sync.Mutex
	state State
}

// NewProgressionService creates a new progression service with default state
func NewProgressionService(
	collectionRepo *repository.CollectionRepository,
	progressRepo *repository.ProgressRepository,
	settingsRepo *repository.SettingsRepository,
	content ContentProvider,
	log *logger.Logger,
) *ProgressionService {
	return &ProgressionService{
		collectionRepo: collectionRepo,
		progressRepo:   progressRepo,
		settingsRepo:   settingsRepo,
		content:        content,
		log:            log,
		now:            time.Now,
		state: State{
			Settings:   models.DefaultSettings(),
			Progress:   models.DefaultProgress(),
			Collection: []models.SavedPokemon{},
		},
	}
}

// SetClock replaces the time source used for savedAt stamps
func (s *ProgressionService) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Initialize loads progress, settings and collection from storage. Missing
// records keep their defaults; a storage failure leaves the whole session on
// defaults with an empty collection.
func (s *ProgressionService) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, settings, collection, err := s.load(ctx)
	if err != nil {
		s.log.Error("failed to load saved state, starting from defaults", "error", err)
		s.state.Progress = models.DefaultProgress()
		s.state.Settings = models.DefaultSettings()
		s.state.Collection = []models.SavedPokemon{}
		s.state.Initialized = true
		return
	}

	s.state.Progress = progress
	s.state.Settings = settings
	s.state.Collection = collection
	s.state.Initialized = true
	s.log.Debug("session initialized",
		"points", progress.TotalPoints,
		"collection", len(collection),
	)
}

func (s *ProgressionService) load(ctx context.Context) (models.UserProgress, models.Settings, []models.SavedPokemon, error) {
	progress, found, err := s.progressRepo.Get(ctx)
	if err != nil {
		return progress, models.Settings{}, nil, err
	}
	if !found {
		progress = models.DefaultProgress()
	}

	settings, found, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return progress, settings, nil, err
	}
	if !found {
		settings = models.DefaultSettings()
	}

	collection, err := s.collectionRepo.GetAll(ctx)
	if err != nil {
		return progress, settings, nil, err
	}
	return progress, settings, collection, nil
}

// Snapshot returns a copy of the current state
func (s *ProgressionService) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Progress = s.state.Progress.Clone()
	st.Collection = slices.Clone(s.state.Collection)
	st.CurrentChallenge = clonePtr(s.state.CurrentChallenge)
	st.CurrentAttempt = clonePtr(s.state.CurrentAttempt)
	st.LastRewardPokemon = clonePtr(s.state.LastRewardPokemon)
	st.SelectedChallengeSet = clonePtr(s.state.SelectedChallengeSet)
	st.SelectedDifficulty = clonePtr(s.state.SelectedDifficulty)
	return st
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Progress returns a copy of the current progress
func (s *ProgressionService) Progress() models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Progress.Clone()
}

// Settings returns the current settings
func (s *ProgressionService) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// Collection returns a copy of the in-memory collection
func (s *ProgressionService) Collection() []models.SavedPokemon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Collection)
}

// CurrentAttempt returns the attempt of the active challenge, if any
func (s *ProgressionService) CurrentAttempt() (models.ChallengeAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentAttempt == nil {
		return models.ChallengeAttempt{}, false
	}
	return *s.state.CurrentAttempt, true
}

// CurrentChallenge returns the active challenge, if any
func (s *ProgressionService) CurrentChallenge() (models.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentChallenge == nil {
		return models.Challenge{}, false
	}
	return *s.state.CurrentChallenge, true
}

// activate makes c the current challenge with a fresh attempt.
// Must be called with mu held.
func (s *ProgressionService) activate(c models.Challenge) {
	attempt := models.NewChallengeAttempt(c.ID)
	s.state.CurrentChallenge = &c
	s.state.CurrentAttempt = &attempt
	s.state.LastRewardPokemon = nil
}

// LoadChallengeAt jumps to position index of a set. Nothing changes when the
// set or the challenge at that position cannot be resolved.
func (s *ProgressionService) LoadChallengeAt(ctx context.Context, setID string, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.content.ChallengeSetByID(ctx, setID)
	if !ok {
		return false
	}
	challengeID, ok := set.ChallengeIDAt(index)
	if !ok {
		return false
	}
	challenge, ok := s.content.ChallengeByID(ctx, challengeID)
	if !ok {
		return false
	}

	s.state.SelectedChallengeSet = &set
	s.state.SelectedDifficulty = nil
	s.state.CurrentChallengeIndex = index
	s.activate(challenge)
	s.log.Debug("challenge loaded", "set", set.ID, "index", index, "challenge", challenge.ID)
	return true
}

// StartChallengePath begins a traversal of set from its first challenge. The
// set stays selected even when the first challenge cannot be resolved; the
// return value reports whether a challenge is active.
func (s *ProgressionService) StartChallengePath(ctx context.Context, set models.ChallengeSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	difficulty := set.Difficulty
	s.state.SelectedChallengeSet = &set
	s.state.SelectedDifficulty = &difficulty
	s.state.CurrentChallengeIndex = 0
	s.state.CurrentChallenge = nil
	s.state.CurrentAttempt = nil
	s.state.LastRewardPokemon = nil

	firstID, ok := set.ChallengeIDAt(0)
	if !ok {
		return false
	}
	challenge, ok := s.content.ChallengeByID(ctx, firstID)
	if !ok {
		s.log.Warn("first challenge of set not found", "set", set.ID, "challenge", firstID)
		return false
	}
	s.activate(challenge)
	s.log.Debug("challenge path started", "set", set.ID, "challenges", set.Len())
	return true
}

// StartChallenge activates a random challenge outside of any set
func (s *ProgressionService) StartChallenge(ctx context.Context, subject models.Subject, difficulty models.Difficulty) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.content.RandomChallenge(ctx, subject, difficulty)
	if !ok {
		return false
	}
	s.activate(challenge)
	return true
}

// ClearChallengeSet drops all traversal state
func (s *ProgressionService) ClearChallengeSet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearTraversal()
}

func (s *ProgressionService) clearTraversal() {
	s.state.SelectedChallengeSet = nil
	s.state.SelectedDifficulty = nil
	s.state.CurrentChallenge = nil
	s.state.CurrentAttempt = nil
	s.state.LastRewardPokemon = nil
	s.state.CurrentChallengeIndex = 0
}

// normalizeAnswer trims, NFC-normalizes and case-folds an answer
func normalizeAnswer(answer string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(answer)))
}

// crossedMilestone reports whether going from oldPoints to newPoints passed a
// multiple of LegendaryThreshold
func crossedMilestone(oldPoints, newPoints int) bool {
	return oldPoints/LegendaryThreshold < newPoints/LegendaryThreshold
}

// SubmitAnswer scores answer against the active challenge and reports whether
// it was correct. It is a no-op returning false when no challenge is active or
// the attempt is already complete. Terminal outcomes are persisted before it
// returns.
func (s *ProgressionService) SubmitAnswer(ctx context.Context, answer string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, attempt := s.state.CurrentChallenge, s.state.CurrentAttempt
	if challenge == nil || attempt == nil || attempt.Completed {
		return false, nil
	}

	if normalizeAnswer(answer) == normalizeAnswer(challenge.CorrectAnswer) {
		next := attempt.Succeed()
		s.state.CurrentAttempt = &next

		oldPoints := s.state.Progress.TotalPoints
		newPoints := oldPoints + challenge.Points
		s.state.Progress.TotalPoints = newPoints
		s.state.Progress.ChallengesCompleted++
		s.state.Progress.LegendariesUnlocked = crossedMilestone(oldPoints, newPoints)

		s.log.Debug("challenge succeeded",
			"challenge", challenge.ID,
			"attempts", next.Attempts,
			"points", newPoints,
			"legendary", s.state.Progress.LegendariesUnlocked,
		)
		return true, s.saveProgress(ctx)
	}

	next := attempt.Miss()
	s.state.CurrentAttempt = &next
	if !next.Completed {
		return false, nil
	}

	s.state.Progress.ChallengesFailed++
	s.log.Debug("challenge failed", "challenge", challenge.ID)
	return false, s.saveProgress(ctx)
}

// AdvanceToNextChallenge moves to the next challenge of the selected set and
// reports whether one is now active. Moving past the last challenge records
// the set as completed.
func (s *ProgressionService) AdvanceToNextChallenge(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.state.SelectedChallengeSet
	if set == nil {
		return false, nil
	}

	nextIndex := s.state.CurrentChallengeIndex + 1
	nextID, ok := set.ChallengeIDAt(nextIndex)
	if !ok {
		if s.state.Progress.HasCompletedSet(set.ID) {
			return false, nil
		}
		s.state.Progress.CompletedChallengeSets = append(s.state.Progress.CompletedChallengeSets, set.ID)
		s.log.Info("challenge set completed", "set", set.ID)
		return false, s.saveProgress(ctx)
	}

	challenge, ok := s.content.ChallengeByID(ctx, nextID)
	if !ok {
		s.log.Warn("next challenge not found", "set", set.ID, "challenge", nextID)
		return false, nil
	}
	s.state.CurrentChallengeIndex = nextIndex
	s.activate(challenge)
	return true, nil
}

// IsSetUnlocked reports whether every prerequisite of set has been completed
func (s *ProgressionService) IsSetUnlocked(set models.ChallengeSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range set.Prerequisites {
		if !s.state.Progress.HasCompletedSet(id) {
			return false
		}
	}
	return true
}

// ClaimPokemon records the reward on offer without saving it
func (s *ProgressionService) ClaimPokemon(p models.Pokemon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastRewardPokemon = &p
}

func (s *ProgressionService) hasPokemon(id int) bool {
	return slices.ContainsFunc(s.state.Collection, func(p models.SavedPokemon) bool {
		return p.ID == id
	})
}

// SavePokemonToCollection adds a creature to the collection. Creatures already
// collected are ignored. Saving consumes a pending legendary unlock.
func (s *ProgressionService) SavePokemonToCollection(ctx context.Context, p models.Pokemon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasPokemon(p.ID) {
		return nil
	}

	saved := models.NewSavedPokemon(p, s.now())
	if err := s.collectionRepo.Save(ctx, saved); err != nil {
		return fmt.Errorf("failed to save pokemon %d: %w", p.ID, err)
	}

	s.state.Collection = append(s.state.Collection, saved)
	s.state.Progress.PokemonCollected++
	s.state.Progress.LegendariesUnlocked = false
	s.log.Debug("pokemon collected", "id", p.ID, "name", p.Name)
	return s.saveProgress(ctx)
}

// RemovePokemonFromCollection deletes a creature; unknown ids are ignored
func (s *ProgressionService) RemovePokemonFromCollection(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove pokemon %d: %w", id, err)
	}
	s.state.Collection = slices.DeleteFunc(s.state.Collection, func(p models.SavedPokemon) bool {
		return p.ID == id
	})
	return nil
}

// SetUserName stores the player's display name
func (s *ProgressionService) SetUserName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Progress.UserName = &name
	return s.saveProgress(ctx)
}

// CompleteTutorial saves the starter creature and marks the tutorial done
func (s *ProgressionService) CompleteTutorial(ctx context.Context, p models.Pokemon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := models.NewSavedPokemon(p, s.now())
	if err := s.collectionRepo.Save(ctx, saved); err != nil {
		return fmt.Errorf("failed to save starter pokemon %d: %w", p.ID, err)
	}

	s.state.Collection = slices.DeleteFunc(s.state.Collection, func(c models.SavedPokemon) bool {
		return c.ID == p.ID
	})
	s.state.Collection = append(s.state.Collection, saved)
	s.state.Progress.TutorialCompleted = true
	s.state.Progress.PokemonCollected = 1
	s.state.LastRewardPokemon = &p
	return s.saveProgress(ctx)
}

// UpdateSettings applies a partial settings update
func (s *ProgressionService) UpdateSettings(ctx context.Context, patch models.SettingsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings = patch.Apply(s.state.Settings)
	if err := s.settingsRepo.Save(ctx, s.state.Settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// ResetProgress empties the collection and returns progress to its defaults.
// Settings are kept.
func (s *ProgressionService) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.collectionRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	s.state.Progress = models.DefaultProgress()
	s.state.Collection = []models.SavedPokemon{}
	s.clearTraversal()
	s.log.Info("progress reset")
	return s.saveProgress(ctx)
}

// saveProgress must be called with mu held.
func (s *ProgressionService) saveProgress(ctx context.Context) error {
	if err := s.progressRepo.Save(ctx, s.state.Progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
