package models

import "slices"

// UserProgress is the durable aggregate of a player's achievements
type UserProgress struct {
	TotalPoints            int      `json:"totalPoints"`
	ChallengesCompleted    int      `json:"challengesCompleted"`
	ChallengesFailed       int      `json:"challengesFailed"`
	PokemonCollected       int      `json:"pokemonCollected"`
	LegendariesUnlocked    bool     `json:"legendariesUnlocked"`
	TutorialCompleted      bool     `json:"tutorialCompleted"`
	UserName               *string  `json:"userName"`
	CompletedChallengeSets []string `json:"completedChallengeSets"`
}

// DefaultProgress returns the zero-state progress of a new player
func DefaultProgress() UserProgress {
	return UserProgress{CompletedChallengeSets: []string{}}
}

// Clone returns a deep copy so callers cannot alias the set list
func (p UserProgress) Clone() UserProgress {
	if p.UserName != nil {
		name := *p.UserName
		p.UserName = &name
	}
	if p.CompletedChallengeSets == nil {
		p.CompletedChallengeSets = []string{}
	} else {
		p.CompletedChallengeSets = slices.Clone(p.CompletedChallengeSets)
	}
	return p
}

// HasCompletedSet reports whether the set id is recorded as completed
func (p UserProgress) HasCompletedSet(setID string) bool {
	return slices.Contains(p.CompletedChallengeSets, setID)
}

// DisplayName returns the user name or an empty string
func (p UserProgress) DisplayName() string {
	if p.UserName == nil {
		return ""
	}
	return *p.UserName
}
