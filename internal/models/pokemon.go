package models

import "time"

// PokemonStat is a single base stat of a creature
type PokemonStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PokemonCries holds the audio cue URLs of a creature
type PokemonCries struct {
	Latest string `json:"latest,omitempty"`
	Legacy string `json:"legacy,omitempty"`
}

// Pokemon is the creature descriptor returned by the creature source
type Pokemon struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	ImageURL    string        `json:"imageUrl"`
	Types       []string      `json:"types"`
	Height      int           `json:"height"`
	Weight      int           `json:"weight"`
	Abilities   []string      `json:"abilities"`
	Stats       []PokemonStat `json:"stats"`
	Cries       *PokemonCries `json:"cries,omitempty"`
	IsLegendary bool          `json:"isLegendary"`
}

// SavedPokemon is a creature in the player's collection
type SavedPokemon struct {
	Pokemon
	SavedAt int64 `json:"savedAt"` // epoch milliseconds
}

// NewSavedPokemon stamps a creature with the time it was saved
func NewSavedPokemon(p Pokemon, at time.Time) SavedPokemon {
	return SavedPokemon{Pokemon: p, SavedAt: at.UnixMilli()}
}
