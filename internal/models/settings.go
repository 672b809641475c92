package models

// Settings holds the player's preferences
type Settings struct {
	Grade        Grade      `json:"grade"`
	Difficulty   Difficulty `json:"difficulty"`
	SoundEnabled bool       `json:"soundEnabled"`
	Language     string     `json:"language"`
}

// DefaultSettings returns the settings of a new player
func DefaultSettings() Settings {
	return Settings{
		Grade:        2,
		Difficulty:   DifficultyEasy,
		SoundEnabled: true,
		Language:     "it",
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	Grade        *Grade
	Difficulty   *Difficulty
	SoundEnabled *bool
	Language     *string
}

// Apply returns s with the non-nil patch fields applied
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Grade != nil {
		s.Grade = *p.Grade
	}
	if p.Difficulty != nil {
		s.Difficulty = *p.Difficulty
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	return s
}
