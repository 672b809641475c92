package models

// Subject is one of the school subjects a challenge belongs to
type Subject string

const (
	SubjectItalian Subject = "Italiano"
	SubjectMath    Subject = "Matematica"
	SubjectEnglish Subject = "Inglese"
)

// Difficulty is the difficulty tier of a challenge or challenge set
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Facile"
	DifficultyMedium Difficulty = "Medio"
	DifficultyHard   Difficulty = "Difficile"
)

// Grade is the school grade, 1 through 5
type Grade int

// Valid reports whether the grade is within 1-5
func (g Grade) Valid() bool {
	return g >= 1 && g <= 5
}

// ChallengeType is how a challenge is presented and answered
type ChallengeType string

const (
	ChallengeMultipleChoice ChallengeType = "multiple-choice"
	ChallengeTrueFalse      ChallengeType = "true-false"
	ChallengeFillBlank      ChallengeType = "fill-blank"
)

// ChallengeMedia is an image or audio attachment shown with a question
type ChallengeMedia struct {
	Type string `json:"type" yaml:"type"` // "image" | "audio"
	URL  string `json:"url" yaml:"url"`
	Alt  string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// Challenge is a single quiz question. It is read-only content.
type Challenge struct {
	ID            string           `json:"id" yaml:"id"`
	Subject       Subject          `json:"subject" yaml:"subject"`
	Grade         Grade            `json:"grade" yaml:"grade"`
	Difficulty    Difficulty       `json:"difficulty" yaml:"difficulty"`
	Type          ChallengeType    `json:"type" yaml:"type"`
	Question      string           `json:"question" yaml:"question"`
	Options       []string         `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string           `json:"correctAnswer" yaml:"correctAnswer"`
	Points        int              `json:"points" yaml:"points"`
	Explanation   string           `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Hint          string           `json:"hint,omitempty" yaml:"hint,omitempty"`
	Media         []ChallengeMedia `json:"media,omitempty" yaml:"media,omitempty"`
	Tags          []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	IsPublished   bool             `json:"isPublished,omitempty" yaml:"isPublished,omitempty"`
}

// ChallengeSet is an ordered, named group of challenges forming one learning path
type ChallengeSet struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Description      string     `json:"description" yaml:"description"`
	Grade            Grade      `json:"grade" yaml:"grade"`
	Subject          Subject    `json:"subject" yaml:"subject"`
	Difficulty       Difficulty `json:"difficulty" yaml:"difficulty"`
	Icon             string     `json:"icon" yaml:"icon"`
	Color            string     `json:"color" yaml:"color"`
	ChallengeIDs     []string   `json:"challengeIds" yaml:"challengeIds"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty" yaml:"estimatedMinutes,omitempty"`
	Prerequisites    []string   `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	IsPublished      bool       `json:"isPublished,omitempty" yaml:"isPublished,omitempty"`
}

// Len returns the number of challenges in the set
func (s *ChallengeSet) Len() int {
	return len(s.ChallengeIDs)
}

// ChallengeIDAt returns the challenge id at position i, or false when out of range
func (s *ChallengeSet) ChallengeIDAt(i int) (string, bool) {
	if i < 0 || i >= len(s.ChallengeIDs) {
		return "", false
	}
	return s.ChallengeIDs[i], true
}
