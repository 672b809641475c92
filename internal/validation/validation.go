package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"pokelearn/internal/models"
)

// MaxNameLength is the longest player name accepted, in characters
const MaxNameLength = 30

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateName checks a player name and returns it trimmed
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)}
	}
	return name, nil
}

// ValidateGrade checks that a grade is between 1 and 5
func ValidateGrade(grade int) (models.Grade, error) {
	g := models.Grade(grade)
	if !g.Valid() {
		return 0, ValidationError{Field: "grade", Message: fmt.Sprintf("grade %d must be between 1 and 5", grade)}
	}
	return g, nil
}

var difficulties = []models.Difficulty{
	models.DifficultyEasy,
	models.DifficultyMedium,
	models.DifficultyHard,
}

// ValidateDifficulty checks a difficulty name, accepting any letter case
func ValidateDifficulty(difficulty string) (models.Difficulty, error) {
	for _, d := range difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(difficulty)) {
			return d, nil
		}
	}
	return "", ValidationError{Field: "difficulty", Message: fmt.Sprintf("%q must be one of %v", difficulty, difficulties)}
}

var subjects = []models.Subject{
	models.SubjectItalian,
	models.SubjectMath,
	models.SubjectEnglish,
}

// ValidateSubject checks a subject name, accepting any letter case
func ValidateSubject(subject string) (models.Subject, error) {
	i := slices.IndexFunc(subjects, func(s models.Subject) bool {
		return strings.EqualFold(string(s), strings.TrimSpace(subject))
	})
	if i < 0 {
		return "", ValidationError{Field: "subject", Message: fmt.Sprintf("%q must be one of %v", subject, subjects)}
	}
	return subjects[i], nil
}
