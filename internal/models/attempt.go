package models

// MaxAttempts is the number of tries a player gets on each challenge
const MaxAttempts = 3

// ChallengeAttempt is the scoring state of the currently active challenge.
// It is a value type: every transition produces a new attempt.
type ChallengeAttempt struct {
	ChallengeID string `json:"challengeId"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"maxAttempts"`
	Completed   bool   `json:"completed"`
	Success     bool   `json:"success"`
}

// NewChallengeAttempt returns a fresh Active attempt for a challenge
func NewChallengeAttempt(challengeID string) ChallengeAttempt {
	return ChallengeAttempt{
		ChallengeID: challengeID,
		MaxAttempts: MaxAttempts,
	}
}

// Remaining returns how many tries are left
func (a ChallengeAttempt) Remaining() int {
	if a.Completed {
		return 0
	}
	return a.MaxAttempts - a.Attempts
}

// Succeed returns the attempt after a correct answer
func (a ChallengeAttempt) Succeed() ChallengeAttempt {
	a.Attempts++
	a.Completed = true
	a.Success = true
	return a
}

// Miss returns the attempt after a wrong answer. The attempt becomes Failed
// when this miss used the last try.
func (a ChallengeAttempt) Miss() ChallengeAttempt {
	a.Attempts++
	if a.Attempts >= a.MaxAttempts {
		a.Completed = true
		a.Success = false
	}
	return a
}
