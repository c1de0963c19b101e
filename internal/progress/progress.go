// Package progress folds completed sessions into a user's running totals.
package progress

import "github.com/abhisek/quizdeck/internal/session"

// Mode distinguishes signed-in users from guests.
type Mode string

const (
	ModeAuthenticated Mode = "authenticated"
	ModeGuest         Mode = "guest"
)

// GuestLogin is the login recorded for guest profiles and attempts.
const GuestLogin = "guest"

// Profile is a user's cumulative progress.
type Profile struct {
	Mode      Mode   `json:"mode"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`

	Answered int `json:"answered"`
	Correct  int `json:"correct"`
	Streak   int `json:"streak"`

	// Completion is the correct ratio of the most recent session, in [0, 1].
	Completion float64 `json:"completion"`
}

// Accuracy returns the all-time correct ratio, or 0 before any answers.
func (p Profile) Accuracy() float64 {
	if p.Answered == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Answered)
}

// IsGuest reports whether the profile belongs to a guest.
func (p Profile) IsGuest() bool { return p.Mode == ModeGuest }

// Apply adds a session's answers to prior. Completion reflects this session
// alone and the streak is passed through. A session with no answers leaves
// the profile unchanged.
func Apply(prior Profile, answers []session.AnswerRecord) Profile {
	if len(answers) == 0 {
		return prior
	}

	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}

	next := prior
	next.Answered += len(answers)
	next.Correct += correct
	next.Completion = float64(correct) / float64(len(answers))
	return next
}

// Authenticated builds the profile for a fresh sign-in. Counters are
// restored from stored when it belongs to the same login; the streak is
// never below 1.
func Authenticated(login, name, avatarURL string, stored *Profile) Profile {
	p := Profile{
		Mode:      ModeAuthenticated,
		Login:     login,
		Name:      name,
		AvatarURL: avatarURL,
	}
	if stored != nil && stored.Login == login {
		p.Answered = stored.Answered
		p.Correct = stored.Correct
		p.Completion = stored.Completion
		p.Streak = stored.Streak
	}
	if p.Name == "" {
		p.Name = login
	}
	p.Streak = max(p.Streak, 1)
	return p
}

// Guest builds a fresh guest profile.
func Guest() Profile {
	return Profile{
		Mode:   ModeGuest,
		Login:  GuestLogin,
		Name:   "Guest",
		Streak: 1,
	}
}
