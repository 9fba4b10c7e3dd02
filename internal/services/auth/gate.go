package auth

import "github.com/flotilla/battleship-go/internal/model"

// Outcome is the terminal result of an authorization check
type Outcome int

const (
	// Proceed means the request may reach its handler
	Proceed Outcome = iota
	// RedirectToLogin means the caller is unauthenticated
	RedirectToLogin
	// Deny means the caller is authenticated but lacks the required role
	Deny
)

// Decision is the tagged result of a gate check. Identity is populated only
// when the outcome is Proceed.
type Decision struct {
	Outcome  Outcome
	Identity model.Identity
	Message  string
}

// Check runs the authorization gate for a session token: authentication
// first, then the admin role when required. Denials carry a human-readable
// message and never reveal whether the requested resource exists.
func (s *Service) Check(token string, requireAdmin bool) Decision {
	session, err := s.ValidateSession(token)
	if err != nil {
		return Decision{
			Outcome: RedirectToLogin,
			Message: "Please log in to continue.",
		}
	}

	if requireAdmin && !session.Identity.IsAdmin {
		return Decision{
			Outcome: Deny,
			Message: "You must be an admin to do that.",
		}
	}

	return Decision{
		Outcome:  Proceed,
		Identity: session.Identity,
	}
}
