package audit

import (
	"strings"

	"github.com/google/uuid"
)

// Actor is the request-scoped identity credited with an audited event,
// together with the request provenance. It is assembled by the auth
// middleware and passed explicitly into every write-path call; the audit
// service never reaches into ambient request state.
type Actor struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      string
	IPAddress string
	UserAgent string
}

// Resolved reports whether the actor is usable for attribution.
func (a *Actor) Resolved() bool {
	return a != nil && a.ID != uuid.Nil
}

// DisplayName is the frozen name written on audit entries: trimmed
// first+last, falling back to the email when both are empty.
func (a *Actor) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
	if name == "" {
		return a.Email
	}
	return name
}
