package webhook

import (
	"fmt"

	"github.com/google/go-github/v57/github"
)

// Envelope is a validated webhook tagged with its event type. The payload is
// one of the go-github event structs and can only be read through As, which
// checks the type.
type Envelope struct {
	Type       EventType
	DeliveryID string

	// Sender and Repo are decoded for every event type so that authorship and
	// footers do not depend on the shape of the individual event struct.
	Sender *github.User
	Repo   *github.Repository

	event any
}

// As returns the envelope payload as E, e.g. As[*github.PushEvent](env).
func As[E any](env *Envelope) (E, bool) {
	var zero E
	if env == nil {
		return zero, false
	}
	e, ok := env.event.(E)
	return e, ok
}

func (e *Envelope) String() string {
	if e.Repo != nil {
		return fmt.Sprintf("%s@%s", e.Type, e.Repo.GetFullName())
	}
	return string(e.Type)
}
