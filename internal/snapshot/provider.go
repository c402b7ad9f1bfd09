// Package snapshot fetches read-only domain snapshots from the remote
// event store.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/event-ops/internal/model"
)

// AuthError indicates that authentication has failed or expired against
// the event store. It is returned by the client when a 401 response is
// received.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Provider delivers a point-in-time view of the domain records for one
// event, scoped to one user. Implementations must never mutate returned
// snapshots after handing them out.
type Provider interface {
	// Fetch retrieves the shifts, signups, teams, and live event for
	// the configured event id on behalf of userID.
	Fetch(ctx context.Context, userID string) (*model.Snapshot, error)
}
