package auth

import (
	"errors"
	"strings"
)

// ErrForbidden means the caller is authenticated but does not own the
// resource being mutated.
var ErrForbidden = errors.New("access denied")

// AssertOwner fails unless callerID and ownerID name the same user. IDs are
// compared in canonical string form so values that arrived via different
// routes (a persisted record vs. a token claim) compare equal when they are
// semantically the same.
func AssertOwner(ownerID, callerID string) error {
	if canonicalID(ownerID) != canonicalID(callerID) {
		return ErrForbidden
	}
	return nil
}

func canonicalID(id string) string {
	return strings.TrimSpace(id)
}
