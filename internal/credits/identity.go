package credits

import "strings"

const guestPrefix = "guest:"

// Identity names the owner of a credit pool. Exactly one pool applies to any
// identity: authenticated users draw from the persisted balance, guests from
// the device-scoped counter.
type Identity struct {
	UserID string
	Guest  bool
}

// IdentityFromUserID derives an Identity from the auth middleware's user id,
// which carries a "guest:" prefix for unauthenticated callers.
func IdentityFromUserID(userID string) Identity {
	return Identity{
		UserID: userID,
		Guest:  strings.HasPrefix(userID, guestPrefix),
	}
}
