package credits

import "errors"

var (
	// ErrNotFound indicates the identity has no balance row.
	ErrNotFound = errors.New("balance not found")
	// ErrGuestPurchase indicates a guest tried to buy credits.
	ErrGuestPurchase = errors.New("guests cannot purchase credits")
)
