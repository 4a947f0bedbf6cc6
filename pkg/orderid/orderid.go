// Package orderid generates externally visible order identifiers.
package orderid

import "github.com/google/uuid"

// New returns a new order identifier: two concatenated random UUIDv4 strings,
// giving 256 bits of randomness so collisions are cryptographically negligible.
func New() string {
	return uuid.New().String() + uuid.New().String()
}
