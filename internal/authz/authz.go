// Package authz holds the single ownership rule applied to every mutation
// of user-owned data: only the recorded owner may change or remove it.
package authz

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the requester does not own the resource
var ErrForbidden = errors.New("forbidden: not the owner of this resource")

// Owned is implemented by anything with a recorded owner.
type Owned interface {
	OwnerID() uuid.UUID
}

// Authorize returns ErrForbidden unless requester owns resource.
// A nil resource or a zero requester never matches.
func Authorize(resource Owned, requester uuid.UUID) error {
	if resource == nil || requester == uuid.Nil {
		return ErrForbidden
	}
	if resource.OwnerID() != requester {
		return ErrForbidden
	}
	return nil
}
