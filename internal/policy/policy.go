// Package policy decides whether a caller may modify a resource.
package policy

import (
	"errors"

	"levelup/backend/internal/models"
)

var (
	ErrForbidden       = errors.New("only the owner can modify this resource")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
)

// Owned is implemented by records that have a single owning user.
type Owned interface {
	OwnerID() uint
}

// Authorize allows the caller to modify the resource only if they own it.
func Authorize(caller *models.User, resource Owned) error {
	if caller == nil || caller.ID == 0 {
		return ErrUnauthenticated
	}
	if resource.OwnerID() != caller.ID {
		return ErrForbidden
	}
	return nil
}
