package services

import "pos-kemasan/models"

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID uint
	Role   models.Role
}
