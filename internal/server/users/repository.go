package users

import (
	"context"
)

type Repository interface {
	// Create assigns the user id.
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	ListByReferrer(ctx context.Context, referrerID string) ([]*User, error)
}
