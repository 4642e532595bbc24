package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/nandha2804/TMS/internal/auth/domain UserRepository

// UserRepository is the credential store. GetByEmail and GetByID return
// (nil, nil) when no record exists; Create returns ErrEmailAlreadyInUse on a
// duplicate email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	ListAll(ctx context.Context) ([]User, error)
}
