package dto

import (
	"time"

	"github.com/nandha2804/TMS/internal/auth/domain"
)

// UserOutput is the externally visible shape of an identity record. The
// password hash never leaves the store through this type.
type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserOutput(user *domain.User) UserOutput {
	return UserOutput{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

type TokenPairOutput struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         UserOutput `json:"user"`
}
