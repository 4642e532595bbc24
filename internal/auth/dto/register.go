package dto

// Email carries no shape tag: it is normalized (trimmed, lowercased) before
// the shape check, so raw values like "a@b.com " must reach the service.
type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}
