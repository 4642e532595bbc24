package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshOutput struct {
	AccessToken string `json:"access_token"`
}
