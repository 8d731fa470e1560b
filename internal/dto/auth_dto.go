package dto

// LoginRequest carries the credential payload for token issuance.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse returns the signed token and the authenticated profile.
type LoginResponse struct {
	Token                  string          `json:"token"`
	Profile                ProfileResponse `json:"profile"`
	ChangePasswordRequired bool            `json:"change_password_required"`
}

// ChangePasswordRequest carries a password rotation payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
