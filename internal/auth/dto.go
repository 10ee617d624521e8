package auth

// RegisterRequest is the sign-up payload. Email is kept exactly as supplied.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Avatar    string `json:"avatar,omitempty"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest asks for a reset code to be mailed to Email.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest redeems a reset code for a new password.
type ResetPasswordRequest struct {
	ResetCode          string `json:"passwordResetCode" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,max=72"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,max=72"`
}
