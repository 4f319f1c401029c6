package dto

// Data Transfer Objects for the signup / confirmation-code / token flow

// SignupRequest: payload for user registration
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the registration payload back to the caller.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a token
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the minted bearer access token
type TokenResponse struct {
	Token string `json:"token"`
}

// ResetRequest: payload for resending a confirmation code
type ResetRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}
