package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// LoginResponse wraps either a completed login or, when the user has a
// verified TOTP factor, an MFA ticket the client must trade in together
// with a code.
type LoginResponse struct {
	MFARequired bool          `json:"mfa_required"`
	MFATicket   string        `json:"mfa_ticket,omitempty"`
	Auth        *AuthResponse `json:"auth,omitempty"`
}

type MFALoginRequest struct {
	Ticket string `json:"ticket"`
	Code   string `json:"code"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetResponse struct {
	ResetToken string `json:"reset_token"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type MFAEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type MFAVerifyRequest struct {
	Code string `json:"code"`
}

type MFAStatusResponse struct {
	Enrolled bool   `json:"enrolled"`
	Status   string `json:"status,omitempty"`
}
