package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest is the student registration request body.
// @Description Request body for student registration
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_number"`
	RegNumber    string `json:"dcet_reg_number"`
	CollegeName  string `json:"college_name"`
}

// LoginRequest is the student login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLoginRequest is the admin login request body.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest carries the new password for a reset link.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ForgotPasswordRequest carries the address to send a reset link to.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// UserPayload is the user object embedded in auth responses.
type UserPayload struct {
	ID            string `json:"id"`
	Email         string `json:"email,omitempty"`
	Username      string `json:"username"`
	MobileNumber  string `json:"mobile_number,omitempty"`
	RegNumber     string `json:"dcet_reg_number,omitempty"`
	CollegeName   string `json:"college_name,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// AuthResponse is the common success/failure shape for auth operations.
// Business failures are success:false with a message, served with HTTP 200.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *UserPayload `json:"user,omitempty"`
}
