package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordRequest carries a single password. It is the body of
// POST /auth/setup-master-password, POST /auth/verify-password and
// POST /passwords/{id}/verify.
type PasswordRequest struct {
	Password string `json:"password"`
}
