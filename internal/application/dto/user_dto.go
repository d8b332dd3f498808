package dto

// RegisterRequest body for POST /api/auth/register. Creates the company and
// its first (admin) user in one step.
type RegisterRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token plus the basic identity attached to it.
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}
