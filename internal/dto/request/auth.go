package request

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest falls back to the refresh cookie when Refresh is empty.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// VerifyRequest falls back to the access cookie when Token is empty.
type VerifyRequest struct {
	Token string `json:"token"`
}
