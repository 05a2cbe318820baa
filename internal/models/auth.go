package models

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Optional plan preselection from the signup form; checkout is a
	// separate call, so this only has to be a known plan id.
	PlanID string `json:"plan_id" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	Member Member `json:"member"`
}

type BalanceResponse struct {
	Email     string `json:"email"`
	Credits   int64  `json:"credits"`
	Unlimited bool   `json:"unlimited"`
}

// DeductRequest charges a feature against the member's balance before
// the feature itself runs.
type DeductRequest struct {
	Feature string `json:"feature" validate:"required"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
}

type NotifyRequest struct {
	Message string `json:"message" validate:"required"`
}
