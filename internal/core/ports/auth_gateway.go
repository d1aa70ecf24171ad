package ports

import "context"

// LoginResult is the backend's answer to a successful credential exchange.
type LoginResult struct {
	Role string `json:"role"`
}

// RegisterPayload is the role-tagged body for the polymorphic registration
// endpoint. AccountType discriminates which of the optional fields apply.
type RegisterPayload struct {
	AccountType string `json:"accountType" validate:"required,oneof=student teacher parent"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`

	// student
	ClassName   string `json:"className,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`

	// teacher / parent
	Phone string `json:"phone,omitempty"`

	// parent
	StudentIDs []int64 `json:"studentIds,omitempty"`
}

// RegisterResult carries the identifier of the newly created account.
type RegisterResult struct {
	ID int64 `json:"id"`
}

// AuthGateway is the only component allowed to exchange credentials with the
// school backend. It never touches session state; writing the session after
// a successful login belongs to the session service alone.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Register(ctx context.Context, p RegisterPayload) (RegisterResult, error)
	AccountType(ctx context.Context, username string) (string, error)
}
