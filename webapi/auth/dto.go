package auth

// RegisterInput represents the request body for user registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a registered user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
