package model

// LoginRequest carries the operator credentials checked by the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
