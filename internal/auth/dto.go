package auth

import "github.com/arifwid/blog-management/internal"

// LoginDTO is the transport shape accepted by the login endpoint.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return internal.NewRequiredFieldError("username")
	}
	if d.Password == "" {
		return internal.NewRequiredFieldError("password")
	}
	return nil
}
