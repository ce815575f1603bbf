package form

import "storefront-client/internal/model"

// Auth form field names.
const (
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

const minPasswordLength = 6

// LoginForm is the login form.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the login form.
func (f LoginForm) Validate() Errors {
	errs := Errors{}

	errs.check(FieldEmail, f.Email == "", "Email is required")
	errs.check(FieldEmail, !emailPattern.MatchString(f.Email), "Invalid email address")

	errs.check(FieldPassword, f.Password == "", "Password is required")
	errs.check(FieldPassword, length(f.Password) < minPasswordLength, "Password must be at least 6 characters")

	return errs
}

// Credentials returns the request body for a valid form.
func (f LoginForm) Credentials() model.Credentials {
	return model.Credentials{Email: f.Email, Password: f.Password}
}

// SignupForm is the registration form.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the signup form.
func (f SignupForm) Validate() Errors {
	errs := Errors{}

	errs.check(FieldName, length(f.Name) < 2, "Name must be at least 2 characters")
	errs.check(FieldEmail, !emailPattern.MatchString(f.Email), "Invalid email address")
	errs.check(FieldPassword, length(f.Password) < minPasswordLength, "Password must be at least 6 characters")
	errs.check(FieldConfirmPassword, f.Password != f.ConfirmPassword, "Passwords do not match")

	return errs
}

// Registration returns the request body for a valid form. The
// confirmation never leaves the client.
func (f SignupForm) Registration() model.Registration {
	return model.Registration{Name: f.Name, Email: f.Email, Password: f.Password}
}
