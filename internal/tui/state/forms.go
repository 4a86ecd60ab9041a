// Package state holds the values bound to the TUI's huh forms.
package state

// Auth form modes
const (
	AuthModeLogin    = "login"
	AuthModeRegister = "register"
)

// AuthFormModel backs the sign-in / create-account form.
type AuthFormModel struct {
	Mode     string
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Registering reports whether the form is creating an account.
func (f *AuthFormModel) Registering() bool {
	return f.Mode == AuthModeRegister
}

// ClearSecrets empties the password fields after a failed attempt.
func (f *AuthFormModel) ClearSecrets() {
	f.Password, f.Confirm = "", ""
}
