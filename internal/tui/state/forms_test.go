package state

import "testing"

func TestAuthFormModel(t *testing.T) {
	f := &AuthFormModel{Mode: AuthModeLogin, Password: "secret", Confirm: "secret"}
	if f.Registering() {
		t.Error("login mode reported as registering")
	}
	f.Mode = AuthModeRegister
	if !f.Registering() {
		t.Error("register mode not reported")
	}
	f.ClearSecrets()
	if f.Password != "" || f.Confirm != "" {
		t.Errorf("secrets kept: %+v", f)
	}
}
