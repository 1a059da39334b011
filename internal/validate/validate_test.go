package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegister() RegisterInput {
	return RegisterInput{
		Name:            "John Doe",
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
	}
}

func TestRegisterValid(t *testing.T) {
	require.NoError(t, Register(validRegister()))
}

func TestRegisterRejectsBadShapes(t *testing.T) {
	cases := map[string]func(*RegisterInput){
		"missing name":       func(in *RegisterInput) { in.Name = "" },
		"name too long":      func(in *RegisterInput) { in.Name = strings.Repeat("a", 31) },
		"username too short": func(in *RegisterInput) { in.Username = "abcd" },
		"username too long":  func(in *RegisterInput) { in.Username = strings.Repeat("a", 31) },
		"missing email":      func(in *RegisterInput) { in.Email = "" },
		"bad email":          func(in *RegisterInput) { in.Email = "not-an-email" },
		"confirm mismatch":   func(in *RegisterInput) { in.ConfirmPassword = "Different1!" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validRegister()
			mutate(&in)
			require.Error(t, Register(in))
		})
	}
}

// length limits count characters, not bytes
func TestRegisterCountsRunes(t *testing.T) {
	in := validRegister()
	in.Name = strings.Repeat("ж", 16) // 32 bytes, 16 characters
	require.NoError(t, Register(in))

	in = validRegister()
	in.Name = strings.Repeat("ж", 31)
	require.Error(t, Register(in))

	in = validRegister()
	in.Username = strings.Repeat("ж", 20) // 40 bytes, 20 characters
	require.NoError(t, Register(in))

	in = validRegister()
	in.Username = strings.Repeat("ж", 31)
	require.Error(t, Register(in))
}

func TestPasswordPolicy(t *testing.T) {
	bad := []string{
		"short1!",
		"nouppercase1!",
		"NOLOWERCASE1!",
		"NoDigits!!",
		"NoSymbols11",
		"Has Spaces1!",
		"WayTooLongPassword12345!",
	}
	for _, p := range bad {
		require.Error(t, Password(p), "password %q should be rejected", p)
	}

	good := []string{"Passw0rd!", "Ab1@Ab1@", "xY9?xY9?xY9?"}
	for _, p := range good {
		require.NoError(t, Password(p), "password %q should be accepted", p)
	}
}

func TestLogin(t *testing.T) {
	require.NoError(t, Login(LoginInput{Username: "johndoe", Password: "Passw0rd!"}))
	// password shape only checked when present
	require.NoError(t, Login(LoginInput{Username: "johndoe"}))
	require.Error(t, Login(LoginInput{Username: "", Password: "Passw0rd!"}))
	require.Error(t, Login(LoginInput{Username: "johndoe", Password: "bad"}))
}
