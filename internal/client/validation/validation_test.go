package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"empty", "", true},
		{"no at sign", "userexample.com", true},
		{"no domain", "user@", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Email(tc.email)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoginInput(t *testing.T) {
	require.NoError(t, LoginInput("user@example.com", "whatever"))
	require.ErrorIs(t, LoginInput("user@example.com", ""), ErrInvalid)
	require.ErrorIs(t, LoginInput("bad", "pw"), ErrInvalid)
}

func TestRegistrationInput(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"ok", "Str0ng!pass", false},
		{"too short", "S0r!t", true},
		{"no upper", "str0ng!pass", true},
		{"no lower", "STR0NG!PASS", true},
		{"no digit", "Strong!pass", true},
		{"no special", "Str0ngpass", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := RegistrationInput("user@example.com", tc.password)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	require.NoError(t, NewPassword("secret1", "secret1"))
	require.ErrorIs(t, NewPassword("short", "short"), ErrInvalid)
	require.ErrorIs(t, NewPassword("secret1", "secret2"), ErrInvalid)
}

func TestCode(t *testing.T) {
	require.NoError(t, Code("123456"))
	require.ErrorIs(t, Code("12345"), ErrInvalid)
	require.ErrorIs(t, Code("1234567"), ErrInvalid)
	require.ErrorIs(t, Code("12a456"), ErrInvalid)

	require.True(t, errors.Is(Code(""), ErrInvalid))
}
