package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cookieshop/storefront/validate"
)

func TestRequired(t *testing.T) {
	require.NoError(t, validate.Required("name", "Chocolate chip"))
	require.Error(t, validate.Required("name", ""))
	require.Error(t, validate.Required("name", "   "))
	require.EqualError(t, validate.Required("name", ""), "name is required")
}

func TestPositiveNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"integer", "12", true},
		{"decimal", "12.50", true},
		{"trimmed", " 3.5 ", true},
		{"zero", "0", false},
		{"negative", "-1", false},
		{"not a number", "abc", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.PositiveNumber("price", tc.value)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestNonNegativeNumber(t *testing.T) {
	require.NoError(t, validate.NonNegativeNumber("stock", "0"))
	require.NoError(t, validate.NonNegativeNumber("stock", "7"))
	require.Error(t, validate.NonNegativeNumber("stock", "-1"))
	require.Error(t, validate.NonNegativeNumber("stock", "many"))
}

func TestDigitString(t *testing.T) {
	t.Run("nine digit phone number", func(t *testing.T) {
		require.NoError(t, validate.DigitString("phone", "123456789", 9))
	})

	t.Run("too short", func(t *testing.T) {
		require.Error(t, validate.DigitString("phone", "12345678", 9))
	})

	t.Run("too long", func(t *testing.T) {
		require.Error(t, validate.DigitString("phone", "1234567890", 9))
	})

	t.Run("non digits", func(t *testing.T) {
		require.Error(t, validate.DigitString("phone", "12345678x", 9))
		require.Error(t, validate.DigitString("phone", "12 345 67", 9))
	})
}

func TestFutureDate(t *testing.T) {
	restore := validate.NowFunc
	validate.NowFunc = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { validate.NowFunc = restore })

	t.Run("tomorrow passes", func(t *testing.T) {
		require.NoError(t, validate.FutureDate("expires", "2024-06-16"))
	})

	t.Run("today fails", func(t *testing.T) {
		require.Error(t, validate.FutureDate("expires", "2024-06-15"))
	})

	t.Run("yesterday fails", func(t *testing.T) {
		require.Error(t, validate.FutureDate("expires", "2024-06-14"))
	})

	t.Run("wrong format fails", func(t *testing.T) {
		require.Error(t, validate.FutureDate("expires", "16.06.2024"))
		require.Error(t, validate.FutureDate("expires", "soon"))
	})
}

func TestMinLength(t *testing.T) {
	require.NoError(t, validate.MinLength("password", "secret", 6))
	require.NoError(t, validate.MinLength("password", "longersecret", 6))
	require.Error(t, validate.MinLength("password", "short", 6))
	require.Error(t, validate.MinLength("password", "", 6))
}

func TestEmail(t *testing.T) {
	require.NoError(t, validate.Email("email", "user@example.com"))
	require.Error(t, validate.Email("email", ""))
	require.Error(t, validate.Email("email", "user.example.com"))
	require.Error(t, validate.Email("email", "user@example"))
}

func TestMatchingSecrets(t *testing.T) {
	require.NoError(t, validate.MatchingSecrets("secret123", "secret123"))
	require.Error(t, validate.MatchingSecrets("secret123", "secret124"))
}

func TestForm(t *testing.T) {
	t.Run("valid when no field fails", func(t *testing.T) {
		form := validate.NewForm()
		form.Check("email", validate.Email("email", "user@example.com"))
		form.Check("password", validate.MinLength("password", "secret123", 6))

		require.True(t, form.Valid())
		require.Empty(t, form.Errors())
	})

	t.Run("keeps only the first failure per field", func(t *testing.T) {
		form := validate.NewForm()
		form.Check("phone", validate.Required("phone", ""))
		form.Check("phone", validate.DigitString("phone", "", 9))

		require.False(t, form.Valid())
		require.Equal(t, "phone is required", form.FieldError("phone"))
	})

	t.Run("collects failures across fields", func(t *testing.T) {
		form := validate.NewForm()
		form.Check("email", validate.Email("email", "nope"))
		form.Check("password", validate.MinLength("password", "abc", 6))
		form.Check("name", validate.Required("name", "ok"))

		require.False(t, form.Valid())
		require.Len(t, form.Errors(), 2)
		require.Empty(t, form.FieldError("name"))
	})
}
