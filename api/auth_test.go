package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/cookieshop/storefront/internal/errors"
)

func TestLogin(t *testing.T) {
	t.Run("returns the raw token", func(t *testing.T) {
		var gotBody map[string]any
		client := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/login", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(`{"token":"abc.def.ghi"}`))
		})

		token, err := client.Login(context.Background(), "user@example.com", "secret123")
		require.NoError(t, err)
		require.Equal(t, "abc.def.ghi", token)

		// the backend names the password field "haslo"
		require.Equal(t, "user@example.com", gotBody["email"])
		require.Equal(t, "secret123", gotBody["haslo"])
	})

	t.Run("bad credentials map to unauthorized", func(t *testing.T) {
		client := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Bledne dane logowania"}`))
		})

		_, err := client.Login(context.Background(), "user@example.com", "wrong")
		require.ErrorIs(t, err, errs.ErrUnauthorized)
		require.Contains(t, err.Error(), "Bledne dane logowania")
	})
}

func TestRegister(t *testing.T) {
	t.Run("posts credentials", func(t *testing.T) {
		var gotBody map[string]any
		client := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/register", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
		})

		require.NoError(t, client.Register(context.Background(), "new@example.com", "secret123"))
		require.Equal(t, "new@example.com", gotBody["email"])
	})

	t.Run("duplicate email maps to validation", func(t *testing.T) {
		client := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Email jest juz zajety"}`))
		})

		err := client.Register(context.Background(), "taken@example.com", "secret123")
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
