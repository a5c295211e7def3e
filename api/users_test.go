package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cookieshop/storefront/api"
	"github.com/cookieshop/storefront/internal/utils"
)

const userFixture = `{
	"id": 42,
	"email": "user@example.com",
	"imie": "Jan",
	"nazwisko": "Kowalski",
	"adres": "ul. Testowa 1",
	"numerTelefonu": "123456789",
	"rola": "USER",
	"zamowieniaIds": [1, 2],
	"koszykId": 7
}`

func TestGetUser(t *testing.T) {
	client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/42", r.URL.Path)
		w.Write([]byte(userFixture))
	})

	user, err := client.GetUser(context.Background(), 42)
	require.NoError(t, err)

	require.Equal(t, int64(42), user.ID)
	require.Equal(t, "Jan", user.FirstName)
	require.Equal(t, "Kowalski", user.LastName)
	require.Equal(t, "123456789", user.Phone)
	require.Equal(t, "USER", user.Role)
	require.Equal(t, []int64{1, 2}, user.OrderIDs)
}

func TestUpdateUser(t *testing.T) {
	t.Run("issues exactly one request", func(t *testing.T) {
		requests := 0
		var gotBody map[string]any
		client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
			requests++
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/api/users/42", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(userFixture))
		})

		_, err := client.UpdateUser(context.Background(), 42, api.UserUpdate{
			Email:     "user@example.com",
			FirstName: "Jan",
			LastName:  "Kowalski",
			Address:   "ul. Nowa 2",
			Phone:     "987654321",
		})
		require.NoError(t, err)
		require.Equal(t, 1, requests)
		require.Equal(t, "ul. Nowa 2", gotBody["adres"])
	})

	t.Run("nil secret is omitted from the body", func(t *testing.T) {
		var gotBody map[string]any
		client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(userFixture))
		})

		_, err := client.UpdateUser(context.Background(), 42, api.UserUpdate{Email: "user@example.com"})
		require.NoError(t, err)
		require.NotContains(t, gotBody, "haslo")
	})

	t.Run("set secret travels under haslo", func(t *testing.T) {
		var gotBody map[string]any
		client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(userFixture))
		})

		_, err := client.UpdateUser(context.Background(), 42, api.UserUpdate{
			Email:  "user@example.com",
			Secret: utils.Ptr("newsecret"),
		})
		require.NoError(t, err)
		require.Equal(t, "newsecret", gotBody["haslo"])
	})
}
