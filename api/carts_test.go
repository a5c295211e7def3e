package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cookieshop/storefront/api"
)

const cartFixture = `{
	"id": 7,
	"pozycjeKoszyka": [
		{
			"id": 101,
			"ilosc": 2,
			"cena": 12.50,
			"produktId": 1,
			"produkt": {
				"id": 1,
				"nazwa": "Ciastko czekoladowe",
				"opis": "Klasyk",
				"gramatura": 80,
				"zdjecie": "czekoladowe.jpg",
				"iloscNaStanie": 5,
				"cena": 12.50
			}
		},
		{
			"id": 102,
			"ilosc": 3,
			"cena": 25.00,
			"produktId": 2,
			"produkt": null
		}
	],
	"cenaCalkowita": 100.00
}`

func TestMyCart(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Write([]byte(cartFixture))
	})

	view, err := client.MyCart(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, "/api/carts/my", gotPath)

	require.Equal(t, int64(7), view.ID)
	require.Len(t, view.Items, 2)
	require.True(t, decimal.RequireFromString("100.00").Equal(view.Total))
	require.Equal(t, "Ciastko czekoladowe", view.Items[0].Product.Name)
	require.Equal(t, 2, view.Items[0].Quantity)
}

func TestCartView_Lines(t *testing.T) {
	var view api.CartView
	require.NoError(t, json.Unmarshal([]byte(cartFixture), &view))

	lines := view.Lines()
	require.Len(t, lines, 2)

	require.Equal(t, int64(1), lines[0].ProductID)
	require.Equal(t, "Ciastko czekoladowe", lines[0].Name)
	require.Equal(t, 5, lines[0].Stock)
	require.Equal(t, 2, lines[0].Quantity)
	require.True(t, decimal.RequireFromString("12.50").Equal(lines[0].UnitPrice))

	// a line without an embedded product still carries id, price and quantity
	require.Equal(t, int64(2), lines[1].ProductID)
	require.Empty(t, lines[1].Name)
	require.Zero(t, lines[1].Stock)
	require.Equal(t, 3, lines[1].Quantity)
}

func TestCartChanges(t *testing.T) {
	type recorded struct {
		method, path string
		body         map[string]any
	}
	var got recorded
	client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
		got = recorded{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		w.Write([]byte(cartFixture))
	})

	t.Run("add", func(t *testing.T) {
		_, err := client.AddToCart(context.Background(), 1, 2)
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, got.method)
		require.Equal(t, "/api/carts/add", got.path)
		require.Equal(t, map[string]any{"productId": float64(1), "quantity": float64(2)}, got.body)
	})

	t.Run("update", func(t *testing.T) {
		_, err := client.UpdateCartItem(context.Background(), 1, 4)
		require.NoError(t, err)
		require.Equal(t, http.MethodPut, got.method)
		require.Equal(t, "/api/carts/update", got.path)
		require.Equal(t, map[string]any{"productId": float64(1), "quantity": float64(4)}, got.body)
	})

	t.Run("remove", func(t *testing.T) {
		_, err := client.RemoveFromCart(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, http.MethodDelete, got.method)
		require.Equal(t, "/api/carts/remove/1", got.path)
	})
}
