package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cookieshop/storefront/api"
)

func TestListProducts(t *testing.T) {
	client := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "nazwa": "Ciastko czekoladowe", "opis": "Klasyk", "gramatura": 80, "zdjecie": "czekoladowe.jpg", "iloscNaStanie": 5, "cena": 12.50, "kategorie": [{"id": 1, "nazwa": "Czekoladowe"}]},
			{"id": 2, "nazwa": "Owsiane", "iloscNaStanie": 0, "cena": 25.00}
		]`))
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	require.Equal(t, "Ciastko czekoladowe", products[0].Name)
	require.Equal(t, 5, products[0].Stock)
	require.True(t, decimal.RequireFromString("12.50").Equal(products[0].Price))
	require.Len(t, products[0].Categories, 1)
	require.Equal(t, "Czekoladowe", products[0].Categories[0].Name)

	require.Zero(t, products[1].Stock)
}

func TestCreateProduct_Multipart(t *testing.T) {
	var gotFields map[string][]string
	var gotImage string
	client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = r.MultipartForm.Value
		if files := r.MultipartForm.File["zdjecie"]; len(files) > 0 {
			gotImage = files[0].Filename
		}
		w.Write([]byte(`{"id": 10, "nazwa": "Maslane"}`))
	})

	created, err := client.CreateProduct(context.Background(), api.NewProduct{
		Name:        "Maslane",
		Description: "Kruche",
		Price:       decimal.RequireFromString("9.99"),
		Weight:      decimal.NewFromInt(60),
		Stock:       12,
		CategoryIDs: []int64{1, 3},
	}, strings.NewReader("fake image bytes"), "maslane.jpg")
	require.NoError(t, err)
	require.Equal(t, int64(10), created.ID)

	require.Equal(t, []string{"Maslane"}, gotFields["nazwa"])
	require.Equal(t, []string{"Kruche"}, gotFields["opis"])
	require.Equal(t, []string{"9.99"}, gotFields["cena"])
	require.Equal(t, []string{"60"}, gotFields["gramatura"])
	require.Equal(t, []string{"12"}, gotFields["iloscNaStanie"])
	require.Equal(t, []string{"1", "3"}, gotFields["kategorieIds"])
	require.Equal(t, "maslane.jpg", gotImage)
}

func TestUpdateProduct_NoImage(t *testing.T) {
	var gotPath string
	var hadImage bool
	client := newTestClient(t, staticSource("token"), func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		hadImage = len(r.MultipartForm.File["zdjecie"]) > 0
		w.Write([]byte(`{"id": 10}`))
	})

	_, err := client.UpdateProduct(context.Background(), 10, api.NewProduct{Name: "Maslane"}, nil, "")
	require.NoError(t, err)
	require.Equal(t, "/api/products/10", gotPath)
	require.False(t, hadImage, "a nil image must not send a file part")
}

func TestImageURL(t *testing.T) {
	client := api.New("http://localhost:8080/", nil)
	require.Equal(t, "http://localhost:8080/uploads/images/czekoladowe.jpg", client.ImageURL("czekoladowe.jpg"))
}
