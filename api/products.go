package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

// Product is the catalog view of a product. Field names on the wire are the
// backend's.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nazwa"`
	Description string          `json:"opis"`
	Weight      decimal.Decimal `json:"gramatura"`
	Image       string          `json:"zdjecie"`
	Stock       int             `json:"iloscNaStanie"`
	Price       decimal.Decimal `json:"cena"`
	Categories  []Category      `json:"kategorie"`
}

// NewProduct carries the admin form fields for creating or updating a
// product. The image travels separately as a multipart file part.
type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Weight      decimal.Decimal
	Stock       int
	CategoryIDs []int64
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a catalog entry (admin only). image may be nil when
// the product has no picture.
func (c *Client) CreateProduct(ctx context.Context, p NewProduct, image io.Reader, imageName string) (*Product, error) {
	form, contentType, err := productForm(p, image, imageName)
	if err != nil {
		return nil, err
	}
	var created Product
	if err := c.doMultipart(ctx, http.MethodPost, "/api/products", form, contentType, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces a catalog entry (admin only). A nil image keeps the
// existing picture.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p NewProduct, image io.Reader, imageName string) (*Product, error) {
	form, contentType, err := productForm(p, image, imageName)
	if err != nil {
		return nil, err
	}
	var updated Product
	if err := c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), form, contentType, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a catalog entry (admin only).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// ImageURL resolves a product's image file against the backend's static
// upload path.
func (c *Client) ImageURL(imageFile string) string {
	return c.baseURL + "/uploads/images/" + imageFile
}

// productForm encodes the admin product form as multipart, matching the
// backend's field names.
func productForm(p NewProduct, image io.Reader, imageName string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"nazwa":         p.Name,
		"opis":          p.Description,
		"cena":          p.Price.String(),
		"gramatura":     p.Weight.String(),
		"iloscNaStanie": strconv.Itoa(p.Stock),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("encode product form: %w", err)
		}
	}
	for _, id := range p.CategoryIDs {
		if err := w.WriteField("kategorieIds", strconv.FormatInt(id, 10)); err != nil {
			return nil, "", fmt.Errorf("encode product form: %w", err)
		}
	}

	if image != nil {
		part, err := w.CreateFormFile("zdjecie", imageName)
		if err != nil {
			return nil, "", fmt.Errorf("encode product image: %w", err)
		}
		if _, err := io.Copy(part, image); err != nil {
			return nil, "", fmt.Errorf("encode product image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode product form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
