package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/cookieshop/storefront/cart"
)

// DiscountCode is a server-issued discount descriptor.
type DiscountCode struct {
	ID      int64             `json:"id"`
	Code    string            `json:"kod"`
	Kind    cart.DiscountKind `json:"typ"`
	Value   decimal.Decimal   `json:"wartosc"`
	Expires Date              `json:"dataWaznosci"`
}

// Descriptor converts the wire value into the cart's discount model.
func (d DiscountCode) Descriptor() cart.Descriptor {
	return cart.Descriptor{
		Code:    d.Code,
		Kind:    d.Kind,
		Value:   d.Value,
		Expires: d.Expires.Time,
	}
}

// NewDiscountCode carries the admin form fields for a discount code.
type NewDiscountCode struct {
	Code    string            `json:"kod"`
	Kind    cart.DiscountKind `json:"typ"`
	Value   decimal.Decimal   `json:"wartosc"`
	Expires Date              `json:"dataWaznosci"`
}

// ListDiscountCodes fetches every code (admin only).
func (c *Client) ListDiscountCodes(ctx context.Context) ([]DiscountCode, error) {
	var codes []DiscountCode
	if err := c.do(ctx, http.MethodGet, "/api/discount-codes", nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// LookupDiscountCode resolves a code the user typed into the cart screen.
// The server validates existence and expiry; an expired or unknown code
// comes back as an error with the server's message.
func (c *Client) LookupDiscountCode(ctx context.Context, code string) (*DiscountCode, error) {
	var found DiscountCode
	path := "/api/discount-codes/code/" + url.PathEscape(code)
	if err := c.do(ctx, http.MethodGet, path, nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// CreateDiscountCode adds a code (admin only).
func (c *Client) CreateDiscountCode(ctx context.Context, code NewDiscountCode) (*DiscountCode, error) {
	var created DiscountCode
	if err := c.do(ctx, http.MethodPost, "/api/discount-codes", code, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDiscountCode replaces a code (admin only).
func (c *Client) UpdateDiscountCode(ctx context.Context, id int64, code NewDiscountCode) (*DiscountCode, error) {
	var updated DiscountCode
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/discount-codes/%d", id), code, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDiscountCode removes a code (admin only).
func (c *Client) DeleteDiscountCode(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/discount-codes/%d", id), nil, nil)
}
