package api

import (
	"context"
	"fmt"
	"net/http"
)

// Category is a catalog category.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nazwa"`
	Description string  `json:"opis"`
	ProductIDs  []int64 `json:"produktyIds,omitempty"`
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category (admin only).
func (c *Client) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	var created Category
	body := Category{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/categories", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory replaces a category (admin only).
func (c *Client) UpdateCategory(ctx context.Context, id int64, name, description string) (*Category, error) {
	var updated Category
	body := Category{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes a category (admin only).
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil)
}
