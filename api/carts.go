package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cookieshop/storefront/cart"
)

// CartItem is one line of the server-side cart.
type CartItem struct {
	ID        int64           `json:"id"`
	Quantity  int             `json:"ilosc"`
	Price     decimal.Decimal `json:"cena"`
	ProductID int64           `json:"produktId"`
	Product   *Product        `json:"produkt"`
}

// CartView is the server's answer to every cart operation: the full line
// list and the recomputed total.
type CartView struct {
	ID    int64           `json:"id"`
	Items []CartItem      `json:"pozycjeKoszyka"`
	Total decimal.Decimal `json:"cenaCalkowita"`
}

// Lines converts the response into the cart package's line model for the
// client-side arithmetic.
func (v *CartView) Lines() []cart.Line {
	lines := make([]cart.Line, 0, len(v.Items))
	for _, item := range v.Items {
		line := cart.Line{
			ProductID: item.ProductID,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.ProductID = item.Product.ID
			line.Name = item.Product.Name
			line.Stock = item.Product.Stock
		}
		lines = append(lines, line)
	}
	return lines
}

type cartChange struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// MyCart fetches the authenticated user's cart.
func (c *Client) MyCart(ctx context.Context) (*CartView, error) {
	var view CartView
	if err := c.do(ctx, http.MethodGet, "/api/carts/my", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// AddToCart puts quantity of a product into the cart.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*CartView, error) {
	var view CartView
	if err := c.do(ctx, http.MethodPost, "/api/carts/add", cartChange{ProductID: productID, Quantity: quantity}, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateCartItem sets the quantity of a product already in the cart. Bounds
// (at least 1, at most stock) are checked by the cart package before this
// call goes out.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (*CartView, error) {
	var view CartView
	if err := c.do(ctx, http.MethodPut, "/api/carts/update", cartChange{ProductID: productID, Quantity: quantity}, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// RemoveFromCart drops a product from the cart.
func (c *Client) RemoveFromCart(ctx context.Context, productID int64) (*CartView, error) {
	var view CartView
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/carts/remove/%d", productID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
