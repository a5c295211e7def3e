package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	errs "github.com/cookieshop/storefront/internal/errors"
)

// OrderStatus is the server-authoritative order state. The client never
// transitions it directly; it only requests cancellation while that is
// still possible.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// CanCancel reports whether the client may request cancellation.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusNew || s == OrderStatusProcessing
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID        int64           `json:"id"`
	Quantity  int             `json:"ilosc"`
	Price     decimal.Decimal `json:"cena"`
	ProductID int64           `json:"produktId"`
	Product   *Product        `json:"produkt"`
}

// Order is an order summary as the backend reports it.
type Order struct {
	ID       int64           `json:"id"`
	PlacedAt DateTime        `json:"datazamowienia"`
	Status   OrderStatus     `json:"status"`
	Total    decimal.Decimal `json:"calkowitaCena"`
	UserID   int64           `json:"uzytkownikId"`
	Address  string          `json:"adres"`
	Phone    string          `json:"numerTelefonu"`
	Items    []OrderItem     `json:"pozycjeZamowienia"`
}

// placeOrderRequest matches the backend's PlaceOrder body: address and phone
// in its own vocabulary, the total under "totalPrice".
type placeOrderRequest struct {
	Address string          `json:"adres"`
	Phone   string          `json:"numerTelefonu"`
	Total   decimal.Decimal `json:"totalPrice"`
}

type statusUpdate struct {
	Status OrderStatus `json:"status"`
}

// ListOrders fetches every order in the system (admin only).
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MyOrders fetches the authenticated user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PlaceOrder turns the current cart into an order. The total is the
// displayed (possibly discounted) total from the cart screen.
func (c *Client) PlaceOrder(ctx context.Context, address, phone string, total decimal.Decimal) (*Order, error) {
	var placed Order
	body := placeOrderRequest{Address: address, Phone: phone, Total: total}
	if err := c.do(ctx, http.MethodPost, "/api/orders/place", body, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

// UpdateOrderStatus sets an order's status (admin only).
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	var updated Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), statusUpdate{Status: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelOrder requests cancellation of an order. Cancellation is only
// requested from NEW or PROCESSING; anything else is rejected client-side
// before a request is made.
func (c *Client) CancelOrder(ctx context.Context, order Order) (*Order, error) {
	if !order.Status.CanCancel() {
		return nil, errs.Wrapf(errs.ErrValidation, "order %d is %s and can no longer be cancelled", order.ID, order.Status)
	}
	var cancelled Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.ID), nil, &cancelled); err != nil {
		return nil, err
	}
	return &cancelled, nil
}
