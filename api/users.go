package api

import (
	"context"
	"fmt"
	"net/http"
)

// User is the profile screen's view of an account.
type User struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"imie"`
	LastName  string  `json:"nazwisko"`
	Address   string  `json:"adres"`
	Phone     string  `json:"numerTelefonu"`
	Role      string  `json:"rola"`
	OrderIDs  []int64 `json:"zamowieniaIds,omitempty"`
	CartID    int64   `json:"koszykId,omitempty"`
}

// UserUpdate carries the profile form. A nil Secret leaves the password
// unchanged.
type UserUpdate struct {
	Email     string  `json:"email"`
	FirstName string  `json:"imie"`
	LastName  string  `json:"nazwisko"`
	Address   string  `json:"adres"`
	Phone     string  `json:"numerTelefonu"`
	Secret    *string `json:"haslo,omitempty"`
}

// GetUser fetches a profile. Users can read their own; admins can read any.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser submits the profile form. Exactly one request is issued per
// call; validation happens before, in the validate package.
func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
