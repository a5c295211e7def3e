package session

import (
	"strconv"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/cookieshop/storefront/gate"
	errs "github.com/cookieshop/storefront/internal/errors"
	"github.com/cookieshop/storefront/internal/utils"
)

// Identity is the client's decoded view of the backend's token payload.
// It is never fetched independently: everything here comes out of the JWT.
type Identity struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Roles []gate.Role `json:"roles"`
}

// HasRole reports whether the identity's role set contains the given role.
func (i *Identity) HasRole(role gate.Role) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DecodeIdentity extracts the identity from a bearer token without verifying
// its signature. The client holds no key material; the backend verifies the
// token on every request, the client only needs the payload for display and
// role gating. A malformed token yields ErrInvalidToken, never a panic.
func DecodeIdentity(rawToken string) (*Identity, error) {
	if rawToken == "" {
		return nil, errs.ErrNoToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errs.Wrapf(errs.ErrInvalidToken, "parse token: %s", err.Error())
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errs.Wrapf(errs.ErrInvalidToken, "extract claims")
	}

	email, _ := claims["sub"].(string)

	identity := &Identity{
		ID:    claimID(claims),
		Email: email,
		Roles: gate.ParseRoles(claimAuthorities(claims)),
	}
	return identity, nil
}

// claimID reads the numeric user ID, tolerating the number/string ambiguity
// of JSON claims.
func claimID(claims jwtlib.MapClaims) int64 {
	switch v := claims["id"].(type) {
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

// claimAuthorities reads the roles claim. The backend emits
// [{"authority":"ROLE_ADMIN"}, ...]; plain string entries are accepted too.
func claimAuthorities(claims jwtlib.MapClaims) []string {
	rolesClaim, ok := claims["roles"].([]any)
	if !ok {
		return nil
	}

	authorities := make([]string, 0, len(rolesClaim))
	for _, entry := range rolesClaim {
		if e, ok := entry.(map[string]any); ok {
			if a, ok := e["authority"].(string); ok {
				authorities = append(authorities, a)
			}
		}
	}
	if len(authorities) == 0 {
		// some issuers emit roles as plain strings
		authorities = utils.ToStringSlice(rolesClaim)
	}
	return authorities
}
