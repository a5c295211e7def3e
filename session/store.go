package session

// TokenKey is the fixed key under which the bearer token is persisted,
// mirroring the browser client's localStorage key.
const TokenKey = "token"

// Store is a small local key-value store for session persistence. Get returns
// an empty string for a missing key; only Set and Delete mutate it.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
