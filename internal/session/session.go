// Package session holds the single bearer token the client authenticates with.
//
// A Store is the only place the token lives. It is written on login, read
// before every authenticated request and cleared on logout. The token is
// opaque: it is never decoded or checked for expiry, and its presence is
// the only signal that the client considers itself authenticated.
package session

import "errors"

// TokenKey is the fixed key the token is persisted under.
const TokenKey = "access_token"

// ErrEmptyToken is returned when storing an empty token.
var ErrEmptyToken = errors.New("session token must not be empty")

// Store reads, writes and clears the session token.
// Writes are immediately visible to subsequent reads.
type Store interface {
	SetToken(token string) error
	GetToken() (string, bool)
	ClearToken() error
}
