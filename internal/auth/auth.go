package auth

import "github.com/golang-jwt/jwt/v5"

// Authenticator supplies the stable user identity the cart and order layers
// use as their opaque scoping key.
type Authenticator interface {
	GenerateTokens(userID int64) (string, string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
	ValidateRefreshToken(token string) (*jwt.Token, error)
}
