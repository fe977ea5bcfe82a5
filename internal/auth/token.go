package auth

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arifwid/blog-management/internal"
)

// Digest turns a password into its storage form: a deterministic 128-bit
// digest rendered as 32 lowercase hex characters. Passwords are only ever
// compared digest to digest.
func Digest(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Claims is the token payload. ExpireTime is an absolute unix timestamp
// checked by the gate, not by the JWT library: the embedded registered
// claims stay empty so signature verification and expiry stay separate.
type Claims struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	ExpireTime int64  `json:"expire_time"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed tokens with a process-wide secret.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenCodec(secret string, validity time.Duration) *TokenCodec {
	if validity <= 0 {
		validity = internal.DefaultTokenTTL
	}
	return &TokenCodec{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
}

// Issue stamps the identity with an absolute expiry and signs it (HS256).
func (c *TokenCodec) Issue(id int64, username string) (string, error) {
	claims := &Claims{
		ID:         id,
		Username:   username,
		ExpireTime: c.now().Add(c.validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and decodes the payload. Expiry is the
// caller's responsibility; compare Claims.ExpireTime against the clock.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, internal.ErrInvalidToken.WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the claims' expiry has lapsed.
func (c *TokenCodec) Expired(claims *Claims) bool {
	return claims.ExpireTime < c.now().Unix()
}
