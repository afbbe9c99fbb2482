package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSignatureInvalid covers wrong keys, wrong algorithms and
	// malformed tokens alike. Callers that only need pass/fail can
	// treat it and ErrTokenExpired the same way.
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
)

// Claims is the identity a token proves: the bare user ID.
type Claims struct {
	UserID string
}

// Codec signs and verifies HS256 bearer tokens. The secret is read-only
// after construction, so a single Codec is safe for concurrent use.
type Codec struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl, timeFunc: time.Now}
}

// Encode mints a token embedding userID, expiring ttl from now.
func (c *Codec) Encode(userID string) (string, error) {
	now := c.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and expiry of raw and returns the
// embedded claims. Expired tokens fail with ErrTokenExpired; every
// other failure collapses into ErrSignatureInvalid.
func (c *Codec) Decode(raw string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(c.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrSignatureInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return Claims{}, ErrSignatureInvalid
	}
	return Claims{UserID: claims.Subject}, nil
}
