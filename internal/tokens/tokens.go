package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTTL  = 30 * time.Minute
	RefreshTTL = 60 * time.Minute
)

// ErrInvalidToken covers bad signature, malformed input, wrong token
// kind and elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies the access/refresh token pair. The two
// kinds use independent secrets, so neither can forge the other.
type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
}

func NewCodec(accessSecret, refreshSecret []byte) *Codec {
	return &Codec{AccessSecret: accessSecret, RefreshSecret: refreshSecret}
}

func (c *Codec) SignAccessToken(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.AccessSecret)
}

func (c *Codec) SignRefreshToken(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTTL)),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.RefreshSecret)
}

func (c *Codec) VerifyAccessToken(raw string) (uint, error) {
	return verify(raw, c.AccessSecret)
}

func (c *Codec) VerifyRefreshToken(raw string) (uint, error) {
	return verify(raw, c.RefreshSecret)
}

func verify(raw string, secret []byte) (uint, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
