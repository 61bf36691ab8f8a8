package server

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	flashCookie = "staffdesk_flash"
	flashTTL    = time.Minute
	flashIssuer = "staffdesk"
)

// Flash is a one-shot message shown on the page a redirect lands on.
// MessageID is localized at render time; Text is shown as-is (e.g. a
// backend error message).
type Flash struct {
	Kind      string `json:"kind"` // "success" or "error"
	MessageID string `json:"mid,omitempty"`
	Text      string `json:"txt,omitempty"`
}

type flashClaims struct {
	Flash
	jwt.RegisteredClaims
}

// flasher signs flash cookies as HS256 JWTs so the page cannot be made to
// display arbitrary text through a forged cookie.
type flasher struct {
	key []byte
}

// newFlasher derives the signing key from the configured secret.
func newFlasher(secret string) (*flasher, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("staffdesk flash cookie v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return &flasher{key: key}, nil
}

func (f *flasher) sign(fl Flash, now time.Time) (string, error) {
	claims := flashClaims{
		Flash: fl,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    flashIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.key)
}

func (f *flasher) parse(token string) (*Flash, error) {
	claims := &flashClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return f.key, nil
	}, jwt.WithIssuer(flashIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("flash token: %w", err)
	}
	return &claims.Flash, nil
}

// set stores fl for the next request.
func (f *flasher) set(c *gin.Context, fl Flash) {
	token, err := f.sign(fl, time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, token, int(flashTTL.Seconds()), "/", "", false, true)
}

// pop returns the pending flash, if any valid one exists, and clears it.
func (f *flasher) pop(c *gin.Context) *Flash {
	token, err := c.Cookie(flashCookie)
	if err != nil || token == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	fl, err := f.parse(token)
	if err != nil {
		_ = c.Error(err)
		return nil
	}
	return fl
}
