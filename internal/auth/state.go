package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// stateExpiry bounds how long an OAuth2 authorization round-trip may take.
const stateExpiry = 10 * time.Minute

// StateClaims is the signed payload carried through the OAuth2 state
// parameter. LinkUserID is set only for explicit account-linking flows.
type StateClaims struct {
	LinkUserID string `json:"link_user_id,omitempty"`
	Redirect   string `json:"redirect,omitempty"`
	jwt.RegisteredClaims
}

// StateSigner issues and verifies the OAuth2 state parameter as a short-lived
// signed token, so the callback can trust the linking target without server
// side state.
type StateSigner struct {
	secret []byte
}

// NewStateSigner creates a state signer with the given secret.
func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret)}
}

// Sign produces a state token. linkUserID and redirect may be empty.
func (s *StateSigner) Sign(linkUserID, redirect string) (string, error) {
	claims := &StateClaims{
		LinkUserID: linkUserID,
		Redirect:   redirect,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a state token and returns its claims.
func (s *StateSigner) Verify(state string) (*StateClaims, error) {
	token, err := jwt.ParseWithClaims(state, &StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*StateClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid state token")
	}
	return claims, nil
}
