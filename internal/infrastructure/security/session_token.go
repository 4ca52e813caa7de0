package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"learnhub/internal/domain"
)

const sessionTokenType = "session"

// SessionTokens signs the dashboard session id carried in the visitor's
// cookie. It identifies a browser, not a user.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the wall clock used to sign and check expiry.
func (m *SessionTokens) WithClock(now func() time.Time) *SessionTokens {
	m.now = now
	return m
}

func (m *SessionTokens) TTL() time.Duration {
	return m.ttl
}

func (m *SessionTokens) Generate(sessionID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sessionID,
		"exp":  m.now().Add(m.ttl).Unix(),
		"type": sessionTokenType,
	})
	return t.SignedString(m.secret)
}

// Validate returns the session id of a well-formed, unexpired token.
func (m *SessionTokens) Validate(tokenStr string) (string, error) {
	id, _, err := m.parse(tokenStr)
	return id, err
}

// Renew validates tokenStr and, once less than half of the TTL is left,
// signs a fresh token for the same session. renewed is empty otherwise.
func (m *SessionTokens) Renew(tokenStr string) (id, renewed string, err error) {
	id, exp, err := m.parse(tokenStr)
	if err != nil {
		return "", "", err
	}
	if exp.Sub(m.now()) >= m.ttl/2 {
		return id, "", nil
	}
	renewed, err = m.Generate(id)
	if err != nil {
		return "", "", fmt.Errorf("renew session: %w", err)
	}
	return id, renewed, nil
}

func (m *SessionTokens) parse(tokenStr string) (string, time.Time, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", time.Time{}, domain.ErrInvalidSession
	}
	if typ, _ := claims["type"].(string); typ != sessionTokenType {
		return "", time.Time{}, fmt.Errorf("%w: wrong token type %q", domain.ErrInvalidSession, typ)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", time.Time{}, fmt.Errorf("%w: missing subject", domain.ErrInvalidSession)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", time.Time{}, fmt.Errorf("%w: missing expiry", domain.ErrInvalidSession)
	}
	return sub, exp.Time, nil
}
