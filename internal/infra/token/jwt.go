// Package token issues and decodes the HS256 bearer tokens used by the
// authentication stage. Decode failures always collapse into
// domain.ErrUnauthorized; callers never learn which check tripped.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/domain"
)

const defaultClockSkew = 60 * time.Second

type Manager struct {
	secret    []byte
	ttl       time.Duration
	clockSkew time.Duration
	now       func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	m := &Manager{
		secret:    []byte(secret),
		ttl:       ttl,
		clockSkew: defaultClockSkew,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func NewManagerFromConfig(cfg config.Config) (*Manager, error) {
	if strings.TrimSpace(cfg.AuthTokenSecret) == "" {
		return nil, errors.New("AUTH_TOKEN_SECRET is required")
	}
	return NewManager(cfg.AuthTokenSecret, cfg.TokenTTL())
}

// Issue signs a token carrying the username as subject.
func (m *Manager) Issue(username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}
	now := m.now()
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	claims := map[string]any{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(claimsJSON)
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(m.sign(signingInput)), nil
}

// Decode verifies the token and returns its subject.
func (m *Manager) Decode(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.ErrUnauthorized
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", domain.ErrUnauthorized
	}
	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	claimsBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return "", domain.ErrUnauthorized
	}
	if alg, _ := header["alg"].(string); alg != "HS256" {
		return "", domain.ErrUnauthorized
	}
	signingInput := parts[0] + "." + parts[1]
	if !hmac.Equal(signature, m.sign(signingInput)) {
		return "", domain.ErrUnauthorized
	}
	var claims map[string]any
	if err := json.Unmarshal(claimsBytes, &claims); err != nil {
		return "", domain.ErrUnauthorized
	}
	if err := m.validateClaims(claims); err != nil {
		return "", domain.ErrUnauthorized
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domain.ErrUnauthorized
	}
	return subject, nil
}

func (m *Manager) sign(signingInput string) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

func (m *Manager) validateClaims(claims map[string]any) error {
	now := m.now()
	exp, ok := parseNumericDate(claims["exp"])
	if !ok {
		return errors.New("exp claim required")
	}
	if now.After(exp.Add(m.clockSkew)) {
		return errors.New("token expired")
	}
	if nbf, ok := parseNumericDate(claims["nbf"]); ok {
		if now.Add(m.clockSkew).Before(nbf) {
			return errors.New("token not yet valid")
		}
	}
	return nil
}

func parseNumericDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	default:
		return time.Time{}, false
	}
}
