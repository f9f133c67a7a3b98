package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// CSRFHeader carries the token on state-changing requests.
const CSRFHeader = "X-CSRF-Token"

var ErrInvalidState = errors.New("invalid oauth state")

// Signer derives HMAC-SHA256 tokens from a server secret. Tokens for
// different purposes never collide because the purpose is mixed into the MAC.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) mac(purpose, value string) string {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(purpose))
	m.Write([]byte{0})
	m.Write([]byte(value))
	return hex.EncodeToString(m.Sum(nil))
}

// CSRFToken returns the token bound to a session. It is deterministic, so
// any replica holding the same secret can check it.
func (s *Signer) CSRFToken(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	return s.mac("csrf", sessionID)
}

// ValidCSRF reports whether token belongs to sessionID.
func (s *Signer) ValidCSRF(sessionID, token string) bool {
	if sessionID == "" || token == "" {
		return false
	}
	return hmac.Equal([]byte(s.CSRFToken(sessionID)), []byte(token))
}

// NewState returns a random OAuth state value signed with the secret.
func (s *Signer) NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	nonce := base64.RawURLEncoding.EncodeToString(b)
	return nonce + "." + s.mac("oauth-state", nonce), nil
}

// VerifyState checks a state value produced by NewState.
func (s *Signer) VerifyState(state string) error {
	nonce, sig, ok := strings.Cut(state, ".")
	if !ok || nonce == "" {
		return ErrInvalidState
	}
	if !hmac.Equal([]byte(s.mac("oauth-state", nonce)), []byte(sig)) {
		return ErrInvalidState
	}
	return nil
}
