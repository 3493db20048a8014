// Package token implements the signed, time-limited, purpose-scoped tokens
// used for access, email verification and password reset.
//
// A Signer is parameterized by a purpose and a salt. The salt is appended to
// the signing key so that tokens issued for one purpose never verify under a
// Signer for another, and the purpose is additionally carried as a claim and
// checked on Verify. Access tokens use an empty salt, which keeps them
// verifiable with the raw SECRET_KEY by standard JWT tooling.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. Each purpose gets its own Signer instance.
const (
	PurposeAccess      = "access"
	PurposeVerifyEmail = "verify-email"
	PurposeReset       = "password-reset"
)

// Salts for the non-access purposes. Appended to the signing key.
const (
	SaltVerifyEmail = "verify-email-salt"
	SaltReset       = "password-reset-salt"
)

// ErrInvalidToken is returned by Verify for any rejected token. Signature
// mismatch, malformed payload, wrong purpose and elapsed expiry all collapse
// into this one error so callers cannot distinguish the sub-cases.
var ErrInvalidToken = errors.New("invalid or expired token")

// Signer issues and verifies tokens for a single purpose.
type Signer struct {
	key     []byte
	alg     string
	method  jwt.SigningMethod
	purpose string
	ttl     time.Duration
}

// NewSigner creates a Signer for the given purpose. Only HMAC algorithms are
// accepted; the signing key is secret with salt appended.
func NewSigner(secret, salt, algorithm, purpose string, ttl time.Duration) (*Signer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC", algorithm)
	}
	return &Signer{
		key:     append([]byte(secret), salt...),
		alg:     algorithm,
		method:  method,
		purpose: purpose,
		ttl:     ttl,
	}, nil
}

// Issue creates a signed token for subject using the Signer's default TTL.
// It returns the encoded token and its jti.
func (s *Signer) Issue(subject string) (string, string, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

// IssueWithTTL creates a signed token for subject with an explicit TTL.
func (s *Signer) IssueWithTTL(subject string, ttl time.Duration) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":     subject,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
		"jti":     jti,
		"purpose": s.purpose,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, jti, nil
}

// Verify validates the signature, expiry and purpose of a token and returns
// its subject and jti. All failures are reported as ErrInvalidToken.
func (s *Signer) Verify(tokenStr string) (string, string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{s.alg}))
	if err != nil || !tok.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != s.purpose {
		return "", "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", "", ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)
	return sub, jti, nil
}
