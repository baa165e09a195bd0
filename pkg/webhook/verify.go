package webhook

import (
	"crypto/hmac"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrMissingSignature  = errors.New("missing webhook signature")
	ErrInvalidSignature  = errors.New("invalid webhook signature")
	ErrPayloadMismatch   = errors.New("signed payload does not match request body")
	ErrAlgorithmMismatch = errors.New("webhook signature algorithm mismatch")
	ErrNoPublicKey       = errors.New("no public key configured")
	ErrNoSecret          = errors.New("no HMAC secret configured")
)

// Verifier checks a webhook body against its signature header.
type Verifier interface {
	// Algorithm is the X-Lago-Signature-Algorithm value this verifier accepts.
	Algorithm() string
	Verify(body []byte, signature string) error
}

// JWTVerifier verifies RS256 tokens signed with the organization's webhook key.
// The token carries the raw payload in its "data" claim.
type JWTVerifier struct {
	Key *rsa.PublicKey
	// Issuer is compared with the "iss" claim when set.
	Issuer string
}

type signedPayload struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

// NewJWTVerifier returns a verifier for key that expects Lago's issuer.
func NewJWTVerifier(key *rsa.PublicKey) JWTVerifier {
	return JWTVerifier{Key: key, Issuer: constants.WebhookIssuer}
}

// Algorithm implements Verifier.
func (v JWTVerifier) Algorithm() string {
	return constants.WebhookAlgorithmJWT
}

// Verify implements Verifier.
func (v JWTVerifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}

	if v.Key == nil {
		return ErrNoPublicKey
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	claims := &signedPayload{}

	token, err := jwt.ParseWithClaims(signature, claims, func(*jwt.Token) (interface{}, error) {
		return v.Key, nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if !token.Valid {
		return ErrInvalidSignature
	}

	if claims.Data != string(body) {
		return ErrPayloadMismatch
	}

	return nil
}

// HMACVerifier verifies base64(HMAC-SHA256(body)) signatures keyed by the
// organization's webhook secret.
type HMACVerifier struct {
	Secret string
}

// Algorithm implements Verifier.
func (v HMACVerifier) Algorithm() string {
	return constants.WebhookAlgorithmHMAC
}

// Verify implements Verifier.
func (v HMACVerifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}

	if v.Secret == "" {
		return ErrNoSecret
	}

	if !hmac.Equal([]byte(Sign(v.Secret, body)), []byte(signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign computes the HMAC signature Lago sends for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
