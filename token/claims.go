// Package token extracts claims from compact signed access tokens without
// verifying their signature. Signature verification happens server-side on
// every protected call; nothing in this package is a security control, the
// claims are used purely to drive client-side display and routing decisions.
package token

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-reviews-client/internal/utils"
	"github.com/pkg/errors"
)

// ErrMalformedToken is returned when a token cannot be decoded: it lacks a
// claims segment, the segment is not valid base64url, or the payload is not
// valid JSON.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the decoded payload of an access token. Absent claims degrade to
// zero values, never to an error.
type Claims struct {
	Subject string   // "sub" claim, the username
	Scopes  []string // "scopes" claim, capability markers such as "users:read"
}

// Decode parses the claims segment of a three-segment compact token.
// The signature segment is ignored.
func Decode(rawToken string) (Claims, error) {
	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, errors.Wrap(ErrMalformedToken, err.Error())
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.Wrap(ErrMalformedToken, "error extracting claims")
	}

	sub, _ := claims["sub"].(string)

	var scopes []string
	if claimScopes, ok := claims["scopes"].([]any); ok {
		scopes = utils.ToStringSlice(claimScopes)
	}

	return Claims{Subject: sub, Scopes: scopes}, nil
}
