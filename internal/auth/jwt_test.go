package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("secret-a", "u-123", "Carol")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken("secret-a", tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u-123" || claims.Name != "Carol" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatal("expiry not set after issue time")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tok, err := GenerateToken("secret-a", "u-123", "Carol")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("secret-b", tok); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestTokenAlgorithmPinned(t *testing.T) {
	// alg=none style token must be rejected outright
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-123"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("secret-a", raw); err == nil {
		t.Fatal("unsigned token accepted")
	}
}
