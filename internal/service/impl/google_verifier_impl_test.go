package impl

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signGoogleToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestGoogleVerifyIDToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa: %v", err)
	}
	v := newGoogleVerifier("client-1", "secret", func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil })

	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss":            "https://accounts.google.com",
			"aud":            "client-1",
			"exp":            time.Now().Add(time.Hour).Unix(),
			"email":          "g@example.com",
			"email_verified": true,
			"name":           "G User",
			"picture":        "https://lh3.googleusercontent.com/p",
		}
	}

	profile, err := v.VerifyIDToken(context.Background(), signGoogleToken(t, key, base()))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if profile.Email != "g@example.com" || profile.Name != "G User" || !profile.EmailVerified {
		t.Fatalf("unexpected profile %+v", profile)
	}

	bad := map[string]func(jwt.MapClaims){
		"wrong audience": func(c jwt.MapClaims) { c["aud"] = "someone-else" },
		"wrong issuer":   func(c jwt.MapClaims) { c["iss"] = "https://evil.example" },
		"expired":        func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() },
		"no email":       func(c jwt.MapClaims) { delete(c, "email") },
	}
	for name, mutate := range bad {
		c := base()
		mutate(c)
		if _, err := v.VerifyIDToken(context.Background(), signGoogleToken(t, key, c)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGoogleVerifyRejectsForeignKey(t *testing.T) {
	trusted, _ := rsa.GenerateKey(rand.Reader, 2048)
	attacker, _ := rsa.GenerateKey(rand.Reader, 2048)
	v := newGoogleVerifier("client-1", "", func(*jwt.Token) (interface{}, error) { return &trusted.PublicKey, nil })

	tok := signGoogleToken(t, attacker, jwt.MapClaims{
		"iss": "accounts.google.com", "aud": "client-1", "email": "x@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := v.VerifyIDToken(context.Background(), tok); err == nil {
		t.Fatal("token signed by an unknown key must be rejected")
	}
}
