package service

import "context"

type GoogleProfile struct {
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier turns Google sign-in material into a verified profile.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleProfile, error)
	// ExchangeCode redeems a popup-flow authorization code and verifies the
	// ID token it yields.
	ExchangeCode(ctx context.Context, code string) (*GoogleProfile, error)
}
