package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/service"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// GoogleVerifierImpl validates Google ID tokens against Google's JWKS and
// redeems popup-flow authorization codes (redirect URI "postmessage").
type GoogleVerifierImpl struct {
	clientID string
	keys     jwt.Keyfunc
	oauth    *oauth2.Config
}

func NewGoogleVerifier(ctx context.Context, clientID, clientSecret string) (*GoogleVerifierImpl, error) {
	if clientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID is not configured")
	}
	jwks, err := keyfunc.Get(googleJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("google jwks: %w", err)
	}
	return newGoogleVerifier(clientID, clientSecret, jwks.Keyfunc), nil
}

func newGoogleVerifier(clientID, clientSecret string, keys jwt.Keyfunc) *GoogleVerifierImpl {
	return &GoogleVerifierImpl{
		clientID: clientID,
		keys:     keys,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "postmessage",
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

func (g *GoogleVerifierImpl) VerifyIDToken(ctx context.Context, idToken string) (*service.GoogleProfile, error) {
	claims := &googleClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, g.keys)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("google id token: %w", err)
	}
	if !googleIssuers[claims.Issuer] {
		return nil, fmt.Errorf("google id token: unexpected issuer %q", claims.Issuer)
	}
	if !claims.VerifyAudience(g.clientID, true) {
		return nil, errors.New("google id token: audience mismatch")
	}
	if claims.Email == "" {
		return nil, errors.New("google id token: no email claim")
	}
	return &service.GoogleProfile{
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}

func (g *GoogleVerifierImpl) ExchangeCode(ctx context.Context, code string) (*service.GoogleProfile, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange: %w", err)
	}
	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return nil, errors.New("google code exchange: no id_token in response")
	}
	return g.VerifyIDToken(ctx, idToken)
}
