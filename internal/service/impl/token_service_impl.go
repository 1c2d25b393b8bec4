package impl

import (
	"errors"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	SigningKey []byte // HS256 secret
	// Lifetimes per role; Default covers any other role.
	SuperAdminTTL time.Duration
	AdminTTL      time.Duration
	UserTTL       time.Duration
	DefaultTTL    time.Duration
}

type SessionTokenClaims struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg, now: time.Now}
}

func (t *TokenServiceImpl) TTL(role domain.Role) time.Duration {
	switch role {
	case domain.RoleSuperAdmin:
		return t.cfg.SuperAdminTTL
	case domain.RoleAdmin:
		return t.cfg.AdminTTL
	case domain.RoleUser:
		return t.cfg.UserTTL
	default:
		return t.cfg.DefaultTTL
	}
}

func (t *TokenServiceImpl) Sign(userID domain.UserID, role domain.Role, sessionID string) (string, time.Time, error) {
	now := t.now().UTC()
	exp := now.Add(t.TTL(role))
	claims := SessionTokenClaims{
		ID:        userID.String(),
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.cfg.SigningKey)
	if err != nil {
		return "", time.Time{}, err
	}
	// NumericDate truncates to seconds; report what the token actually says.
	return signed, claims.ExpiresAt.Time, nil
}

func (t *TokenServiceImpl) Parse(tokenStr string) (*service.SessionClaims, error) {
	claims := &SessionTokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.ID)
	if err != nil || claims.SessionID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &service.SessionClaims{
		UserID:    userID,
		SessionID: claims.SessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
