package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/observability/metrics"
	"portfolio/internal/observability/middleware"
	"portfolio/internal/service"
	"portfolio/internal/store"
)

const (
	verificationTTL = 10 * time.Minute
	// LoggedOutToken is the cookie value written on logout.
	LoggedOutToken = "loggedout"
)

type AuthServiceImpl struct {
	Store           *store.Store
	PasswordService service.PasswordService
	TService        service.TokenService
	Email           service.EmailService
	Google          service.GoogleVerifier

	now   func() time.Time
	async func(func())
}

func NewAuthServiceImpl(
	st *store.Store,
	passwordService service.PasswordService,
	tokenService service.TokenService,
	email service.EmailService,
	google service.GoogleVerifier,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:           st,
		PasswordService: passwordService,
		TService:        tokenService,
		Email:           email,
		Google:          google,
		now:             time.Now,
		async:           func(f func()) { go f() },
	}
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.MessageResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
	}()

	if err := r.Validate(); err != nil {
		result = "rejected"
		return nil, err
	}

	existing, err := a.Store.Users().GetByEmail(ctx, r.Email)
	switch {
	case err == nil && existing.IsVerified:
		result = "rejected"
		return nil, domain.ErrEmailRegistered
	case err == nil:
		result = "rejected"
		return nil, domain.ErrEmailPending
	case !errors.Is(err, store.ErrRecordNotFound):
		result = "failure"
		return nil, err
	}

	hash, err := a.PasswordService.Hash(r.Password)
	if err != nil {
		result = "failure"
		return nil, err
	}
	code, err := newVerificationCode()
	if err != nil {
		result = "failure"
		return nil, err
	}
	exp := a.now().UTC().Add(verificationTTL)

	u := &domain.User{
		FullName:            r.FullName,
		Email:               r.Email,
		Phone:               r.Phone,
		PasswordHash:        hash,
		Role:                domain.RoleUser,
		VerificationCode:    &code,
		VerificationExpires: &exp,
	}
	if err := a.Store.Users().Create(ctx, u); err != nil {
		result = "failure"
		return nil, err
	}

	if err := a.Email.SendVerification(ctx, u.Email, u.FullName, code); err != nil {
		result = "failure"
		return nil, domain.Upstream("Gagal mengirim kode verifikasi email. Silakan kirim ulang kode.", err)
	}

	slog.Info("user registered", append([]any{"user_id", u.ID}, middleware.LogAttrs(ctx)...)...)
	return &dto.MessageResponse{
		Message: fmt.Sprintf("Pendaftaran berhasil. Kode verifikasi telah dikirim ke %s.", u.Email),
	}, nil
}

func (a *AuthServiceImpl) Verify(ctx context.Context, r dto.VerifyRequest) (*dto.Session, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues("verify", result).Inc()
	}()

	if err := r.Validate(); err != nil {
		result = "rejected"
		return nil, err
	}

	u, err := a.Store.Users().GetPendingVerification(ctx, r.Email, r.VerificationCode, a.now().UTC())
	if err != nil {
		result = "rejected"
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	consumed, err := a.Store.Users().ConsumeVerification(ctx, u.ID, r.VerificationCode)
	if err != nil {
		result = "failure"
		return nil, err
	}
	if !consumed {
		result = "rejected"
		return nil, domain.ErrInvalidCode
	}
	u.IsVerified = true
	u.VerificationCode = nil
	u.VerificationExpires = nil

	sess, err := a.issue(ctx, u, "verify")
	if err != nil {
		result = "failure"
		return nil, err
	}
	a.welcome(ctx, u)
	return sess, nil
}

func (a *AuthServiceImpl) ResendVerification(ctx context.Context, r dto.ResendRequest) (*dto.MessageResponse, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	u, err := a.Store.Users().GetByEmail(ctx, r.Email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrEmailUnknown
		}
		return nil, err
	}
	if u.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}

	code, err := newVerificationCode()
	if err != nil {
		return nil, err
	}
	exp := a.now().UTC().Add(verificationTTL)
	u.VerificationCode = &code
	u.VerificationExpires = &exp
	if err := a.Store.Users().Save(ctx, u); err != nil {
		return nil, err
	}
	if err := a.Email.SendVerification(ctx, u.Email, u.FullName, code); err != nil {
		return nil, domain.Upstream("Gagal mengirim ulang kode verifikasi.", err)
	}
	return &dto.MessageResponse{
		Message: fmt.Sprintf("Kode verifikasi baru telah berhasil dikirim ke %s.", u.Email),
	}, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.Session, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues("password", result).Inc()
	}()

	if err := r.Validate(); err != nil {
		result = "rejected"
		return nil, err
	}

	u, err := a.Store.Users().GetByEmail(ctx, r.Email)
	if err != nil {
		result = "rejected"
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	rehash, ok := a.PasswordService.Verify(r.Password, u.PasswordHash)
	if !ok {
		result = "rejected"
		return nil, domain.ErrBadCredentials
	}
	if u.Role == domain.RoleUser && !u.IsVerified {
		result = "rejected"
		return nil, domain.ErrNotVerified
	}

	if rehash {
		if h, err := a.PasswordService.Hash(r.Password); err == nil {
			u.PasswordHash = h
			if err := a.Store.Users().Save(ctx, u); err != nil {
				slog.Warn("password rehash not saved", append([]any{"user_id", u.ID, "error", err}, middleware.LogAttrs(ctx)...)...)
			}
		}
	}

	sess, err := a.issue(ctx, u, "login")
	if err != nil {
		result = "failure"
		return nil, err
	}
	return sess, nil
}

func (a *AuthServiceImpl) GoogleLogin(ctx context.Context, r dto.GoogleRequest) (*dto.Session, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues("google", result).Inc()
	}()

	if err := r.Validate(); err != nil {
		result = "rejected"
		return nil, err
	}
	if a.Google == nil {
		result = "failure"
		slog.Error("google sign-in requested but not configured", middleware.LogAttrs(ctx)...)
		return nil, domain.ErrGoogleInvalid
	}

	profile, err := a.googleProfile(ctx, r)
	if err != nil {
		result = "rejected"
		slog.Warn("google sign-in rejected", append([]any{"error", err}, middleware.LogAttrs(ctx)...)...)
		return nil, domain.ErrGoogleInvalid
	}

	email := dto.NormalizeEmail(profile.Email)
	u, err := a.Store.Users().GetByEmail(ctx, email)
	created := false
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		u, err = a.createGoogleUser(ctx, email, profile)
		if err != nil {
			result = "failure"
			return nil, err
		}
		created = true
	case err != nil:
		result = "failure"
		return nil, err
	default:
		changed := false
		if u.ProfilePicture == "" && profile.Picture != "" {
			u.ProfilePicture = profile.Picture
			changed = true
		}
		if !u.IsVerified && profile.EmailVerified {
			u.IsVerified = true
			u.VerificationCode = nil
			u.VerificationExpires = nil
			changed = true
		}
		if changed {
			if err := a.Store.Users().Save(ctx, u); err != nil {
				result = "failure"
				return nil, err
			}
		}
	}

	sess, err := a.issue(ctx, u, "google")
	if err != nil {
		result = "failure"
		return nil, err
	}
	if created {
		a.welcome(ctx, u)
	}
	return sess, nil
}

// googleProfile treats the submitted material as an ID token first and falls
// back to redeeming it as an authorization code.
func (a *AuthServiceImpl) googleProfile(ctx context.Context, r dto.GoogleRequest) (*service.GoogleProfile, error) {
	if r.Credential != "" {
		profile, err := a.Google.VerifyIDToken(ctx, r.Credential)
		if err == nil {
			return profile, nil
		}
		if r.Code == "" {
			return a.Google.ExchangeCode(ctx, r.Credential)
		}
	}
	return a.Google.ExchangeCode(ctx, r.Code)
}

func (a *AuthServiceImpl) createGoogleUser(ctx context.Context, email string, profile *service.GoogleProfile) (*domain.User, error) {
	placeholder, err := randomHex(32)
	if err != nil {
		return nil, err
	}
	hash, err := a.PasswordService.Hash(placeholder)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	u := &domain.User{
		FullName:       name,
		Email:          email,
		PasswordHash:   hash,
		Role:           domain.RoleUser,
		IsVerified:     true,
		ProfilePicture: profile.Picture,
	}
	if err := a.Store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("user created via google", append([]any{"user_id", u.ID}, middleware.LogAttrs(ctx)...)...)
	return u, nil
}

func (a *AuthServiceImpl) Refresh(ctx context.Context, user *domain.User) (*dto.Session, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", result).Inc()
	}()
	if user.SessionID == nil {
		result = "rejected"
		return nil, domain.ErrSessionReplaced
	}
	token, exp, err := a.TService.Sign(user.ID, user.Role, *user.SessionID)
	if err != nil {
		result = "failure"
		return nil, err
	}
	return &dto.Session{Token: token, ExpiresAt: exp, User: user}, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" || token == LoggedOutToken {
		return nil
	}
	claims, err := a.TService.Parse(token)
	if err != nil {
		return nil
	}
	u, err := a.Store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !u.HasSession(claims.SessionID) {
		return nil
	}
	if err := a.Store.Users().SetSessionID(ctx, u.ID, nil); err != nil {
		return err
	}
	slog.Info("session revoked", append([]any{"user_id", u.ID}, middleware.LogAttrs(ctx)...)...)
	return nil
}

func (a *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" || token == LoggedOutToken {
		return nil, domain.ErrNoToken
	}
	claims, err := a.TService.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := a.Store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if !u.HasSession(claims.SessionID) {
		return nil, domain.ErrSessionReplaced
	}
	return u, nil
}

// issue rotates the user's session id, which invalidates every token issued
// before, and signs a token for the new one.
func (a *AuthServiceImpl) issue(ctx context.Context, u *domain.User, flow string) (*dto.Session, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(flow, result).Inc()
	}()

	sid, err := newSessionID()
	if err != nil {
		result = "failure"
		return nil, err
	}
	if err := a.Store.Users().SetSessionID(ctx, u.ID, &sid); err != nil {
		result = "failure"
		return nil, err
	}
	u.SessionID = &sid

	token, exp, err := a.TService.Sign(u.ID, u.Role, sid)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("issued session", append([]any{"user_id", u.ID, "role", u.Role, "flow", flow, "expires_at", exp}, middleware.LogAttrs(ctx)...)...)
	return &dto.Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// welcome sends the welcome email in the background. Failures are only logged.
func (a *AuthServiceImpl) welcome(ctx context.Context, u *domain.User) {
	if a.Email == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	to, name := u.Email, u.FullName
	a.async(func() {
		sendCtx, cancel := context.WithTimeout(bg, 30*time.Second)
		defer cancel()
		if err := a.Email.SendWelcome(sendCtx, to, name); err != nil {
			slog.Warn("welcome email failed", append([]any{"to", to, "error", err}, middleware.LogAttrs(bg)...)...)
		}
	})
}
