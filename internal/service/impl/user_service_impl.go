package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"
	"portfolio/internal/observability/middleware"
	"portfolio/internal/service"
	"portfolio/internal/store"
)

var (
	errAdminNotFound      = domain.NotFound("Admin tidak ditemukan")
	errSuperAdminNotFound = domain.NotFound("Super Admin tidak ditemukan.")
	errNotPlainUser       = domain.NotFound("Pengguna tidak ditemukan atau bukan role user")
	errTargetNotFound     = domain.NotFound("Pengguna tidak ditemukan")
	errSelfDelete         = domain.Invalid("Anda tidak bisa menghapus akun Anda sendiri.")
	errSuperAdminRole     = domain.Invalid("Role Super Admin tidak dapat diubah.")
	errEmailTaken         = domain.Invalid("Email sudah digunakan.")
	errDeletePassword     = domain.Invalid("Password wajib diisi untuk menghapus akun.")
)

type UserServiceImpl struct {
	Store           *store.Store
	PasswordService service.PasswordService
	Media           service.Media
}

func NewUserServiceImpl(st *store.Store, passwordService service.PasswordService, m service.Media) *UserServiceImpl {
	return &UserServiceImpl{Store: st, PasswordService: passwordService, Media: m}
}

func (s *UserServiceImpl) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, user *domain.User, r dto.UpdateProfileRequest, photo *media.File) (*domain.User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if photo != nil && len(photo.Data) > media.MaxProfilePhotoSize {
		return nil, domain.ErrProfilePhotoTooBig
	}

	u, err := s.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	setIfNotBlank(&u.FullName, r.FullName)
	setIfNotBlank(&u.Email, r.Email)
	setIfNotBlank(&u.Phone, r.Phone)
	if r.Gender != nil {
		u.Gender = *r.Gender
	}
	if r.Address != nil {
		u.Address = strings.TrimSpace(*r.Address)
	}

	if r.Password != "" {
		if _, ok := s.PasswordService.Verify(r.OldPassword, u.PasswordHash); !ok {
			return nil, domain.ErrWrongOldPassword
		}
		hash, err := s.PasswordService.Hash(r.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	old := u.Photo()
	var fresh domain.MediaRef
	if photo != nil {
		fresh, err = s.Media.Put(ctx, media.ProfilePhoto, *photo)
		if err != nil {
			return nil, err
		}
		u.SetPhoto(fresh)
	}

	if err := s.Store.Users().Save(ctx, u); err != nil {
		if !fresh.Empty() {
			s.Media.Discard(ctx, fresh)
		}
		return nil, err
	}
	if !fresh.Empty() {
		s.Media.Discard(ctx, old)
	}
	return u, nil
}

func (s *UserServiceImpl) DeleteAccount(ctx context.Context, user *domain.User, password string) error {
	if password == "" {
		return errDeletePassword
	}
	u, err := s.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if _, ok := s.PasswordService.Verify(password, u.PasswordHash); !ok {
		return domain.ErrWrongPassword
	}
	return s.remove(ctx, u)
}

func (s *UserServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	counts, err := s.Store.Users().CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StatsResponse{
		TotalUsers:       counts[domain.RoleUser],
		TotalAdmins:      counts[domain.RoleAdmin],
		TotalSuperAdmins: counts[domain.RoleSuperAdmin],
	}
	out.Total = out.TotalUsers + out.TotalAdmins + out.TotalSuperAdmins
	return out, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListByRole(ctx, domain.RoleUser)
}

func (s *UserServiceImpl) ListManagement(ctx context.Context) (*dto.ManagementUsersResponse, error) {
	supers, err := s.Store.Users().ListByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	admins, err := s.Store.Users().ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &dto.ManagementUsersResponse{SuperAdmins: supers, Admins: admins}, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id domain.UserID) error {
	u, err := s.withRole(ctx, id, domain.RoleUser, errNotPlainUser)
	if err != nil {
		return err
	}
	return s.remove(ctx, u)
}

func (s *UserServiceImpl) CreateAdmin(ctx context.Context, r dto.CreateAdminRequest) (*domain.User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Store.Users().GetByEmail(ctx, r.Email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}
	if err := newAdminPolicy.Check(r.Password, personalWords(r.FullName, r.Email)...); err != nil {
		return nil, err
	}

	hash, err := s.PasswordService.Hash(r.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        strings.TrimSpace(r.Phone),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	if err := s.Store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("admin created", append([]any{"user_id", u.ID}, middleware.LogAttrs(ctx)...)...)
	return u, nil
}

func (s *UserServiceImpl) UpdateAdmin(ctx context.Context, id domain.UserID, r dto.UpdateAdminRequest) (*domain.User, error) {
	u, err := s.withRole(ctx, id, domain.RoleAdmin, errAdminNotFound)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(r.FullName); name != "" {
		u.FullName = name
	}
	if r.Password != "" {
		if err := resetAdminPolicy.Check(r.Password); err != nil {
			return nil, err
		}
		hash, err := s.PasswordService.Hash(r.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.Store.Users().Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserServiceImpl) DeleteAdmin(ctx context.Context, id domain.UserID) error {
	u, err := s.withRole(ctx, id, domain.RoleAdmin, errAdminNotFound)
	if err != nil {
		return err
	}
	return s.remove(ctx, u)
}

func (s *UserServiceImpl) DeleteSuperAdmin(ctx context.Context, actor *domain.User, id domain.UserID) error {
	u, err := s.withRole(ctx, id, domain.RoleSuperAdmin, errSuperAdminNotFound)
	if err != nil {
		return err
	}
	if actor.ID == u.ID {
		return errSelfDelete
	}
	return s.remove(ctx, u)
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, id domain.UserID, role string) (*domain.User, error) {
	target := domain.Role(strings.TrimSpace(role))
	if target != domain.RoleAdmin && target != domain.RoleUser {
		return nil, domain.Invalid(msgRoleInvalid)
	}
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, errTargetNotFound
		}
		return nil, err
	}
	if u.Role == domain.RoleSuperAdmin {
		return nil, errSuperAdminRole
	}
	u.Role = target
	if err := s.Store.Users().Save(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("role changed", append([]any{"user_id", u.ID, "role", u.Role}, middleware.LogAttrs(ctx)...)...)
	return u, nil
}

// withRole loads id and reports notFound unless it has role.
func (s *UserServiceImpl) withRole(ctx context.Context, id domain.UserID, role domain.Role, notFound error) (*domain.User, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if u.Role != role {
		return nil, notFound
	}
	return u, nil
}

// remove deletes u and then discards its profile photo.
func (s *UserServiceImpl) remove(ctx context.Context, u *domain.User) error {
	if err := s.Store.Users().Delete(ctx, u.ID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	s.Media.Discard(ctx, u.Photo())
	slog.Info("user deleted", append([]any{"user_id", u.ID, "role", u.Role}, middleware.LogAttrs(ctx)...)...)
	return nil
}

func setIfNotBlank(dst *string, v *string) {
	if v == nil {
		return
	}
	if t := strings.TrimSpace(*v); t != "" {
		*dst = t
	}
}
