package store

import (
	"context"
	"errors"
	"time"

	"portfolio/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return duplicateEmail(u.db.WithContext(ctx).Create(usr).Error)
}

// Save writes every column of usr.
func (u *UserStore) Save(ctx context.Context, usr *domain.User) error {
	return duplicateEmail(u.db.WithContext(ctx).Save(usr).Error)
}

func (u *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetPendingVerification finds an unverified user whose code matches and has
// not expired at now.
func (u *UserStore) GetPendingVerification(ctx context.Context, email, code string, now time.Time) (*domain.User, error) {
	var user domain.User
	err := u.db.WithContext(ctx).
		Where("email = ? AND verification_code = ? AND verification_expires > ? AND is_verified = ?", email, code, now, false).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ConsumeVerification marks the user verified and clears the code, but only if
// code is still the stored one. It reports whether this call consumed it.
func (u *UserStore) ConsumeVerification(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND verification_code = ? AND is_verified = ?", id, code, false).
		Updates(map[string]any{
			"is_verified":          true,
			"verification_code":    nil,
			"verification_expires": nil,
		})
	return tx.RowsAffected == 1, tx.Error
}

// SetSessionID replaces the stored session id; nil clears it.
func (u *UserStore) SetSessionID(ctx context.Context, id uuid.UUID, sid *string) error {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("session_id", sid)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (u *UserStore) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users := []domain.User{}
	err := u.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (u *UserStore) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	var rows []struct {
		Role  domain.Role
		Count int64
	}
	err := u.db.WithContext(ctx).Model(&domain.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Role]int64, len(rows))
	for _, r := range rows {
		out[r.Role] = r.Count
	}
	return out, nil
}

func (u *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteByEmail removes the user with email, if any, and reports how many rows went.
func (u *UserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	tx := u.db.WithContext(ctx).Delete(&domain.User{}, "email = ?", email)
	return tx.RowsAffected, tx.Error
}

func duplicateEmail(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Duplicate("email")
	}
	return err
}
