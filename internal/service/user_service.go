package service

import (
	"context"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"
)

type UserService interface {
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UpdateProfile applies r to user; photo may be nil.
	UpdateProfile(ctx context.Context, user *domain.User, r dto.UpdateProfileRequest, photo *media.File) (*domain.User, error)
	DeleteAccount(ctx context.Context, user *domain.User, password string) error

	Stats(ctx context.Context) (*dto.StatsResponse, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListManagement(ctx context.Context) (*dto.ManagementUsersResponse, error)
	DeleteUser(ctx context.Context, id domain.UserID) error

	CreateAdmin(ctx context.Context, r dto.CreateAdminRequest) (*domain.User, error)
	UpdateAdmin(ctx context.Context, id domain.UserID, r dto.UpdateAdminRequest) (*domain.User, error)
	DeleteAdmin(ctx context.Context, id domain.UserID) error
	DeleteSuperAdmin(ctx context.Context, actor *domain.User, id domain.UserID) error
	UpdateRole(ctx context.Context, id domain.UserID, role string) (*domain.User, error)
}

// Media is the upload pipeline as seen by services.
type Media interface {
	Put(ctx context.Context, preset media.Preset, f media.File) (domain.MediaRef, error)
	Discard(ctx context.Context, ref domain.MediaRef) media.Cleanup
}
