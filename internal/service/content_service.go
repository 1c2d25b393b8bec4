package service

import (
	"context"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"

	"github.com/google/uuid"
)

// File arguments are nil when the request carried no file for that field.

type HistoryService interface {
	List(ctx context.Context) (*dto.HistoryListResponse, error)
	Create(ctx context.Context, in dto.HistoryInput, logo *media.File) (*domain.HistoryItem, error)
	Update(ctx context.Context, id uuid.UUID, patch dto.HistoryPatch, logo *media.File) (*domain.HistoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, in dto.ProjectInput, thumbnail *media.File) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch dto.ProjectPatch, thumbnail *media.File) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CertificateService interface {
	List(ctx context.Context) ([]domain.Certificate, error)
	Create(ctx context.Context, in dto.CertificateInput, thumbnail, mainFile *media.File) (*domain.Certificate, error)
	Update(ctx context.Context, id uuid.UUID, patch dto.CertificatePatch, thumbnail, mainFile *media.File) (*domain.Certificate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SiteDataService interface {
	Get(ctx context.Context) (*domain.SiteData, error)
	Update(ctx context.Context, u dto.SiteDataUpdate) (*domain.SiteData, error)
	AddProfileImage(ctx context.Context, f media.File) (*domain.SiteData, error)
	ReplaceProfileImage(ctx context.Context, oldURL string, f media.File) (*domain.SiteData, error)
	RemoveProfileImage(ctx context.Context, url string) (*domain.SiteData, error)
}

type SkillsService interface {
	Get(ctx context.Context) (*domain.SkillsData, error)
	Update(ctx context.Context, u dto.SkillsUpdate) (*domain.SkillsData, error)
	AddSoftSkill(ctx context.Context, name string) (*domain.SkillsData, error)
	RemoveSoftSkill(ctx context.Context, index int) (*domain.SkillsData, error)
	ReplaceHardSkills(ctx context.Context, skills []domain.HardSkill) (*domain.SkillsData, error)
}
