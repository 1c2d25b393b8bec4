package store

import (
	"context"

	"portfolio/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryStore, ProjectStore and CertificateStore share the same shape:
// newest-first listing plus id-keyed CRUD.

type HistoryStore struct{ db *gorm.DB }

func (s *Store) History() *HistoryStore { return &HistoryStore{db: s.DB} }

func (h *HistoryStore) Create(ctx context.Context, item *domain.HistoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return h.db.WithContext(ctx).Create(item).Error
}

func (h *HistoryStore) Save(ctx context.Context, item *domain.HistoryItem) error {
	return h.db.WithContext(ctx).Save(item).Error
}

func (h *HistoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryItem, error) {
	var item domain.HistoryItem
	if err := h.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (h *HistoryStore) List(ctx context.Context) ([]domain.HistoryItem, error) {
	items := []domain.HistoryItem{}
	err := h.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (h *HistoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, h.db, &domain.HistoryItem{}, id)
}

type ProjectStore struct{ db *gorm.DB }

func (s *Store) Projects() *ProjectStore { return &ProjectStore{db: s.DB} }

func (p *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return p.db.WithContext(ctx).Create(project).Error
}

func (p *ProjectStore) Save(ctx context.Context, project *domain.Project) error {
	return p.db.WithContext(ctx).Save(project).Error
}

func (p *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := p.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (p *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := p.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (p *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, p.db, &domain.Project{}, id)
}

type CertificateStore struct{ db *gorm.DB }

func (s *Store) Certificates() *CertificateStore { return &CertificateStore{db: s.DB} }

func (c *CertificateStore) Create(ctx context.Context, cert *domain.Certificate) error {
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	return c.db.WithContext(ctx).Create(cert).Error
}

func (c *CertificateStore) Save(ctx context.Context, cert *domain.Certificate) error {
	return c.db.WithContext(ctx).Save(cert).Error
}

func (c *CertificateStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Certificate, error) {
	var cert domain.Certificate
	if err := c.db.WithContext(ctx).First(&cert, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cert, nil
}

func (c *CertificateStore) List(ctx context.Context) ([]domain.Certificate, error) {
	certs := []domain.Certificate{}
	err := c.db.WithContext(ctx).Order("created_at DESC").Find(&certs).Error
	return certs, err
}

func (c *CertificateStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, c.db, &domain.Certificate{}, id)
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	tx := db.WithContext(ctx).Delete(model, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
