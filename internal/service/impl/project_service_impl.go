package impl

import (
	"context"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"
	"portfolio/internal/service"
	"portfolio/internal/store"

	"github.com/google/uuid"
)

var (
	errProjectNotFound     = domain.NotFound("Proyek tidak ditemukan.")
	errProjectNeedsPicture = domain.Invalid("Thumbnail proyek wajib di-upload.")
)

// Placeholder link stored when a project has no demo or source URL.
const noLink = "#"

type ProjectServiceImpl struct {
	Store *store.Store
	Media service.Media
}

func NewProjectServiceImpl(st *store.Store, m service.Media) *ProjectServiceImpl {
	return &ProjectServiceImpl{Store: st, Media: m}
}

func (s *ProjectServiceImpl) List(ctx context.Context) ([]domain.Project, error) {
	return s.Store.Projects().List(ctx)
}

func (s *ProjectServiceImpl) Create(ctx context.Context, in dto.ProjectInput, thumbnail *media.File) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if thumbnail == nil {
		return nil, errProjectNeedsPicture
	}

	ref, err := s.Media.Put(ctx, media.ProjectThumbnail, *thumbnail)
	if err != nil {
		return nil, err
	}
	p := &domain.Project{
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		DemoURL:     linkOrPlaceholder(in.DemoURL),
		SourceURL:   linkOrPlaceholder(in.SourceURL),
		Tags:        strings.TrimSpace(in.Tags),
	}
	p.SetThumbnail(ref)

	save := func() error { return s.Store.Projects().Create(ctx, p) }
	if err := settle(ctx, s.Media, save, []domain.MediaRef{ref}, nil); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, id uuid.UUID, patch dto.ProjectPatch, thumbnail *media.File) (*domain.Project, error) {
	p, err := s.Store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, missing(err, errProjectNotFound)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	setIfNotBlank(&p.Title, patch.Title)
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DemoURL != nil {
		p.DemoURL = linkOrPlaceholder(*patch.DemoURL)
	}
	if patch.SourceURL != nil {
		p.SourceURL = linkOrPlaceholder(*patch.SourceURL)
	}
	if patch.Tags != nil {
		p.Tags = strings.TrimSpace(*patch.Tags)
	}

	old := p.Thumbnail()
	var fresh domain.MediaRef
	var replaced []domain.MediaRef
	if thumbnail != nil {
		fresh, err = s.Media.Put(ctx, media.ProjectThumbnail, *thumbnail)
		if err != nil {
			return nil, err
		}
		p.SetThumbnail(fresh)
		replaced = append(replaced, old)
	}

	save := func() error { return s.Store.Projects().Save(ctx, p) }
	if err := settle(ctx, s.Media, save, []domain.MediaRef{fresh}, replaced); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.Store.Projects().GetByID(ctx, id)
	if err != nil {
		return missing(err, errProjectNotFound)
	}
	save := func() error { return missing(s.Store.Projects().Delete(ctx, id), errProjectNotFound) }
	return settle(ctx, s.Media, save, nil, []domain.MediaRef{p.Thumbnail()})
}

func linkOrPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return noLink
}
