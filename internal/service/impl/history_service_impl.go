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

var errHistoryNotFound = domain.NotFound("Item history tidak ditemukan.")

type HistoryServiceImpl struct {
	Store *store.Store
	Media service.Media
}

func NewHistoryServiceImpl(st *store.Store, m service.Media) *HistoryServiceImpl {
	return &HistoryServiceImpl{Store: st, Media: m}
}

func (s *HistoryServiceImpl) List(ctx context.Context) (*dto.HistoryListResponse, error) {
	items, err := s.Store.History().List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.HistoryListResponse{Education: []domain.HistoryItem{}, Experience: []domain.HistoryItem{}}
	for _, it := range items {
		switch it.Type {
		case domain.HistoryEducation:
			out.Education = append(out.Education, it)
		case domain.HistoryExperience:
			out.Experience = append(out.Experience, it)
		}
	}
	return out, nil
}

func (s *HistoryServiceImpl) Create(ctx context.Context, in dto.HistoryInput, logo *media.File) (*domain.HistoryItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item := &domain.HistoryItem{
		Institution: in.Institution,
		Detail:      strings.TrimSpace(in.Detail),
		Years:       in.Years,
		Type:        in.Type,
	}

	var fresh domain.MediaRef
	if logo != nil {
		ref, err := s.Media.Put(ctx, media.HistoryLogo, *logo)
		if err != nil {
			return nil, err
		}
		fresh = ref
		item.SetLogo(ref)
	}

	save := func() error { return s.Store.History().Create(ctx, item) }
	if err := settle(ctx, s.Media, save, []domain.MediaRef{fresh}, nil); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *HistoryServiceImpl) Update(ctx context.Context, id uuid.UUID, patch dto.HistoryPatch, logo *media.File) (*domain.HistoryItem, error) {
	item, err := s.Store.History().GetByID(ctx, id)
	if err != nil {
		return nil, missing(err, errHistoryNotFound)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	setIfNotBlank(&item.Institution, patch.Institution)
	setIfNotBlank(&item.Detail, patch.Detail)
	setIfNotBlank(&item.Years, patch.Years)
	setIfNotBlank(&item.Type, patch.Type)

	old := item.Logo()
	var fresh domain.MediaRef
	if logo != nil {
		ref, err := s.Media.Put(ctx, media.HistoryLogo, *logo)
		if err != nil {
			return nil, err
		}
		fresh = ref
		item.SetLogo(ref)
	}

	var replaced []domain.MediaRef
	if !fresh.Empty() {
		replaced = append(replaced, old)
	}
	save := func() error { return s.Store.History().Save(ctx, item) }
	if err := settle(ctx, s.Media, save, []domain.MediaRef{fresh}, replaced); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *HistoryServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.Store.History().GetByID(ctx, id)
	if err != nil {
		return missing(err, errHistoryNotFound)
	}
	save := func() error { return missing(s.Store.History().Delete(ctx, id), errHistoryNotFound) }
	return settle(ctx, s.Media, save, nil, []domain.MediaRef{item.Logo()})
}
