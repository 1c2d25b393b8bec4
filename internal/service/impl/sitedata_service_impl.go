package impl

import (
	"context"
	"log/slog"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"
	"portfolio/internal/observability/middleware"
	"portfolio/internal/service"
	"portfolio/internal/store"

	"gorm.io/datatypes"
)

var (
	errTooManyProfileImages = domain.Invalid("Maksimal 3 gambar profil.")
	errOldImageURLRequired  = domain.Invalid("URL gambar lama diperlukan untuk update.")
	errImageURLRequired     = domain.Invalid("Image URL diperlukan.")
	errProfileImageNotFound = domain.NotFound("Gambar profil tidak ditemukan.")
)

type SiteDataServiceImpl struct {
	Store *store.Store
	Media service.Media
}

func NewSiteDataServiceImpl(st *store.Store, m service.Media) *SiteDataServiceImpl {
	return &SiteDataServiceImpl{Store: st, Media: m}
}

func (s *SiteDataServiceImpl) Get(ctx context.Context) (*domain.SiteData, error) {
	return s.Store.SiteData().GetOrCreate(ctx)
}

func (s *SiteDataServiceImpl) Update(ctx context.Context, u dto.SiteDataUpdate) (*domain.SiteData, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	data, err := s.Store.SiteData().GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	setIfNotBlank(&data.BrandName, u.BrandName)
	setIfNotBlank(&data.BrandNameShort, u.BrandNameShort)
	setIfNotBlank(&data.JobTitle, u.JobTitle)
	setIfNotBlank(&data.Location, u.Location)
	setIfNotBlank(&data.AboutParagraph, u.AboutParagraph)
	setIfNotBlank(&data.TypeAnimationSequenceString, u.TypeAnimationSequenceString)
	if u.ContactLinks != nil {
		data.ContactLinks = datatypes.NewJSONType(*u.ContactLinks)
	}

	if err := s.Store.SiteData().Save(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SiteDataServiceImpl) AddProfileImage(ctx context.Context, f media.File) (*domain.SiteData, error) {
	data, err := s.Store.SiteData().GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	if len(data.ProfileImages) >= domain.MaxProfileImages {
		return nil, errTooManyProfileImages
	}

	ref, err := s.Media.Put(ctx, media.SiteProfileImage, f)
	if err != nil {
		return nil, err
	}
	data.ProfileImages = append(data.ProfileImages, ref)

	save := func() error { return s.Store.SiteData().Save(ctx, data) }
	if err := settle(ctx, s.Media, save, []domain.MediaRef{ref}, nil); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SiteDataServiceImpl) ReplaceProfileImage(ctx context.Context, oldURL string, f media.File) (*domain.SiteData, error) {
	oldURL = strings.TrimSpace(oldURL)
	if oldURL == "" {
		return nil, errOldImageURLRequired
	}
	data, err := s.Store.SiteData().GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	idx := data.ProfileImageIndex(oldURL)
	if idx < 0 {
		return nil, errProfileImageNotFound
	}

	ref, err := s.Media.Put(ctx, media.SiteProfileImage, f)
	if err != nil {
		return nil, err
	}
	old := data.ProfileImages[idx]
	data.ProfileImages[idx] = ref

	save := func() error { return s.Store.SiteData().Save(ctx, data) }
	if err := settle(ctx, s.Media, save, []domain.MediaRef{ref}, []domain.MediaRef{old}); err != nil {
		return nil, err
	}
	return data, nil
}

// RemoveProfileImage drops url from the profile images. An unknown url
// leaves the document unchanged.
func (s *SiteDataServiceImpl) RemoveProfileImage(ctx context.Context, url string) (*domain.SiteData, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errImageURLRequired
	}
	data, err := s.Store.SiteData().GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	idx := data.ProfileImageIndex(url)
	if idx < 0 {
		slog.Warn("profile image not on record", append([]any{"url", url}, middleware.LogAttrs(ctx)...)...)
		return data, nil
	}

	old := data.ProfileImages[idx]
	images := make(datatypes.JSONSlice[domain.MediaRef], 0, len(data.ProfileImages)-1)
	images = append(images, data.ProfileImages[:idx]...)
	data.ProfileImages = append(images, data.ProfileImages[idx+1:]...)

	save := func() error { return s.Store.SiteData().Save(ctx, data) }
	if err := settle(ctx, s.Media, save, nil, []domain.MediaRef{old}); err != nil {
		return nil, err
	}
	return data, nil
}
