package impl

import (
	"context"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"
	"portfolio/internal/service"
	"portfolio/internal/store"

	"github.com/google/uuid"
)

var (
	errCertificateNotFound = domain.NotFound("Sertifikat tidak ditemukan.")
	errCertificateFiles    = domain.Invalid("Thumbnail dan File Utama wajib di-upload.")
)

type CertificateServiceImpl struct {
	Store *store.Store
	Media service.Media
}

func NewCertificateServiceImpl(st *store.Store, m service.Media) *CertificateServiceImpl {
	return &CertificateServiceImpl{Store: st, Media: m}
}

func (s *CertificateServiceImpl) List(ctx context.Context) ([]domain.Certificate, error) {
	return s.Store.Certificates().List(ctx)
}

func (s *CertificateServiceImpl) Create(ctx context.Context, in dto.CertificateInput, thumbnail, mainFile *media.File) (*domain.Certificate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if thumbnail == nil || mainFile == nil {
		return nil, errCertificateFiles
	}

	c := &domain.Certificate{
		Title:    in.Title,
		Issuer:   in.Issuer,
		Category: in.Category,
		Type:     certificateType(mainFile),
	}
	fresh, err := s.upload(ctx, c, thumbnail, mainFile)
	if err != nil {
		return nil, err
	}

	save := func() error { return s.Store.Certificates().Create(ctx, c) }
	if err := settle(ctx, s.Media, save, fresh, nil); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CertificateServiceImpl) Update(ctx context.Context, id uuid.UUID, patch dto.CertificatePatch, thumbnail, mainFile *media.File) (*domain.Certificate, error) {
	c, err := s.Store.Certificates().GetByID(ctx, id)
	if err != nil {
		return nil, missing(err, errCertificateNotFound)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	setIfNotBlank(&c.Title, patch.Title)
	setIfNotBlank(&c.Issuer, patch.Issuer)
	setIfNotBlank(&c.Category, patch.Category)

	var replaced []domain.MediaRef
	if thumbnail != nil {
		replaced = append(replaced, c.Thumbnail())
	}
	if mainFile != nil {
		replaced = append(replaced, c.File())
		c.Type = certificateType(mainFile)
	}
	fresh, err := s.upload(ctx, c, thumbnail, mainFile)
	if err != nil {
		return nil, err
	}

	save := func() error { return s.Store.Certificates().Save(ctx, c) }
	if err := settle(ctx, s.Media, save, fresh, replaced); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CertificateServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.Store.Certificates().GetByID(ctx, id)
	if err != nil {
		return missing(err, errCertificateNotFound)
	}
	save := func() error { return missing(s.Store.Certificates().Delete(ctx, id), errCertificateNotFound) }
	return settle(ctx, s.Media, save, nil, []domain.MediaRef{c.Thumbnail(), c.File()})
}

// upload puts whichever of thumbnail and mainFile are present and sets them on
// c. If the second upload fails the first is discarded.
func (s *CertificateServiceImpl) upload(ctx context.Context, c *domain.Certificate, thumbnail, mainFile *media.File) ([]domain.MediaRef, error) {
	var fresh []domain.MediaRef
	if thumbnail != nil {
		ref, err := s.Media.Put(ctx, media.CertificateThumbnail, *thumbnail)
		if err != nil {
			return nil, err
		}
		fresh = append(fresh, ref)
		c.SetThumbnail(ref)
	}
	if mainFile != nil {
		ref, err := s.Media.Put(ctx, media.CertificateFile, *mainFile)
		if err != nil {
			for _, r := range fresh {
				s.Media.Discard(ctx, r)
			}
			return nil, err
		}
		fresh = append(fresh, ref)
		c.SetFile(ref)
	}
	return fresh, nil
}

func certificateType(f *media.File) string {
	if f.IsPDF() {
		return domain.CertificatePDF
	}
	return domain.CertificateImage
}
