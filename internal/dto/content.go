package dto

import (
	"strings"

	"portfolio/internal/domain"
)

type HistoryInput struct {
	Institution string `json:"institution" validate:"required"`
	Detail      string `json:"detail"`
	Years       string `json:"years" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=education experience"`
}

func (h *HistoryInput) Validate() error {
	h.Institution = strings.TrimSpace(h.Institution)
	h.Years = strings.TrimSpace(h.Years)
	h.Type = strings.TrimSpace(h.Type)
	return check(h, rules{
		"required":   domain.Invalid("Field institusi, tahun, dan tipe wajib diisi."),
		"Type.oneof": domain.Invalid("Tipe harus 'education' atau 'experience'."),
	}, domain.ErrMissingFields)
}

// HistoryPatch is a partial update; nil fields are left untouched.
type HistoryPatch struct {
	Institution *string
	Detail      *string
	Years       *string
	Type        *string
}

func (h HistoryPatch) Validate() error {
	for _, f := range []*string{h.Institution, h.Years, h.Type} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return domain.Invalid("Field institusi, tahun, dan tipe wajib diisi.")
		}
	}
	if h.Type != nil && *h.Type != domain.HistoryEducation && *h.Type != domain.HistoryExperience {
		return domain.Invalid("Tipe harus 'education' atau 'experience'.")
	}
	return nil
}

type HistoryListResponse struct {
	Education  []domain.HistoryItem `json:"education"`
	Experience []domain.HistoryItem `json:"experience"`
}

type ProjectInput struct {
	Title       string `validate:"required"`
	Description string
	DemoURL     string
	SourceURL   string
	Tags        string
}

func (p *ProjectInput) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	return check(p, rules{"required": domain.Invalid("Judul proyek wajib diisi.")}, domain.ErrMissingFields)
}

type ProjectPatch struct {
	Title       *string
	Description *string
	DemoURL     *string
	SourceURL   *string
	Tags        *string
}

func (p ProjectPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return domain.Invalid("Judul proyek wajib diisi.")
	}
	return nil
}

type CertificateInput struct {
	Title    string `validate:"required"`
	Issuer   string `validate:"required"`
	Category string `validate:"required"`
}

func (c *CertificateInput) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Issuer = strings.TrimSpace(c.Issuer)
	c.Category = strings.TrimSpace(c.Category)
	return check(c, rules{"required": domain.Invalid("Field title, issuer, dan category wajib diisi.")}, domain.ErrMissingFields)
}

type CertificatePatch struct {
	Title    *string
	Issuer   *string
	Category *string
}

func (c CertificatePatch) Validate() error {
	for _, f := range []*string{c.Title, c.Issuer, c.Category} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return domain.Invalid("Field title, issuer, dan category wajib diisi.")
		}
	}
	return nil
}

// SiteDataUpdate is a partial update of the site-data singleton. Profile
// images are managed through the dedicated image endpoints.
type SiteDataUpdate struct {
	BrandName                   *string              `json:"brandName"`
	BrandNameShort              *string              `json:"brandNameShort"`
	JobTitle                    *string              `json:"jobTitle"`
	Location                    *string              `json:"location"`
	ContactLinks                *domain.ContactLinks `json:"contactLinks"`
	AboutParagraph              *string              `json:"aboutParagraph"`
	TypeAnimationSequenceString *string              `json:"typeAnimationSequenceString"`
}

func (s SiteDataUpdate) Validate() error {
	required := map[string]*string{
		"brandName":                   s.BrandName,
		"brandNameShort":              s.BrandNameShort,
		"jobTitle":                    s.JobTitle,
		"location":                    s.Location,
		"aboutParagraph":              s.AboutParagraph,
		"typeAnimationSequenceString": s.TypeAnimationSequenceString,
	}
	for name, v := range required {
		if v != nil && strings.TrimSpace(*v) == "" {
			return domain.Invalid("Kolom " + name + " wajib diisi.")
		}
	}
	return nil
}

type ImageURLRequest struct {
	ImageURL    string `json:"imageUrl"`
	OldImageURL string `json:"oldImageUrl"`
}

type SkillsUpdate struct {
	HardSkills *[]domain.HardSkill `json:"hardSkills"`
	SoftSkills *[]string           `json:"softSkills"`
}

type SoftSkillRequest struct {
	Name string `json:"name"`
}
