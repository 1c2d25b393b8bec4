package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	HistoryEducation  = "education"
	HistoryExperience = "experience"
)

type HistoryItem struct {
	ID          HistoryID `gorm:"type:uuid;primaryKey" json:"_id"`
	Institution string    `gorm:"type:text;not null" json:"institution"`
	Detail      string    `gorm:"type:text" json:"detail"`
	Years       string    `gorm:"type:text;not null" json:"years"`
	Type        string    `gorm:"type:text;not null;index" json:"type"`
	LogoURL     string    `gorm:"type:text" json:"logoUrl"`
	LogoID      string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (HistoryItem) TableName() string { return "history" }

func (h *HistoryItem) Logo() MediaRef { return MediaRef{URL: h.LogoURL, ID: h.LogoID} }

func (h *HistoryItem) SetLogo(ref MediaRef) {
	h.LogoURL = ref.URL
	h.LogoID = ref.ID
}

type Project struct {
	ID          ProjectID `gorm:"type:uuid;primaryKey" json:"_id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text;not null" json:"imageUrl"`
	ImageID     string    `gorm:"type:text;not null" json:"-"`
	DemoURL     string    `gorm:"type:text;not null;default:'#'" json:"demoUrl"`
	SourceURL   string    `gorm:"type:text;not null;default:'#'" json:"sourceUrl"`
	Tags        string    `gorm:"type:text" json:"tags"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) Thumbnail() MediaRef { return MediaRef{URL: p.ImageURL, ID: p.ImageID} }

func (p *Project) SetThumbnail(ref MediaRef) {
	p.ImageURL = ref.URL
	p.ImageID = ref.ID
}

const (
	CertificatePDF   = "pdf"
	CertificateImage = "image"
)

type Certificate struct {
	ID        CertificateID `gorm:"type:uuid;primaryKey" json:"_id"`
	Title     string        `gorm:"type:text;not null" json:"title"`
	Issuer    string        `gorm:"type:text;not null" json:"issuer"`
	Category  string        `gorm:"type:text;not null" json:"category"`
	ImageURL  string        `gorm:"type:text;not null" json:"imageUrl"`
	ImageID   string        `gorm:"type:text;not null" json:"-"`
	FileURL   string        `gorm:"type:text;not null" json:"fileUrl"`
	FileID    string        `gorm:"type:text;not null" json:"-"`
	Type      string        `gorm:"type:text;not null" json:"type"`
	CreatedAt time.Time     `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Certificate) TableName() string { return "sertifikat" }

func (c *Certificate) Thumbnail() MediaRef { return MediaRef{URL: c.ImageURL, ID: c.ImageID} }
func (c *Certificate) File() MediaRef      { return MediaRef{URL: c.FileURL, ID: c.FileID} }

func (c *Certificate) SetThumbnail(ref MediaRef) {
	c.ImageURL = ref.URL
	c.ImageID = ref.ID
}

func (c *Certificate) SetFile(ref MediaRef) {
	c.FileURL = ref.URL
	c.FileID = ref.ID
}

type ContactLinks struct {
	Email     string `json:"email"`
	WhatsApp  string `json:"whatsapp"`
	Telegram  string `json:"telegram"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	GitHub    string `json:"github"`
}

// MaxProfileImages caps SiteData.ProfileImages.
const MaxProfileImages = 3

type SiteData struct {
	Key                         string                           `gorm:"column:doc_key;type:text;primaryKey" json:"key"`
	BrandName                   string                           `gorm:"type:text;not null" json:"brandName"`
	BrandNameShort              string                           `gorm:"type:text;not null" json:"brandNameShort"`
	JobTitle                    string                           `gorm:"type:text;not null" json:"jobTitle"`
	Location                    string                           `gorm:"type:text;not null" json:"location"`
	ContactLinks                datatypes.JSONType[ContactLinks] `json:"contactLinks"`
	ProfileImages               datatypes.JSONSlice[MediaRef]    `json:"profileImages"`
	AboutParagraph              string                           `gorm:"type:text;not null" json:"aboutParagraph"`
	TypeAnimationSequenceString string                           `gorm:"type:text;not null" json:"typeAnimationSequenceString"`
	CreatedAt                   time.Time                        `gorm:"not null" json:"createdAt"`
	UpdatedAt                   time.Time                        `gorm:"not null" json:"updatedAt"`
}

func (SiteData) TableName() string { return "site_data" }

// MarshalJSON renders profile images as plain URLs; deletion handles stay
// server side.
func (s SiteData) MarshalJSON() ([]byte, error) {
	type plain SiteData
	urls := make([]string, 0, len(s.ProfileImages))
	for _, img := range s.ProfileImages {
		urls = append(urls, img.URL)
	}
	return json.Marshal(struct {
		plain
		ProfileImages []string `json:"profileImages"`
	}{plain(s), urls})
}

// ProfileImageIndex returns the position of url in ProfileImages, or -1.
func (s *SiteData) ProfileImageIndex(url string) int {
	for i, img := range s.ProfileImages {
		if img.URL == url {
			return i
		}
	}
	return -1
}

// DefaultSkillLevel is applied to hard skills saved without a level.
const DefaultSkillLevel = "Dasar"

type HardSkill struct {
	ID    int64  `json:"id"`
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

type SkillsData struct {
	Key        string                         `gorm:"column:doc_key;type:text;primaryKey" json:"key"`
	HardSkills datatypes.JSONSlice[HardSkill] `json:"hardSkills"`
	SoftSkills datatypes.JSONSlice[string]    `json:"softSkills"`
	CreatedAt  time.Time                      `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time                      `gorm:"not null" json:"updatedAt"`
}

func (SkillsData) TableName() string { return "skills_data" }

func DefaultSoftSkills() []string {
	return []string{"Komunikasi", "Kerja Tim (Teamwork)", "Problem Solving", "Manajemen Waktu", "Adaptif"}
}

// DefaultSiteData is the document created on first read.
func DefaultSiteData() SiteData {
	return SiteData{
		Key:                         SingletonKey,
		BrandName:                   "My Portfolio",
		BrandNameShort:              "MP",
		JobTitle:                    "Software Developer",
		Location:                    "Indonesia",
		ContactLinks:                datatypes.NewJSONType(ContactLinks{}),
		ProfileImages:               datatypes.JSONSlice[MediaRef]{},
		AboutParagraph:              "Tulis sesuatu tentang diri Anda di sini.",
		TypeAnimationSequenceString: "Software Developer,1500,Web Developer,1500",
	}
}
