package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Preset describes how one kind of upload is processed and where it is stored.
type Preset struct {
	Name     string
	Folder   string
	Prefix   string
	Width    int
	Height   int
	Quality  int
	AllowPDF bool
}

var (
	ProfilePhoto         = Preset{Name: "profile_photo", Folder: "profile_pictures", Prefix: "user", Width: 500, Height: 500, Quality: 70}
	ProjectThumbnail     = Preset{Name: "project_thumbnail", Folder: "project_thumbnails", Prefix: "project", Width: 750, Height: 750, Quality: 85}
	CertificateThumbnail = Preset{Name: "sertifikat_thumbnail", Folder: "sertifikat_thumbnails", Prefix: "thumb", Width: 849, Height: 600, Quality: 85}
	CertificateFile      = Preset{Name: "sertifikat_file", Folder: "sertifikat_files", Prefix: "file", Quality: 90, AllowPDF: true}
	HistoryLogo          = Preset{Name: "history_logo", Folder: "history_logos", Prefix: "logo", Width: 600, Height: 600, Quality: 80}
	SiteProfileImage     = Preset{Name: "site_profile", Folder: "portfolio_profile", Prefix: "profile", Width: 900, Height: 900, Quality: 85}
)

var (
	ErrNotImage    = errors.New("file is not an image")
	ErrUndecodable = errors.New("image could not be decoded")
)

// Encoded is the output of Transform.
type Encoded struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Transform applies p to f. Images are cropped to fill the preset box (when
// it has one), flattened onto white and re-encoded as JPEG. PDFs pass through
// unchanged when the preset allows them.
func Transform(f File, p Preset) (Encoded, error) {
	if f.IsPDF() {
		if !p.AllowPDF {
			return Encoded{}, ErrNotImage
		}
		return Encoded{Data: f.Data, ContentType: ContentTypePDF, Ext: ".pdf"}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return Encoded{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if p.Width > 0 && p.Height > 0 {
		img = imaging.Fill(img, p.Width, p.Height, imaging.Center, imaging.Lanczos)
	}

	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(p.Quality)); err != nil {
		return Encoded{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Encoded{Data: buf.Bytes(), ContentType: "image/jpeg", Ext: ".jpg"}, nil
}
