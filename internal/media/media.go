// Package media turns uploaded files into web-sized assets and stores them on
// an external media host.
package media

import (
	"context"
	"strings"
)

const (
	MaxFileSize         = 6 << 20
	MaxProfilePhotoSize = 4 << 20

	ContentTypePDF = "application/pdf"
)

var allowedTypes = map[string]bool{
	"image/jpeg":   true,
	"image/png":    true,
	"image/gif":    true,
	"image/webp":   true,
	ContentTypePDF: true,
}

// Allowed reports whether files of contentType may be uploaded.
func Allowed(contentType string) bool {
	return allowedTypes[strings.ToLower(strings.TrimSpace(contentType))]
}

// File is an upload held in memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (f *File) IsPDF() bool { return f.ContentType == ContentTypePDF }

// Object is an encoded asset ready to be stored under Key. Ext includes the dot.
type Object struct {
	Key         string
	ContentType string
	Ext         string
	Data        []byte
}

// Asset is a stored object: where it is served from and the handle used to delete it.
type Asset struct {
	URL string
	ID  string
}

// Store is a remote media host.
type Store interface {
	Upload(ctx context.Context, obj Object) (Asset, error)
	Delete(ctx context.Context, id string) error
}
