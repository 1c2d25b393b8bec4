package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/httpx"
	"portfolio/internal/media"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// maxUploadBody bounds a whole multipart request; single files are
	// checked against media.MaxFileSize.
	maxUploadBody = 4*media.MaxFileSize + 1<<20
	memoryLimit   = 32 << 20
)

var errNoFile = domain.Invalid("Tidak ada file yang di-upload.")

// form is a request body read as flat string fields plus uploaded files.
type form struct {
	values map[string][]string
	files  map[string]*media.File
}

// readForm accepts multipart, urlencoded and JSON object bodies. Every file
// is size- and type-checked before it is returned.
func readForm(w http.ResponseWriter, r *http.Request) (*form, error) {
	f := &form{values: map[string][]string{}, files: map[string]*media.File{}}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch ct {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(memoryLimit); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return nil, domain.ErrFileTooLarge
			}
			return nil, domain.Invalid("Form upload tidak valid.")
		}
		defer r.MultipartForm.RemoveAll()
		for k, v := range r.MultipartForm.Value {
			f.values[k] = v
		}
		for field, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			file, err := readUpload(headers[0])
			if err != nil {
				return nil, err
			}
			f.files[field] = file
		}
	case "application/json":
		var body map[string]any
		if err := httpx.DecodeJSON(w, r, &body); err != nil {
			return nil, err
		}
		for k, v := range body {
			switch tv := v.(type) {
			case nil:
			case string:
				f.values[k] = []string{tv}
			default:
				f.values[k] = []string{fmt.Sprint(tv)}
			}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, domain.Invalid("Form tidak valid.")
		}
		for k, v := range r.PostForm {
			f.values[k] = v
		}
	}
	return f, nil
}

func readUpload(fh *multipart.FileHeader) (*media.File, error) {
	if fh.Size > media.MaxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, media.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	if len(data) > media.MaxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	if !media.Allowed(fh.Header.Get("Content-Type")) {
		return nil, domain.ErrUnsupportedFileType
	}
	// The declared type must agree with the content.
	sniffed, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !media.Allowed(sniffed) {
		return nil, domain.ErrUnsupportedFileType
	}
	return &media.File{Filename: fh.Filename, ContentType: sniffed, Data: data}, nil
}

func (f *form) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *form) str(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// ptr returns nil for fields the request did not carry.
func (f *form) ptr(key string) *string {
	if !f.has(key) {
		return nil
	}
	v := f.str(key)
	return &v
}

func (f *form) file(key string) *media.File { return f.files[key] }
