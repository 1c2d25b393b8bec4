package media

import (
	"context"
	"errors"
	"log/slog"

	"portfolio/internal/domain"
	"portfolio/internal/observability/metrics"
	"portfolio/internal/observability/middleware"

	"github.com/google/uuid"
)

// Pipeline processes uploads and talks to the media Store.
type Pipeline struct {
	store Store
	log   *slog.Logger
}

func NewPipeline(store Store, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{store: store, log: log}
}

// Put processes f with p and uploads the result under a fresh key.
func (p *Pipeline) Put(ctx context.Context, preset Preset, f File) (domain.MediaRef, error) {
	result := "success"
	defer func() {
		metrics.MediaUploadsTotal.WithLabelValues(preset.Name, result).Inc()
	}()

	enc, err := Transform(f, preset)
	if err != nil {
		result = "rejected"
		if errors.Is(err, ErrNotImage) {
			return domain.MediaRef{}, domain.Invalid("File harus berupa gambar.")
		}
		return domain.MediaRef{}, domain.Invalid("File gambar rusak atau tidak dapat diproses.")
	}

	obj := Object{
		Key:         preset.Folder + "/" + preset.Prefix + "_" + uuid.NewString(),
		ContentType: enc.ContentType,
		Ext:         enc.Ext,
		Data:        enc.Data,
	}
	asset, err := p.store.Upload(ctx, obj)
	if err != nil {
		result = "failure"
		p.log.Error("media upload failed",
			append([]any{"preset", preset.Name, "key", obj.Key, "error", err}, middleware.LogAttrs(ctx)...)...)
		return domain.MediaRef{}, domain.Upstream("Gagal meng-upload file ke layanan media.", err)
	}

	p.log.Info("media uploaded",
		append([]any{"preset", preset.Name, "id", asset.ID, "bytes", len(obj.Data)}, middleware.LogAttrs(ctx)...)...)
	return domain.MediaRef{URL: asset.URL, ID: asset.ID}, nil
}

// Cleanup is the outcome of a best-effort remote deletion.
type Cleanup struct {
	ID      string
	Skipped bool
	Err     error
}

func (c Cleanup) OK() bool { return c.Err == nil }

// Discard deletes ref from the media host. Failures are logged and counted,
// never returned: the caller's operation has already succeeded or is about to.
func (p *Pipeline) Discard(ctx context.Context, ref domain.MediaRef) Cleanup {
	if ref.ID == "" {
		return Cleanup{Skipped: true}
	}
	out := Cleanup{ID: ref.ID}
	if err := p.store.Delete(ctx, ref.ID); err != nil {
		out.Err = err
		metrics.MediaCleanupsTotal.WithLabelValues("failure").Inc()
		p.log.Warn("media cleanup failed",
			append([]any{"id", ref.ID, "error", err}, middleware.LogAttrs(ctx)...)...)
		return out
	}
	metrics.MediaCleanupsTotal.WithLabelValues("success").Inc()
	p.log.Debug("media deleted", append([]any{"id", ref.ID}, middleware.LogAttrs(ctx)...)...)
	return out
}
