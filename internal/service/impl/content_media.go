package impl

import (
	"context"
	"errors"

	"portfolio/internal/domain"
	"portfolio/internal/service"
	"portfolio/internal/store"
)

// settle runs save and then tidies the media host: on success the refs in
// replaced are discarded, on failure the freshly uploaded ones are. Empty refs
// are ignored.
func settle(ctx context.Context, m service.Media, save func() error, fresh, replaced []domain.MediaRef) error {
	if err := save(); err != nil {
		for _, ref := range fresh {
			if !ref.Empty() {
				m.Discard(ctx, ref)
			}
		}
		return err
	}
	for _, ref := range replaced {
		if !ref.Empty() {
			m.Discard(ctx, ref)
		}
	}
	return nil
}

// missing maps a store miss to notFound.
func missing(err, notFound error) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return notFound
	}
	return err
}
