package musiclink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/photowall/internal/domain"
)

// Fallback serves from primary and falls back to cache when primary is
// unreachable or empty. Every successful primary save refreshes the cache.
type Fallback struct {
	primary Store
	cache   Store
	logger  *slog.Logger
}

func NewFallback(primary, cache Store, logger *slog.Logger) *Fallback {
	return &Fallback{primary: primary, cache: cache, logger: logger}
}

// Save returns an error only if neither store accepted the link.
func (f *Fallback) Save(ctx context.Context, link string) error {
	perr := f.primary.Save(ctx, link)
	if perr != nil {
		f.logger.Warn("primary config store unavailable, saving to cache", "error", perr)
	}

	if cerr := f.cache.Save(ctx, link); cerr != nil {
		if perr != nil {
			return fmt.Errorf("failed to save link: %w (cache: %v)", perr, cerr)
		}
		f.logger.Error("failed to refresh link cache", "error", cerr)
	}
	return nil
}

// Load never fails: a missing link in both stores is reported as ok=false.
func (f *Fallback) Load(ctx context.Context) (domain.MusicLink, bool, error) {
	link, ok, err := f.primary.Load(ctx)
	switch {
	case err != nil:
		f.logger.Warn("primary config store unavailable, reading cache", "error", err)
	case ok:
		return link, true, nil
	}

	link, ok, err = f.cache.Load(ctx)
	if err != nil {
		f.logger.Error("failed to read link cache", "error", err)
		return domain.MusicLink{}, false, nil
	}
	return link, ok, nil
}
