package content

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// Bundle holds every loaded section. Sections that failed to load
// carry their fallback values; SectionErrs records which ones did and
// why, so the view layer can show an inline message where it matters
// (the product grid) and callers can log the rest.
type Bundle struct {
	Hero        Hero
	About       About
	Baker       Baker
	Products    []catalog.Product
	SectionErrs map[string]error
}

// Loader fetches and decodes all content sections from a Source.
type Loader struct {
	source Source
}

// NewLoader creates a Loader over the given source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// LoadAll loads every section in parallel. Each section is its own
// failure domain: one failing never blocks the others, and the only
// error LoadAll itself returns is context cancellation.
func (l *Loader) LoadAll(ctx context.Context) (*Bundle, error) {
	b := &Bundle{
		Hero:        FallbackHero,
		About:       FallbackAbout,
		Baker:       FallbackBaker,
		SectionErrs: make(map[string]error, 4),
	}

	var (
		heroErr, aboutErr, bakerErr, productsErr error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if h, err := l.loadHero(ctx); err != nil {
			heroErr = err
		} else {
			b.Hero = h
		}
		return nil
	})
	g.Go(func() error {
		if a, err := l.loadAbout(ctx); err != nil {
			aboutErr = err
		} else {
			b.About = a
		}
		return nil
	})
	g.Go(func() error {
		if bk, err := l.loadBaker(ctx); err != nil {
			bakerErr = err
		} else {
			b.Baker = bk
		}
		return nil
	})
	g.Go(func() error {
		if ps, err := l.loadProducts(ctx); err != nil {
			productsErr = err
		} else {
			b.Products = ps
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lg := zctx.From(ctx)
	for section, err := range map[string]error{
		"hero":     heroErr,
		"about":    aboutErr,
		"baker":    bakerErr,
		"products": productsErr,
	} {
		if err != nil {
			b.SectionErrs[section] = err
			lg.Warn("Content section failed to load, using fallback",
				zap.String("section", section),
				zap.Error(err),
			)
		}
	}

	return b, nil
}

func (l *Loader) loadHero(ctx context.Context) (Hero, error) {
	data, err := l.source.Fetch(ctx, HeroPath)
	if err != nil {
		return Hero{}, err
	}
	return decodeHero(data)
}

func (l *Loader) loadAbout(ctx context.Context) (About, error) {
	data, err := l.source.Fetch(ctx, AboutPath)
	if err != nil {
		return About{}, err
	}
	return decodeAbout(data)
}

func (l *Loader) loadBaker(ctx context.Context) (Baker, error) {
	data, err := l.source.Fetch(ctx, BakerPath)
	if err != nil {
		return Baker{}, err
	}
	return decodeBaker(data)
}

func (l *Loader) loadProducts(ctx context.Context) ([]catalog.Product, error) {
	data, err := l.source.Fetch(ctx, ProductsPath)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}
