package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned documents by path.
type fakeSource struct {
	docs map[string]string
	errs map[string]error
}

func (s fakeSource) Fetch(_ context.Context, path string) ([]byte, error) {
	if err, ok := s.errs[path]; ok {
		return nil, err
	}
	doc, ok := s.docs[path]
	if !ok {
		return nil, errors.Errorf("no such document: %s", path)
	}
	return []byte(doc), nil
}

const productsDoc = `{
	"products": [
		{"title": "Sourdough", "price": "$9.00", "mainImage": "s.jpg", "order": 2, "available": true},
		{"title": "Croissant", "price": "$4.00", "mainImage": "c.jpg", "order": 1, "available": true, "isNew": true},
		{"title": "Old Bun", "order": 0, "available": false}
	]
}`

func fullSource() fakeSource {
	return fakeSource{docs: map[string]string{
		HeroPath:     `{"heading": "Fresh Daily", "tagline": "From our ovens"}`,
		AboutPath:    `{"title": "Our Story", "paragraph1": "p1", "paragraph2": "p2"}`,
		BakerPath:    `{"photo": "baker.jpg", "name": "June", "title": "Head Baker", "bio": "bio"}`,
		ProductsPath: productsDoc,
	}}
}

func TestLoadAll_AllSections(t *testing.T) {
	b, err := NewLoader(fullSource()).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Empty(t, b.SectionErrs)
	assert.Equal(t, "Fresh Daily", b.Hero.Heading)
	assert.Equal(t, "Our Story", b.About.Title)
	assert.Equal(t, "June", b.Baker.Name)
	require.Len(t, b.Products, 3)
	assert.Equal(t, "Sourdough", b.Products[0].Title)
	assert.True(t, b.Products[1].IsNew)
	assert.False(t, b.Products[2].Available)
}

func TestLoadAll_SectionFailuresAreIsolated(t *testing.T) {
	src := fullSource()
	src.errs = map[string]error{
		HeroPath:  errors.New("cdn timeout"),
		BakerPath: errors.New("404"),
	}

	b, err := NewLoader(src).LoadAll(context.Background())
	require.NoError(t, err)

	// Failed sections fall back; the rest load normally.
	assert.Len(t, b.SectionErrs, 2)
	assert.Contains(t, b.SectionErrs, "hero")
	assert.Contains(t, b.SectionErrs, "baker")
	assert.Equal(t, FallbackHero, b.Hero)
	assert.Equal(t, FallbackBaker, b.Baker)
	assert.Equal(t, "Our Story", b.About.Title)
	require.Len(t, b.Products, 3)
}

func TestLoadAll_MalformedSectionFallsBack(t *testing.T) {
	src := fullSource()
	src.docs[AboutPath] = `{"title": 42`

	b, err := NewLoader(src).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Contains(t, b.SectionErrs, "about")
	assert.Equal(t, FallbackAbout, b.About)
}

func TestLoadAll_ProductsFailureYieldsNoCatalog(t *testing.T) {
	src := fullSource()
	src.errs = map[string]error{ProductsPath: errors.New("unavailable")}

	b, err := NewLoader(src).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Contains(t, b.SectionErrs, "products")
	assert.Empty(t, b.Products)
}

func TestDecodeProducts_TolerantOfUnknownKeysAndNulls(t *testing.T) {
	ps, err := decodeProducts([]byte(`{
		"generatedBy": "cms",
		"products": [
			{"title": "Tart", "price": null, "available": true, "seasonal": {"until": "october"}}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Tart", ps[0].Title)
	assert.Empty(t, ps[0].Price)
}

func TestDirSource_PlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "settings"), 0o755))

	// Plain file.
	heroJSON := `{"heading": "Fresh Daily", "tagline": "From our ovens"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings", "hero.json"), []byte(heroJSON), 0o644))

	// Gzip-only file, as content-pack produces.
	f, err := os.Create(filepath.Join(dir, "products.json.gz"))
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(productsDoc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src := DirSource{Dir: dir}

	data, err := src.Fetch(context.Background(), HeroPath)
	require.NoError(t, err)
	assert.JSONEq(t, heroJSON, string(data))

	data, err = src.Fetch(context.Background(), ProductsPath)
	require.NoError(t, err)
	ps, err := decodeProducts(data)
	require.NoError(t, err)
	assert.Len(t, ps, 3)

	_, err = src.Fetch(context.Background(), "settings/missing.json")
	require.Error(t, err)
}
