package content

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
)

// Source fetches one raw content document by its published path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// DirSource reads content documents from a local directory. When the
// plain file is absent it falls back to a gzip-compressed sibling
// (path + ".gz"), as produced by the content-pack tool.
type DirSource struct {
	Dir string
}

// Fetch implements Source.
func (s DirSource) Fetch(_ context.Context, path string) ([]byte, error) {
	full := filepath.Join(s.Dir, filepath.FromSlash(path))

	data, err := os.ReadFile(full)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	f, gzErr := os.Open(full + ".gz")
	if gzErr != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	defer f.Close()

	zr, gzErr := pgzip.NewReader(f)
	if gzErr != nil {
		return nil, errors.Wrapf(gzErr, "open gzip %s.gz", path)
	}
	defer zr.Close()

	data, gzErr = io.ReadAll(zr)
	if gzErr != nil {
		return nil, errors.Wrapf(gzErr, "decompress %s.gz", path)
	}
	return data, nil
}

// HTTPSource fetches content documents from a base URL, for setups
// where the content lives on a CDN or the CMS's public bucket.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// Fetch implements Source.
func (s HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	u, err := url.JoinPath(s.BaseURL, path)
	if err != nil {
		return nil, errors.Wrap(err, "join content URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch %s: %s", path, resp.Status)
	}

	body := io.Reader(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := pgzip.NewReader(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "open gzip %s", path)
		}
		defer zr.Close()
		body = zr
	}

	data, err := io.ReadAll(io.LimitReader(body, 8<<20))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}
