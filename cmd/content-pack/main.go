package main

import (
	"context"
	"flag"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

// content-pack compresses a directory of published content documents
// into the .gz siblings the server's directory source falls back to.
// Run it after exporting content so deployments can ship compressed
// documents only.

const maxConcurrent = 4

func main() {
	var (
		contentDir string
		keepPlain  bool
	)

	flag.StringVar(&contentDir, "content-dir", "content", "directory containing the content documents")
	flag.BoolVar(&keepPlain, "keep-plain", true, "keep the uncompressed documents next to the .gz files")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, contentDir, keepPlain); err != nil {
		slog.Error("content pack failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("content pack completed successfully")
}

func run(ctx context.Context, contentDir string, keepPlain bool) error {
	var docs []string
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		docs = append(docs, path)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "walk %s", contentDir)
	}

	if len(docs) == 0 {
		slog.Info("no documents found", slog.String("dir", contentDir))
		return nil
	}
	slog.Info("packing documents", slog.Int("count", len(docs)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := packDocument(doc); err != nil {
				return errors.Wrapf(err, "pack %s", doc)
			}
			if !keepPlain {
				if err := os.Remove(doc); err != nil {
					return errors.Wrapf(err, "remove %s", doc)
				}
			}
			slog.Info("packed", slog.String("doc", doc))
			return nil
		})
	}
	return g.Wait()
}

// packDocument writes doc's gzip sibling atomically: compress to a
// temp file first, then rename over the final path.
func packDocument(doc string) error {
	in, err := os.Open(doc)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(doc), ".pack-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	zw := pgzip.NewWriter(tmp)
	if _, err := io.Copy(zw, in); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "compress")
	}
	if err := zw.Close(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "flush gzip")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmp.Name(), doc+".gz"); err != nil {
		return errors.Wrap(err, "rename")
	}
	return nil
}
